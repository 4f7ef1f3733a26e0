// Copyright 2026 stencilgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epsilod/stencilgen/translate"
)

func (a *app) translateCmd() *cobra.Command {
	var (
		params     []string
		bufferType string
	)
	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate one kernel body to C statements",
		Long: "Translate reads a kernel body (from a file, or stdin when the file is\n" +
			"missing or \"-\") and prints the equivalent C statements.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var opts []translate.Option
			if bufferType != "" {
				opts = append(opts, translate.WithBufferType(translate.Type(bufferType)))
			}
			out, err := translate.Translate(src, params, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.log.Debug("translated kernel", "source", name, "params", len(params), "lines", strings.Count(out, "\n")+1)

			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, `external parameter declaration such as "float dt" (repeatable)`)
	cmd.Flags().StringVar(&bufferType, "buffer-type", "", "element type of the new, old and old2 buffers (default float)")
	return cmd
}

// readSource returns the display name and contents of the kernel source.
func readSource(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read kernel: %w", err)
	}
	return args[0], string(data), nil
}
