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

// Command stencilgen compiles stencil kernels written in the kernel language
// into C for the EPSILOD stencil runtime.
//
// Usage:
//
//	stencilgen translate kernel.py -p "float dt" -p "vec2f center"
//	stencilgen translate - < kernel.py
//	stencilgen gen examples/*.txtar -o build -j 4
//
// The translate command prints the C statements of one kernel body. The gen
// command turns stencil bundles (see package stencil) into directories
// holding the kernel file, its .cu/.cpp links and the stencil headers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// app holds the state shared by the subcommands.
type app struct {
	verbose bool
	log     *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:           "stencilgen",
		Short:         "Generate EPSILOD stencil kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	root.AddCommand(a.translateCmd(), a.genCmd())
	return root
}
