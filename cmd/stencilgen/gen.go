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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/epsilod/stencilgen/internal/workerpool"
	"github.com/epsilod/stencilgen/stencil"
)

// outputDirPrefix prefixes the per-stencil output directory names.
const outputDirPrefix = "gen_files_"

func (a *app) genCmd() *cobra.Command {
	var (
		outputDir string
		jobs      int
	)
	cmd := &cobra.Command{
		Use:   "gen bundle.txtar...",
		Short: "Generate kernel and header files from stencil bundles",
		Long: "Gen loads every stencil bundle and writes its files into\n" +
			"<output>/" + outputDirPrefix + "<name>. Bundles are processed concurrently.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := workerpool.New(jobs)
			defer pool.Close()
			a.log.Debug("generating stencils", "bundles", len(args), "workers", pool.NumWorkers(), "output", outputDir)

			dirs, err := a.generate(cmd.Context(), pool, args, outputDir)
			for _, dir := range lo.Compact(dirs) {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", dir)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated %d stencils\n", len(dirs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of bundles processed in parallel (default GOMAXPROCS)")
	return cmd
}

// generate loads every bundle, then writes them. It returns the output
// directory of each bundle, "" for those that failed.
func (a *app) generate(ctx context.Context, pool *workerpool.Pool, paths []string, outputDir string) ([]string, error) {
	stencils := make([]*stencil.Stencil, len(paths))
	err := pool.Run(ctx, len(paths), func(_ context.Context, i int) error {
		s, err := stencil.LoadBundle(paths[i])
		if err != nil {
			return err
		}
		stencils[i] = s
		return nil
	})
	if err != nil {
		return make([]string, len(paths)), err
	}

	names := lo.Map(stencils, func(s *stencil.Stencil, _ int) string { return s.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return make([]string, len(paths)), fmt.Errorf("stencil names used by more than one bundle: %s", strings.Join(dups, ", "))
	}

	dirs := make([]string, len(paths))
	err = pool.Run(ctx, len(stencils), func(_ context.Context, i int) error {
		s := stencils[i]
		dir := filepath.Join(outputDir, outputDirPrefix+s.Name)
		written, err := s.WriteFiles(dir)
		if err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
		a.log.Debug("wrote stencil", "stencil", s.Name, "dir", dir, "files", len(written))
		dirs[i] = dir
		return nil
	})
	return dirs, err
}
