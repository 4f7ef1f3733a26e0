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

package stencil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/epsilod/stencilgen/translate"
)

// WriteFiles renders s into dir, creating dir if needed, and returns the
// paths it wrote. The kernel file gets .cu and .cpp symlinks for the CUDA
// and HIP builds. Running it again over the same dir overwrites the files
// and repairs the links.
//
// Nothing is written unless every file renders.
func (s *Stencil) WriteFiles(dir string, opts ...translate.Option) ([]string, error) {
	kernel, err := s.KernelFile(opts...)
	if err != nil {
		return nil, err
	}
	data, err := s.DataHeader()
	if err != nil {
		return nil, err
	}
	ext, err := s.ExtTypeHeader()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct{ name, content string }{
		{s.KernelFileName(), kernel},
		{s.DataHeaderName(), data},
	}
	if ext != "" {
		files = append(files, struct{ name, content string }{s.ExtTypeHeaderName(), ext})
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	for _, link := range s.kernelLinkNames() {
		path := filepath.Join(dir, link)
		if err := symlink(s.KernelFileName(), path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// symlink makes path a symlink to target, replacing whatever is at path
// unless it already is that link.
func symlink(target, path string) error {
	if cur, err := os.Readlink(path); err == nil && cur == target {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	if err := os.Symlink(target, path); err != nil {
		return fmt.Errorf("failed to link %s: %w", path, err)
	}
	return nil
}
