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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilod/stencilgen/translate"
)

func TestWriteFiles(t *testing.T) {
	s := loadExample(t, "wavesim")
	dir := filepath.Join(t.TempDir(), "gen_files_wave")

	written, err := s.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "wavesim.c"),
		filepath.Join(dir, "wavesim_data.h"),
		filepath.Join(dir, "wavesim_ext_type.h"),
		filepath.Join(dir, "wavesim.cu"),
		filepath.Join(dir, "wavesim.cpp"),
	}, written)

	kernel, err := s.KernelFile()
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "wavesim.c"))
	require.NoError(t, err)
	assert.Equal(t, kernel, string(got))

	for _, link := range []string{"wavesim.cu", "wavesim.cpp"} {
		target, err := os.Readlink(filepath.Join(dir, link))
		require.NoError(t, err)
		assert.Equal(t, "wavesim.c", target)

		// The link resolves to the kernel file.
		got, err := os.ReadFile(filepath.Join(dir, link))
		require.NoError(t, err)
		assert.Equal(t, kernel, string(got))
	}
}

func TestWriteFilesIsIdempotent(t *testing.T) {
	s := loadExample(t, "2d4")
	dir := t.TempDir()

	first, err := s.WriteFiles(dir)
	require.NoError(t, err)
	assert.Len(t, first, 4)
	assert.NoFileExists(t, filepath.Join(dir, "2d4_ext_type.h"))

	// A stale regular file where a link belongs is replaced.
	cu := filepath.Join(dir, "2d4.cu")
	require.NoError(t, os.Remove(cu))
	require.NoError(t, os.WriteFile(cu, []byte("stale"), 0644))

	second, err := s.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	target, err := os.Readlink(cu)
	require.NoError(t, err)
	assert.Equal(t, "2d4.c", target)
}

func TestWriteFilesWritesNothingOnError(t *testing.T) {
	s := &Stencil{Name: "bad", Shape: square, Source: "y = 1\n"}
	dir := filepath.Join(t.TempDir(), "out")

	written, err := s.WriteFiles(dir)
	assert.ErrorIs(t, err, translate.ErrUndeclaredVariable)
	assert.Empty(t, written)
	assert.NoDirExists(t, dir)
}
