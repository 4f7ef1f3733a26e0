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
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "examples", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadBundle(path)
			require.NoError(t, err)
			_, err = s.KernelFile()
			assert.NoError(t, err)
		})
	}
}

func TestParseBundle(t *testing.T) {
	data := `A 1D smoothing stencil.
-- stencil.json --
{
	"name": "smooth",
	"basetype": "cell_t",
	"shape": [[-1, 1]],
	"weights": [1, 2, 1],
	"weight_divisor": 3,
	"defines": ["N 4"],
	"ext_params": ["float dt"]
}
-- kernel.py --
new = old * dt
`
	got, err := ParseBundle("smooth.txtar", []byte(data))
	require.NoError(t, err)
	want := &Stencil{
		Name:  "smooth",
		Shape: []Range{{-1, 1}},
		Weights: []Weight{
			{At: Coord{-1}, Value: 1},
			{At: Coord{0}, Value: 2},
			{At: Coord{1}, Value: 1},
		},
		BaseType:      "cell_t",
		WeightDivisor: 3,
		Defines:       []string{"N 4"},
		ExtParams:     []string{"float dt"},
		Source:        "new = old * dt\n",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestParseBundleSparseWeights(t *testing.T) {
	data := `-- stencil.json --
{"shape": [[-1, 1], [-1, 1]], "weights": {"1, 0": 2, "-1,0": 1, "0,0": 0}}
`
	got, err := ParseBundle("dir/cross.txtar", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "cross", got.Name)
	assert.Empty(t, got.BaseType)
	assert.Equal(t, "float", got.Type())
	want := []Weight{
		{At: Coord{-1, 0}, Value: 1},
		{At: Coord{1, 0}, Value: 2},
	}
	if diff := deep.Equal(got.Weights, want); diff != nil {
		t.Error(diff)
	}
}

func TestParseBundleErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"MissingDescription", "-- kernel.py --\nnew = old\n", "missing stencil.json"},
		{"UnexpectedSection", "-- stencil.json --\n{}\n-- notes.txt --\nhi\n", `unexpected section "notes.txt"`},
		{"Duplicate", "-- stencil.json --\n{}\n-- stencil.json --\n{}\n", "duplicate stencil.json"},
		{"BadJSON", "-- stencil.json --\n{\"shape\": \n", "stencil.json"},
		{"UnknownField", "-- stencil.json --\n{\"kernel\": \"x\"}\n", "unknown field"},
		{"DenseCount", "-- stencil.json --\n{\"shape\": [[-1, 1]], \"weights\": [1, 2]}\n", "3 points but 2 weights"},
		{"BadKey", "-- stencil.json --\n{\"shape\": [[-1, 1]], \"weights\": {\"x\": 1}}\n", `bad coordinate "x"`},
		{"DuplicateKey", "-- stencil.json --\n{\"shape\": [[-1, 1]], \"weights\": {\"1\": 1, \" 1\": 1}}\n", "duplicate weight"},
		{"BadWeights", "-- stencil.json --\n{\"shape\": [[-1, 1]], \"weights\": \"all\"}\n", "weights:"},
		{"Invalid", "-- stencil.json --\n{\"shape\": [[-1, 1]]}\n", "no custom kernel and no non-zero weights"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBundle("b.txtar", []byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, strings.HasPrefix(err.Error(), "b.txtar: "), err.Error())
		})
	}
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "none.txtar"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
