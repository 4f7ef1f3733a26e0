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
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epsilod/stencilgen/translate"
)

var square = []Range{{-1, 1}, {-1, 1}}

func loadExample(t *testing.T, name string) *Stencil {
	t.Helper()
	s, err := LoadBundle(filepath.Join("..", "examples", name+".txtar"))
	require.NoError(t, err)
	return s
}

func TestPoints(t *testing.T) {
	got := Points([]Range{{0, 1}, {-1, 0}})
	want := []Coord{{0, -1}, {0, 0}, {1, -1}, {1, 0}}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
	assert.Len(t, Points([]Range{{-1, 1}, {-1, 1}, {-1, 1}}), 27)
	assert.Nil(t, Points(nil))
}

func TestCoord(t *testing.T) {
	c := Coord{-1, 0, 2}
	assert.Equal(t, "-1,0,2", c.Key())
	assert.Equal(t, "(-1, 0, 2)", c.String())

	got, err := ParseCoord(" -1, 0 ,2")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	for _, bad := range []string{"", "a,b", "1,,2", "1.5"} {
		_, err := ParseCoord(bad)
		assert.ErrorIs(t, err, ErrInvalidStencil, bad)
	}
}

func TestDenseWeights(t *testing.T) {
	got, err := DenseWeights(square, []float64{0, 1, 0, 1, 0, 1, 0, 0.5, 0})
	require.NoError(t, err)
	want := []Weight{
		{At: Coord{-1, 0}, Value: 1},
		{At: Coord{0, -1}, Value: 1},
		{At: Coord{0, 1}, Value: 1},
		{At: Coord{1, 0}, Value: 0.5},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}

	_, err = DenseWeights(square, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidStencil)
}

func TestDivisor(t *testing.T) {
	s := &Stencil{Weights: []Weight{{At: Coord{0}, Value: 2}, {At: Coord{1}, Value: 1.5}}}
	assert.Equal(t, 3.5, s.Divisor())
	s.WeightDivisor = 10
	assert.Equal(t, 10.0, s.Divisor())
}

func TestValidate(t *testing.T) {
	valid := func() *Stencil {
		return &Stencil{
			Name:    "s",
			Shape:   []Range{{-1, 1}},
			Weights: []Weight{{At: Coord{-1}, Value: 1}, {At: Coord{1}, Value: 1}},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(s *Stencil)
	}{
		{"EmptyName", func(s *Stencil) { s.Name = "" }},
		{"BadName", func(s *Stencil) { s.Name = "a-b" }},
		{"NoDims", func(s *Stencil) { s.Shape = nil }},
		{"TooManyDims", func(s *Stencil) { s.Shape = []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}} }},
		{"EmptyRange", func(s *Stencil) { s.Shape = []Range{{1, -1}} }},
		{"MultiWordBaseType", func(s *Stencil) { s.BaseType = "unsigned char" }},
		{"WeightDims", func(s *Stencil) { s.Weights = []Weight{{At: Coord{0, 0}, Value: 1}} }},
		{"WeightOutsideShape", func(s *Stencil) { s.Weights = []Weight{{At: Coord{2}, Value: 1}} }},
		{"DuplicateWeight", func(s *Stencil) { s.Weights = append(s.Weights, Weight{At: Coord{1}, Value: 3}) }},
		{"NoWeightsNoKernel", func(s *Stencil) { s.Weights = nil }},
		{"ZeroDivisor", func(s *Stencil) { s.Weights = []Weight{{At: Coord{-1}, Value: 1}, {At: Coord{1}, Value: -1}} }},
		{"BadExtParam", func(s *Stencil) { s.ExtParams = []string{"float dt", "tau"} }},
		{"EmptyDefine", func(s *Stencil) { s.Defines = []string{"  "} }},
		{"DefineWithoutName", func(s *Stencil) { s.Defines = []string{"19 Q"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidStencil)
		})
	}

	// A custom kernel needs no weights.
	s := valid()
	s.Weights = nil
	s.Source = "new = old\n"
	assert.NoError(t, s.Validate())
}

func TestDefineName(t *testing.T) {
	tests := []struct{ def, want string }{
		{"Q 19", "Q"},
		{"FLAG_OBSTACLE      -INFINITY", "FLAG_OBSTACLE"},
		{"  DEBUG", "DEBUG"},
		{"MAX(a, b) ((a) > (b) ? a : b)", "MAX"},
		{"1X 2", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, defineName(tt.def), tt.def)
	}
}

func TestKernelWeightedSum(t *testing.T) {
	s := loadExample(t, "2d4")
	got, err := s.Kernel()
	require.NoError(t, err)
	want := "hit(matrix, thr_i, thr_j) = (\n" +
		"neigh(-1, 0) * 1 +\n" +
		"neigh(0, -1) * 1 +\n" +
		"neigh(0, 1) * 1 +\n" +
		"neigh(1, 0) * 1) / 4;"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Kernel() mismatch (-want +got):\n%s", diff)
	}

	s = &Stencil{
		Name:          "blur",
		Shape:         []Range{{0, 1}},
		Weights:       []Weight{{At: Coord{1}, Value: 0.25}, {At: Coord{0}, Value: 0.75}},
		WeightDivisor: 2,
	}
	got, err = s.Kernel()
	require.NoError(t, err)
	assert.Equal(t, "hit(matrix, thr_i) = (\nneigh(0) * 0.75 +\nneigh(1) * 0.25) / 2;", got)
}

func TestKernelCustom(t *testing.T) {
	for _, tt := range []struct {
		name, first, last string
	}{
		{"wavesim", "float new = old;", "hit( matrix, thr_i, thr_j ) = new;"},
		{"gassim", "cell_t new = old;", "hit( matrix, thr_i, thr_j, thr_k ) = new;"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := loadExample(t, tt.name)
			body, err := translate.Translate(s.Source, s.ExtParams)
			require.NoError(t, err)

			got, err := s.Kernel()
			require.NoError(t, err)
			want := tt.first + "\n" + body + "\n" + tt.last
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Kernel() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKernelTranslateError(t *testing.T) {
	s := &Stencil{Name: "bad", Shape: square, Source: "x = 1\n"}
	_, err := s.Kernel()
	require.Error(t, err)
	assert.ErrorIs(t, err, translate.ErrUndeclaredVariable)
	assert.Contains(t, err.Error(), "stencil bad: kernel:")

	_, err = s.KernelFile()
	assert.ErrorIs(t, err, translate.ErrUndeclaredVariable)
}

func TestKernelEmptyCustomBody(t *testing.T) {
	s := &Stencil{Name: "copy", Shape: []Range{{0, 0}}, Source: "# nothing to do\n"}
	got, err := s.Kernel()
	require.NoError(t, err)
	assert.Equal(t, "float new = old;\nhit( matrix, thr_i ) = new;", got)
}

func TestKernelFile(t *testing.T) {
	s := loadExample(t, "2d4")
	got, err := s.KernelFile()
	require.NoError(t, err)
	want := `#include "epsilod_kernels.h"
#define neigh(_i, _j) hit(matrixCopy, _i + thr_i, _j + thr_j)
#define old neigh(0, 0)
CTRL_KERNEL(2d4, GENERIC, DEFAULT, KHitTile_float matrix, KHitTile_float matrixCopy, EpsilodCoords global_coords, KHitTile_float stencil, float factor, const Epsilod_ext ext_params, {
hit(matrix, thr_i, thr_j) = (
neigh(-1, 0) * 1 +
neigh(0, -1) * 1 +
neigh(0, 1) * 1 +
neigh(1, 0) * 1) / 4;
});
#undef neigh
#undef old
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KernelFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestKernelFileDefinesAndExtParams(t *testing.T) {
	s := loadExample(t, "gassim")
	got, err := s.KernelFile()
	require.NoError(t, err)

	for _, line := range []string{
		`#include "ccgas_ext_type.h"` + "\n" + `#include "epsilod_kernels.h"` + "\n",
		"#define FLAG_KEEP_VELOCITY INFINITY\n",
		"#define Q                  19\n",
		"#define neigh(_i, _j, _k) hit(matrixCopy, _i + thr_i, _j + thr_j, _k + thr_k)\n",
		"#define old neigh(0, 0, 0)\n",
		"CTRL_KERNEL(ccgas, GENERIC, DEFAULT, KHitTile_cell_t matrix, KHitTile_cell_t matrixCopy,",
		"{\ncell_t new = old;\n",
		"hit( matrix, thr_i, thr_j, thr_k ) = new;\n});\n",
		"#undef old\n#undef FLAG_KEEP_VELOCITY\n#undef FLAG_OBSTACLE\n#undef Q\n",
	} {
		assert.Contains(t, got, line)
	}
}

func TestDataHeader(t *testing.T) {
	got, err := loadExample(t, "2d4").DataHeader()
	require.NoError(t, err)
	want := `REGISTER_STENCIL(2d4, GENERIC, DEFAULT);
HitShape shp_2d4 = hitShape((-1, 1), (-1, 1));
float stencilData_2d4[] = {0, 1, 0, 1, 0, 1, 0, 1, 0};
float factor_2d4 = 4;
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DataHeader() mismatch (-want +got):\n%s", diff)
	}

	got, err = loadExample(t, "3d7").DataHeader()
	require.NoError(t, err)
	want = `REGISTER_STENCIL(3d7, GENERIC, DEFAULT);
HitShape shp_3d7 = hitShape((-1, 1), (-1, 1), (-1, 1));
float stencilData_3d7[] = {0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 2, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0};
float factor_3d7 = 8;
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DataHeader() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtTypeHeader(t *testing.T) {
	got, err := loadExample(t, "gassim").ExtTypeHeader()
	require.NoError(t, err)
	want := "#define EPSILOD_USER_TYPES \\\n" +
		"\ttypedef struct { \\\n" +
		"\t\tvec3f offsets[Q]; \\\n" +
		"\t\tunsigned char opposite[Q]; \\\n" +
		"\t\tfloat wis[Q]; \\\n" +
		"\t\tfloat cellwidth; \\\n" +
		"\t\tfloat deltaT; \\\n" +
		"\t\tfloat tau; \\\n" +
		"\t} Epsilod_ext;\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtTypeHeader() mismatch (-want +got):\n%s", diff)
	}

	got, err = loadExample(t, "2d4").ExtTypeHeader()
	require.NoError(t, err)
	assert.Empty(t, got)
}
