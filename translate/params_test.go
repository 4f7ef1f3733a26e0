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

package translate

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParam(t *testing.T) {
	tests := []struct {
		decl string
		want Param
	}{
		{"float dt", Param{Name: "dt", Type: "float"}},
		{"vec3f         offsets[Q]", Param{Name: "offsets", Type: "vec3f", Size: "Q"}},
		{"unsigned char opposite[Q]", Param{Name: "opposite", Type: "unsigned char", Size: "Q"}},
		{"  const   float  w[19] ", Param{Name: "w", Type: "const float", Size: "19"}},
		{"int\tn", Param{Name: "n", Type: "int"}},
	}
	for _, tt := range tests {
		got, err := ParseParam(tt.decl)
		require.NoError(t, err, tt.decl)
		if diff := deep.Equal(got, tt.want); diff != nil {
			t.Errorf("ParseParam(%q): %v", tt.decl, diff)
		}
	}
}

func TestParseParamErrors(t *testing.T) {
	for _, decl := range []string{"", "   ", "dt", "float 1x", "float [3]", "float a-b"} {
		_, err := ParseParam(decl)
		assert.ErrorIs(t, err, ErrInvalidDeclaration, "ParseParam(%q)", decl)
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"x", "_", "cell_t", "Vec3", "_2d"} {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range []string{"", "2d4", "a-b", "a b", "é"} {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestParamDecl(t *testing.T) {
	assert.Equal(t, "unsigned char opposite[Q]", Param{Name: "opposite", Type: "unsigned char", Size: "Q"}.Decl())
	assert.Equal(t, "float tau", Param{Name: "tau", Type: "float"}.Decl())
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams(gasParams)
	require.NoError(t, err)
	require.Len(t, params, len(gasParams))
	assert.Equal(t, "offsets", params[0].Name)
	assert.Equal(t, Type("float"), params[5].Type)

	_, err = ParseParams([]string{"float a", "b"})
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
}

func TestSymbolTable(t *testing.T) {
	st, err := NewSymbolTable(Float, []Param{{Name: "offsets", Type: "vec3f", Size: "Q"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "offsets", "old", "old2"}, st.Names())

	sym, ok := st.Lookup("offsets")
	require.True(t, ok)
	want := &Symbol{Name: "offsets", Type: "vec3f", Origin: External}
	if diff := deep.Equal(sym, want); diff != nil {
		t.Errorf("external parameter symbol: %v", diff)
	}

	sym, ok = st.Lookup("old2")
	require.True(t, ok)
	assert.Equal(t, Buffer, sym.Origin)
	assert.Equal(t, Float, sym.Type)

	st.Define(Symbol{Name: "a", Type: Int, IsArray: true, Len: 4})
	assert.Equal(t, 5, st.Len())
	_, ok = st.Lookup("b")
	assert.False(t, ok)

	_, err = NewSymbolTable(Float, []Param{{Name: "dt", Type: Float}, {Name: "dt", Type: Int}})
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
}

func TestRotatingBuffers(t *testing.T) {
	for _, name := range []string{"new", "old", "old2"} {
		assert.True(t, IsRotatingBuffer(name), name)
	}
	for _, name := range []string{"old3", "neigh", "New", ""} {
		assert.False(t, IsRotatingBuffer(name), name)
	}
}
