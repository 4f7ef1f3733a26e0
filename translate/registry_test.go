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

	"github.com/epsilod/stencilgen/dsl"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b Type
		want Type
	}{
		{Int, Int, Int},
		{Float, Float, Float},
		{Int, Float, Float},
		{Float, Int, Float},
		{Bool, Int, Int},
		{Bool, Bool, Bool},
		{"cell_t", Float, Float},
		{"unsigned char", Int, Int},
		{Unknown, Float, Unknown},
		{Int, Unknown, Unknown},
	}
	for _, tt := range tests {
		if got := Promote(tt.a, tt.b); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPromoteTernary(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		a, b Type
		want Type
	}{
		{Int, Int, Int},
		{"vec3f", Float, "vec3f"},
		{Int, "vec3f", "vec3f"},
		{Float, Int, Float},
		{Int, "cell_t", Int},
		{Unknown, Float, Float},
		{Bool, "cell_t", Unknown},
		{Unknown, Unknown, Unknown},
	}
	for _, tt := range tests {
		if got := reg.PromoteTernary(tt.a, tt.b); got != tt.want {
			t.Errorf("PromoteTernary(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Same(t, reg, DefaultRegistry())

	if diff := deep.Equal(reg.Types(), []Type{"bool", "cell_t", "float", "int", "vec2f", "vec3f"}); diff != nil {
		t.Error(diff)
	}
	assert.True(t, reg.Known("vec2f"))
	assert.False(t, reg.Known("double"))
	assert.False(t, reg.Known(Unknown))

	assert.True(t, reg.IsVector("vec3f"))
	assert.False(t, reg.IsVector("vec2f"))
	assert.False(t, reg.IsVector(Unknown))
	assert.Equal(t, Vec3f, reg.Vector())

	// A registry without a vector type never reports one.
	assert.False(t, NewRegistry(VectorType{}).IsVector(Unknown))
}

func TestInfer(t *testing.T) {
	syms, err := NewSymbolTable(Float, []Param{{Name: "offsets", Type: "vec3f", Size: "Q"}, {Name: "n", Type: Int}})
	if err != nil {
		t.Fatal(err)
	}
	syms.Define(Symbol{Name: "v", Type: "vec3f", Origin: Local})
	syms.Define(Symbol{Name: "flag", Type: Bool, Origin: Local})
	tr := &translator{reg: DefaultRegistry(), syms: syms, out: &Emitter{}}

	tests := []struct {
		src  string
		want Type
	}{
		{"n", Int},
		{"missing", Unknown},
		{"1", Int},
		{"True", Int},
		{"1.5", Float},
		{"'s'", Unknown},
		{"n + 1.0", Float},
		{"n * n", Int},
		{"n + missing", Unknown},
		{"v + v", "vec3f"},
		{"v + missing", "vec3f"},
		{"v + 1", "vec3f"},
		{"v * 2", "vec3f"},
		{"2.0 * offsets[n]", "vec3f"},
		{"v * v", "vec3f"},
		{"v - v", Unknown},
		{"not v", Int},
		{"-n", Int},
		{"-v", "vec3f"},
		{"a < b", Int},
		{"a and b", Int},
		{"vec3f(1, 2, 3)", "vec3f"},
		{"f(1)", Unknown},
		{"s.x", Float},
		{"old[0]", Float},
		{"offsets[1]", "vec3f"},
		{"v if c else 1.0", "vec3f"},
		{"1 if c else 2.0", Float},
		{"flag if c else new", Float},
		{"flag if c else flag", Bool},
	}
	for _, tt := range tests {
		mod, err := dsl.Parse(tt.src + "\n")
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}
		e := mod.Body[0].(*dsl.ExprStmt).Value
		if got := tr.infer(e); got != tt.want {
			t.Errorf("infer(%s) = %s, want %s", tt.src, got, tt.want)
		}
	}
}
