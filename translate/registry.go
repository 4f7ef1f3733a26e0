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
	"slices"

	"github.com/samber/lo"
)

// Type is a C type name as written in kernel annotations. The zero value is
// Unknown.
type Type string

const (
	Unknown Type = ""
	Int     Type = "int"
	Float   Type = "float"
	Bool    Type = "bool"
)

func (t Type) String() string {
	if t == Unknown {
		return "unknown"
	}
	return string(t)
}

// VectorType describes the single vector type and the C functions that
// implement its overloaded operators.
type VectorType struct {
	Name      Type   // "vec3f"
	AddFunc   string // elementwise vector + vector
	ScaleFunc string // vector * scalar
}

// Vec3f is the vector type of the default registry.
var Vec3f = VectorType{
	Name:      "vec3f",
	AddFunc:   "vec3f_add",
	ScaleFunc: "vec3f_scale",
}

// Registry is the set of type names accepted in annotations plus the vector
// type. A Registry is never mutated after NewRegistry returns, so one value
// can be shared by concurrent translations.
type Registry struct {
	types  map[Type]bool
	vector VectorType
}

// NewRegistry builds a registry holding int, float and bool, the vector type
// and the given aliases (struct or typedef names known to the C side).
func NewRegistry(vector VectorType, aliases ...Type) *Registry {
	r := &Registry{
		types:  map[Type]bool{Int: true, Float: true, Bool: true},
		vector: vector,
	}
	if vector.Name != Unknown {
		r.types[vector.Name] = true
	}
	for _, a := range aliases {
		if a != Unknown {
			r.types[a] = true
		}
	}
	return r
}

var defaultRegistry = NewRegistry(Vec3f, "vec2f", "cell_t")

// DefaultRegistry returns the shared registry with vec3f as the vector type
// and the vec2f and cell_t aliases.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Known reports whether t may appear in a declaration annotation.
func (r *Registry) Known(t Type) bool {
	return r.types[t]
}

// IsVector reports whether t is the registered vector type.
func (r *Registry) IsVector(t Type) bool {
	return t != Unknown && t == r.vector.Name
}

// Vector returns the registered vector type.
func (r *Registry) Vector() VectorType {
	return r.vector
}

// Types returns the known type names in sorted order.
func (r *Registry) Types() []Type {
	types := lo.Keys(r.types)
	slices.Sort(types)
	return types
}

// Promote returns the result type of scalar arithmetic on a and b.
func Promote(a, b Type) Type {
	switch {
	case a == Unknown || b == Unknown:
		return Unknown
	case a == b:
		return a
	case a == Float || b == Float:
		return Float
	default:
		return Int
	}
}

// PromoteTernary returns the type of `x if c else y` given the branch types.
func (r *Registry) PromoteTernary(a, b Type) Type {
	switch {
	case a == b:
		return a
	case r.IsVector(a) || r.IsVector(b):
		return r.vector.Name
	case a == Float || b == Float:
		return Float
	case a == Int || b == Int:
		return Int
	default:
		return Unknown
	}
}
