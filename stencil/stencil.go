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

// Package stencil describes a stencil (its neighborhood shape, weights,
// cell type and external parameters) and renders the files the stencil
// runtime compiles: the kernel source, the stencil data header and the
// external-parameter type header.
//
// A stencil either has a plain weighted-sum kernel derived from its weights,
// or a custom kernel body written in the kernel language and compiled with
// package translate.
package stencil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/epsilod/stencilgen/translate"
)

// MaxDims is the highest dimensionality the kernel macros support.
const MaxDims = 3

// DefaultBaseType is the cell type used when Stencil.BaseType is empty.
const DefaultBaseType = "float"

// ErrInvalidStencil is wrapped by every validation failure.
var ErrInvalidStencil = errors.New("invalid stencil")

// Range is the inclusive offset range of one dimension of a stencil shape.
type Range struct {
	Lo, Hi int
}

// String renders r the way hitShape expects it, e.g. "(-1, 1)".
func (r Range) String() string {
	return fmt.Sprintf("(%d, %d)", r.Lo, r.Hi)
}

// Coord is a neighbor offset, one entry per dimension.
type Coord []int

// Key returns the comma-separated form used as a weight key, e.g. "-1,0".
func (c Coord) Key() string {
	return strings.Join(lo.Map(c, func(v int, _ int) string { return strconv.Itoa(v) }), ",")
}

// String returns the argument list form, e.g. "(-1, 0)".
func (c Coord) String() string {
	return "(" + strings.Join(lo.Map(c, func(v int, _ int) string { return strconv.Itoa(v) }), ", ") + ")"
}

// ParseCoord parses a weight key such as "-1,0" or "1, -1".
func ParseCoord(key string) (Coord, error) {
	parts := strings.Split(key, ",")
	c := make(Coord, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrInvalidStencil, key)
		}
		c[i] = v
	}
	return c, nil
}

// Weight is the factor applied to one neighbor.
type Weight struct {
	At    Coord
	Value float64
}

// Stencil is the description of one stencil.
type Stencil struct {
	Name  string
	Shape []Range

	// Weights lists the non-zero neighbor factors. Neighbors not listed
	// weigh zero.
	Weights []Weight

	// BaseType is the cell type; DefaultBaseType when empty.
	BaseType string

	// WeightDivisor divides the weighted sum. Zero means the sum of the
	// weights.
	WeightDivisor float64

	// Defines are emitted as "#define <entry>" before the kernel.
	Defines []string

	// ExtParams are C declarations such as "float dt" or "vec3f offsets[Q]".
	ExtParams []string

	// Source is an optional custom kernel body in the kernel language. When
	// empty, the kernel is the weighted sum of the neighbors.
	Source string
}

// DenseWeights pairs values, given in Points order, with the points of
// shape. Zero values are dropped.
func DenseWeights(shape []Range, values []float64) ([]Weight, error) {
	points := Points(shape)
	if len(values) != len(points) {
		return nil, fmt.Errorf("%w: shape has %d points but %d weights were given", ErrInvalidStencil, len(points), len(values))
	}
	var weights []Weight
	for i, p := range points {
		if values[i] != 0 {
			weights = append(weights, Weight{At: p, Value: values[i]})
		}
	}
	return weights, nil
}

// Points returns every coordinate of shape, last dimension varying fastest.
func Points(shape []Range) []Coord {
	if len(shape) == 0 {
		return nil
	}
	points := []Coord{{}}
	for _, r := range shape {
		var next []Coord
		for _, p := range points {
			for v := r.Lo; v <= r.Hi; v++ {
				next = append(next, append(append(Coord{}, p...), v))
			}
		}
		points = next
	}
	return points
}

// Dims returns the number of dimensions of s.
func (s *Stencil) Dims() int {
	return len(s.Shape)
}

// Type returns the cell type of s.
func (s *Stencil) Type() string {
	if s.BaseType == "" {
		return DefaultBaseType
	}
	return s.BaseType
}

// Divisor returns the weighted-sum divisor of s.
func (s *Stencil) Divisor() float64 {
	if s.WeightDivisor != 0 {
		return s.WeightDivisor
	}
	return lo.SumBy(s.Weights, func(w Weight) float64 { return w.Value })
}

// weightOf maps coordinate keys to weights.
func (s *Stencil) weightOf() map[string]float64 {
	m := make(map[string]float64, len(s.Weights))
	for _, w := range s.Weights {
		m[w.At.Key()] = w.Value
	}
	return m
}

// Validate reports the first problem that would make the generated files
// invalid.
func (s *Stencil) Validate() error {
	if !isWord(s.Name) {
		return fmt.Errorf("%w: name %q must only hold letters, digits and underscores", ErrInvalidStencil, s.Name)
	}
	if s.Dims() == 0 || s.Dims() > MaxDims {
		return fmt.Errorf("%w %s: shape must have 1 to %d dimensions, got %d", ErrInvalidStencil, s.Name, MaxDims, s.Dims())
	}
	for i, r := range s.Shape {
		if r.Lo > r.Hi {
			return fmt.Errorf("%w %s: dimension %d range %s is empty", ErrInvalidStencil, s.Name, i, r)
		}
	}
	if !translate.IsIdentifier(s.Type()) {
		return fmt.Errorf("%w %s: base type %q is not a C identifier", ErrInvalidStencil, s.Name, s.Type())
	}

	seen := make(map[string]bool, len(s.Weights))
	for _, w := range s.Weights {
		if len(w.At) != s.Dims() {
			return fmt.Errorf("%w %s: weight at %s has %d coordinates, want %d", ErrInvalidStencil, s.Name, w.At, len(w.At), s.Dims())
		}
		for i, v := range w.At {
			if v < s.Shape[i].Lo || v > s.Shape[i].Hi {
				return fmt.Errorf("%w %s: weight at %s is outside the shape", ErrInvalidStencil, s.Name, w.At)
			}
		}
		if seen[w.At.Key()] {
			return fmt.Errorf("%w %s: duplicate weight at %s", ErrInvalidStencil, s.Name, w.At)
		}
		seen[w.At.Key()] = true
	}

	if s.Source == "" {
		if !lo.SomeBy(s.Weights, func(w Weight) bool { return w.Value != 0 }) {
			return fmt.Errorf("%w %s: no custom kernel and no non-zero weights", ErrInvalidStencil, s.Name)
		}
		if s.Divisor() == 0 {
			return fmt.Errorf("%w %s: weight divisor is zero", ErrInvalidStencil, s.Name)
		}
	}

	if _, err := translate.ParseParams(s.ExtParams); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidStencil, s.Name, err)
	}
	for _, d := range s.Defines {
		if defineName(d) == "" {
			return fmt.Errorf("%w %s: define %q has no macro name", ErrInvalidStencil, s.Name, d)
		}
	}
	return nil
}

// indexNames returns the thread index suffixes, "i", "j", "k", of s.
func (s *Stencil) indexNames() []string {
	return lo.Times(s.Dims(), func(i int) string { return string(rune('i' + i)) })
}

// defineName returns the macro name of a "#define" body such as "Q 19" or
// "MAX(a, b) ((a) > (b) ? (a) : (b))".
func defineName(def string) string {
	def = strings.TrimSpace(def)
	end := strings.IndexFunc(def, func(r rune) bool { return r == ' ' || r == '\t' || r == '(' })
	if end < 0 {
		end = len(def)
	}
	if name := def[:end]; translate.IsIdentifier(name) {
		return name
	}
	return ""
}

// formatNumber renders weights and divisors in their shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// isWord reports whether s is a non-empty run of letters, digits and
// underscores. Stencil names are pasted into macro-built identifiers, so
// a leading digit is fine.
func isWord(s string) bool {
	return s != "" && strings.TrimLeft(s, "_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789") == ""
}
