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
	"strings"

	"github.com/samber/lo"

	"github.com/epsilod/stencilgen/translate"
)

// Kernel returns the per-cell kernel body.
//
// With a custom Source, the body declares "new" from the current cell,
// runs the translated source, and stores "new" back into the matrix.
// Otherwise it is the weighted sum of the non-zero neighbors divided by
// Divisor, with neighbors in Points order.
func (s *Stencil) Kernel(opts ...translate.Option) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	thr := strings.Join(lo.Map(s.indexNames(), func(c string, _ int) string { return "thr_" + c }), ", ")

	if s.Source != "" {
		body, err := translate.Translate(s.Source, s.ExtParams, opts...)
		if err != nil {
			return "", fmt.Errorf("stencil %s: kernel: %w", s.Name, err)
		}
		lines := []string{fmt.Sprintf("%s new = old;", s.Type())}
		if body != "" {
			lines = append(lines, body)
		}
		lines = append(lines, fmt.Sprintf("hit( matrix, %s ) = new;", thr))
		return strings.Join(lines, "\n"), nil
	}

	weights := s.weightOf()
	var terms []string
	for _, p := range Points(s.Shape) {
		if w := weights[p.Key()]; w != 0 {
			terms = append(terms, fmt.Sprintf("neigh%s * %s", p, formatNumber(w)))
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "hit(matrix, %s) = (\n", thr)
	b.WriteString(strings.Join(terms, " +\n"))
	fmt.Fprintf(&b, ") / %s;", formatNumber(s.Divisor()))
	return b.String(), nil
}

// KernelFile returns the complete kernel source file: includes, the user
// defines, the neigh/old accessor macros and the kernel body wrapped in
// CTRL_KERNEL.
func (s *Stencil) KernelFile(opts ...translate.Option) (string, error) {
	kernel, err := s.Kernel(opts...)
	if err != nil {
		return "", err
	}
	idx := s.indexNames()
	args := lo.Map(idx, func(c string, _ int) string { return "_" + c })
	offsets := lo.Map(idx, func(c string, _ int) string { return fmt.Sprintf("_%s + thr_%s", c, c) })
	zeroes := lo.Map(idx, func(string, int) string { return "0" })

	var b strings.Builder
	if len(s.ExtParams) > 0 {
		fmt.Fprintf(&b, "#include \"%s\"\n", s.ExtTypeHeaderName())
	}
	b.WriteString("#include \"epsilod_kernels.h\"\n")
	for _, d := range s.Defines {
		fmt.Fprintf(&b, "#define %s\n", strings.TrimSpace(d))
	}
	fmt.Fprintf(&b, "#define %s(%s) hit(matrixCopy, %s)\n",
		translate.NeighborAccessor, strings.Join(args, ", "), strings.Join(offsets, ", "))
	fmt.Fprintf(&b, "#define old %s(%s)\n", translate.NeighborAccessor, strings.Join(zeroes, ", "))

	bt := s.Type()
	fmt.Fprintf(&b, "CTRL_KERNEL(%s, GENERIC, DEFAULT, KHitTile_%s matrix, KHitTile_%s matrixCopy, "+
		"EpsilodCoords global_coords, KHitTile_float stencil, float factor, const Epsilod_ext %s, {\n",
		s.Name, bt, bt, translate.ExtParamsAccessor)
	b.WriteString(kernel)
	b.WriteString("\n});\n")

	fmt.Fprintf(&b, "#undef %s\n", translate.NeighborAccessor)
	b.WriteString("#undef old\n")
	for _, d := range s.Defines {
		fmt.Fprintf(&b, "#undef %s\n", defineName(d))
	}
	return b.String(), nil
}
