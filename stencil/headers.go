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

// KernelFileName is the name of the kernel source file.
func (s *Stencil) KernelFileName() string { return s.Name + ".c" }

// DataHeaderName is the name of the stencil data header.
func (s *Stencil) DataHeaderName() string { return s.Name + "_data.h" }

// ExtTypeHeaderName is the name of the external-parameter type header.
func (s *Stencil) ExtTypeHeaderName() string { return s.Name + "_ext_type.h" }

// kernelLinkNames are the CUDA and HIP names of the kernel file.
func (s *Stencil) kernelLinkNames() []string { return []string{s.Name + ".cu", s.Name + ".cpp"} }

// DataHeader returns the header that registers the stencil and declares
// its shape, its dense weight table (Points order, zeros included) and its
// divisor.
func (s *Stencil) DataHeader() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	shape := strings.Join(lo.Map(s.Shape, func(r Range, _ int) string { return r.String() }), ", ")
	weights := s.weightOf()
	geometry := lo.Map(Points(s.Shape), func(p Coord, _ int) string { return formatNumber(weights[p.Key()]) })

	var b strings.Builder
	fmt.Fprintf(&b, "REGISTER_STENCIL(%s, GENERIC, DEFAULT);\n", s.Name)
	fmt.Fprintf(&b, "HitShape shp_%s = hitShape(%s);\n", s.Name, shape)
	fmt.Fprintf(&b, "float stencilData_%s[] = {%s};\n", s.Name, strings.Join(geometry, ", "))
	fmt.Fprintf(&b, "float factor_%s = %s;\n", s.Name, formatNumber(s.Divisor()))
	return b.String(), nil
}

// ExtTypeHeader returns the header defining EPSILOD_USER_TYPES as a struct
// of the external parameters, or "" when there are none.
func (s *Stencil) ExtTypeHeader() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if len(s.ExtParams) == 0 {
		return "", nil
	}
	params, err := translate.ParseParams(s.ExtParams)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("#define EPSILOD_USER_TYPES \\\n")
	b.WriteString("\ttypedef struct { \\\n")
	for _, p := range params {
		fmt.Fprintf(&b, "\t\t%s; \\\n", p.Decl())
	}
	b.WriteString("\t} Epsilod_ext;\n")
	return b.String(), nil
}
