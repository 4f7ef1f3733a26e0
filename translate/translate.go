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

// Package translate lowers a parsed kernel body to C statements.
//
// The output is meant to be spliced into a kernel template that provides the
// rotating buffers new/old/old2 (each wrapping its storage in a .data
// field), the neigh(offsets...) accessor and an ext_params struct holding the
// external parameters. Vector arithmetic on the registry's vector type is
// lowered to explicit add/scale calls.
//
// Translation is all-or-nothing: the first unsupported or invalid construct
// aborts it and no partial output is returned.
package translate

import (
	"github.com/epsilod/stencilgen/dsl"
)

// Option configures a translation.
type Option func(*options)

type options struct {
	registry   *Registry
	bufferType Type
}

// WithRegistry sets the type registry. The default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithBufferType sets the element type of the rotating buffers. The default
// is float.
func WithBufferType(t Type) Option {
	return func(o *options) {
		o.bufferType = t
	}
}

// translator holds the state of one translation.
type translator struct {
	reg       *Registry
	syms      *SymbolTable
	out       *Emitter
	loopDepth int
}

// Translate parses src and translates it with the external parameters
// declared by params (see ParseParam).
func Translate(src string, params []string, opts ...Option) (string, error) {
	mod, err := dsl.Parse(src)
	if err != nil {
		return "", fromSyntaxError(err)
	}
	return TranslateModule(mod, params, opts...)
}

// TranslateModule translates an already parsed kernel body.
func TranslateModule(mod *dsl.Module, params []string, opts ...Option) (string, error) {
	o := options{registry: DefaultRegistry(), bufferType: Float}
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := ParseParams(params)
	if err != nil {
		return "", err
	}
	syms, err := NewSymbolTable(o.bufferType, parsed)
	if err != nil {
		return "", err
	}

	t := &translator{reg: o.registry, syms: syms, out: &Emitter{}}
	if err := t.stmts(mod.Body); err != nil {
		return "", err
	}
	return t.out.String(), nil
}
