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
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Names the generated code relies on from the surrounding kernel template.
const (
	// NeighborAccessor is the call form neigh(offsets...) reading a
	// neighboring cell.
	NeighborAccessor = "neigh"
	// ExtParamsAccessor is the struct through which external parameters
	// are reached.
	ExtParamsAccessor = "ext_params"
	// ArrayConstructor names both the array annotation carray[T] and the
	// initializer carray(N) / carray([...]).
	ArrayConstructor = "carray"
	// RangeFunc is the only iterable a for loop accepts.
	RangeFunc = "range"
)

// RotatingBuffers are the implicit per-cell state variables: the result
// accumulator, the previous state and the doubly-previous state.
var RotatingBuffers = []string{"new", "old", "old2"}

// IsRotatingBuffer reports whether name is one of RotatingBuffers.
func IsRotatingBuffer(name string) bool {
	return lo.Contains(RotatingBuffers, name)
}

// Origin records how a symbol entered the table.
type Origin int

const (
	Local    Origin = iota // annotated declaration in the kernel body
	Buffer                 // rotating buffer
	External               // external parameter
	LoopVar                // implicitly declared for-range variable
)

func (o Origin) String() string {
	switch o {
	case Local:
		return "local"
	case Buffer:
		return "rotating buffer"
	case External:
		return "external parameter"
	case LoopVar:
		return "loop variable"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Symbol is a declared name.
type Symbol struct {
	Name    string
	Type    Type
	IsArray bool
	Len     int // element count when IsArray
	Origin  Origin
}

// SymbolTable maps names to symbols for one translation. Scope is flat and
// only grows.
type SymbolTable struct {
	syms map[string]*Symbol
}

// NewSymbolTable returns a table seeded with the rotating buffers, typed
// bufferType, and the given external parameters. A parameter may not reuse a
// buffer name or another parameter's name.
func NewSymbolTable(bufferType Type, params []Param) (*SymbolTable, error) {
	st := &SymbolTable{syms: make(map[string]*Symbol)}
	for _, name := range RotatingBuffers {
		st.Define(Symbol{Name: name, Type: bufferType, Origin: Buffer})
	}
	for _, p := range params {
		if prev, ok := st.syms[p.Name]; ok {
			return nil, &Error{
				Kind: ErrInvalidDeclaration,
				Msg:  fmt.Sprintf("external parameter %q collides with %s %q", p.Name, prev.Origin, prev.Name),
			}
		}
		// Array-ness of parameters is not tracked: element access and whole
		// assignment are both accepted.
		st.Define(Symbol{Name: p.Name, Type: p.Type, Origin: External})
	}
	return st, nil
}

// Lookup returns the symbol for name.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.syms[name]
	return sym, ok
}

// Define adds or replaces a symbol.
func (st *SymbolTable) Define(sym Symbol) {
	st.syms[sym.Name] = &sym
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.syms)
}

// Names returns all defined names in sorted order.
func (st *SymbolTable) Names() []string {
	names := lo.Keys(st.syms)
	slices.Sort(names)
	return names
}
