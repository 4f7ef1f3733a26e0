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
	"github.com/epsilod/stencilgen/dsl"
)

// infer returns the best-effort static type of e. It never fails: anything
// it cannot type is Unknown.
func (t *translator) infer(e dsl.Expr) Type {
	switch e := e.(type) {
	case *dsl.Name:
		if sym, ok := t.syms.Lookup(e.ID); ok {
			return sym.Type
		}
		return Unknown
	case *dsl.Constant:
		switch e.Kind {
		case dsl.IntConst, dsl.BoolConst:
			return Int
		case dsl.FloatConst:
			return Float
		}
		return Unknown
	case *dsl.BinaryOp:
		return t.inferBinary(e.Op, t.infer(e.Left), t.infer(e.Right))
	case *dsl.UnaryOp:
		if e.Op == dsl.Not {
			return Int
		}
		return t.infer(e.Operand)
	case *dsl.BoolOp, *dsl.Compare:
		return Int
	case *dsl.Call:
		if fn, ok := e.Func.(*dsl.Name); ok && t.reg.IsVector(Type(fn.ID)) {
			return Type(fn.ID)
		}
		return Unknown
	case *dsl.Attribute:
		// Struct members are assumed to be float.
		return Float
	case *dsl.Subscript:
		return t.infer(e.Value)
	case *dsl.IfExp:
		return t.reg.PromoteTernary(t.infer(e.Body), t.infer(e.OrElse))
	case *dsl.List, *dsl.Tuple:
		return Unknown
	}
	return Unknown
}

// inferBinary applies the vector overloads, then scalar promotion. Add and
// Mult with a vector operand yield the vector type; any other operator with
// one yields Unknown and the expression translator reports it.
func (t *translator) inferBinary(op dsl.BinOpKind, lt, rt Type) Type {
	if !t.reg.IsVector(lt) && !t.reg.IsVector(rt) {
		return Promote(lt, rt)
	}
	if op == dsl.Add || op == dsl.Mult {
		return t.reg.Vector().Name
	}
	return Unknown
}
