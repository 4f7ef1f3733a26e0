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
	"math"
	"strings"

	"github.com/epsilod/stencilgen/dsl"
)

func (t *translator) stmts(list []dsl.Stmt) error {
	for _, s := range list {
		if err := t.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// stmt dispatches to the appropriate statement handler.
func (t *translator) stmt(s dsl.Stmt) error {
	switch s := s.(type) {
	case *dsl.AnnAssign:
		return t.declare(s)
	case *dsl.Assign:
		return t.assign(s)
	case *dsl.AugAssign:
		return t.augAssign(s)
	case *dsl.If:
		return t.ifStmt(s)
	case *dsl.While:
		return t.while(s)
	case *dsl.For:
		return t.forRange(s)
	case *dsl.Break:
		if t.loopDepth == 0 {
			return unsupported(s, "break outside loop")
		}
		t.out.Writef("break;")
		return nil
	case *dsl.Continue:
		if t.loopDepth == 0 {
			return unsupported(s, "continue outside loop")
		}
		t.out.Writef("continue;")
		return nil
	case *dsl.ExprStmt:
		if c, ok := s.Value.(*dsl.Constant); ok && c.Kind == dsl.StringConst {
			return nil // docstring
		}
		code, err := t.expr(s.Value)
		if err != nil {
			return err
		}
		t.out.Writef("%s;", code)
		return nil
	case *dsl.Pass:
		return unsupported(s, "pass is not supported")
	case *dsl.Import:
		if s.From {
			return nil
		}
		return unsupported(s, "import statements are not supported")
	}
	return unsupported(s, "%s statements are not supported", dsl.NodeName(s))
}

// declare handles `name: T [= value]` and `name: carray[T] = carray(...)`.
func (t *translator) declare(s *dsl.AnnAssign) error {
	target, ok := s.Target.(*dsl.Name)
	if !ok {
		return unsupported(s.Target, "declaration target must be a plain name, not %s", dsl.NodeName(s.Target))
	}
	ctype, isArray, err := t.resolveAnnotation(s.Annotation)
	if err != nil {
		return err
	}
	if prev, ok := t.syms.Lookup(target.ID); ok && (prev.Origin == Buffer || prev.Origin == External) {
		return invalidDecl(s, "cannot redeclare %s %q", prev.Origin, target.ID)
	}

	if isArray {
		size, init, err := t.arrayInit(s)
		if err != nil {
			return err
		}
		t.syms.Define(Symbol{Name: target.ID, Type: ctype, IsArray: true, Len: size, Origin: Local})
		t.out.Writef("%s %s[%d] = %s;", ctype, target.ID, size, init)
		return nil
	}

	if s.Value == nil {
		t.syms.Define(Symbol{Name: target.ID, Type: ctype, Origin: Local})
		t.out.Writef("%s %s;", ctype, target.ID)
		return nil
	}
	value, err := t.expr(s.Value)
	if err != nil {
		return err
	}
	t.syms.Define(Symbol{Name: target.ID, Type: ctype, Origin: Local})
	t.out.Writef("%s %s = %s;", ctype, target.ID, value)
	return nil
}

// resolveAnnotation maps an annotation to its C type and array-ness.
func (t *translator) resolveAnnotation(ann dsl.Expr) (Type, bool, error) {
	switch a := ann.(type) {
	case *dsl.Name:
		if t.reg.Known(Type(a.ID)) {
			return Type(a.ID), false, nil
		}
		return Unknown, false, invalidDecl(a, "unknown type %q", a.ID)
	case *dsl.Subscript:
		if base, ok := a.Value.(*dsl.Name); ok && base.ID == ArrayConstructor {
			elem, isArray, err := t.resolveAnnotation(a.Index)
			if err != nil {
				return Unknown, false, err
			}
			if isArray {
				return Unknown, false, unsupported(a, "multi-dimensional arrays are not supported")
			}
			return elem, true, nil
		}
	}
	return Unknown, false, invalidDecl(ann, "unsupported type annotation %s", dsl.NodeName(ann))
}

// arrayInit validates carray(N) or carray([e1, ...]) and returns the element
// count and the C initializer list.
func (t *translator) arrayInit(s *dsl.AnnAssign) (int, string, error) {
	call, ok := s.Value.(*dsl.Call)
	if ok {
		fn, isName := call.Func.(*dsl.Name)
		ok = isName && fn.ID == ArrayConstructor
	}
	if !ok {
		return 0, "", invalidDecl(s, "array declaration needs a %s(...) initializer", ArrayConstructor)
	}
	if len(call.Args) != 1 {
		return 0, "", invalidDecl(call, "%s() takes exactly one argument, got %d", ArrayConstructor, len(call.Args))
	}

	switch arg := call.Args[0].(type) {
	case *dsl.Constant:
		n, isInt := arg.Value.(uint64)
		if arg.Kind != dsl.IntConst || !isInt {
			break
		}
		if n == 0 {
			return 0, "", invalidDecl(arg, "array size must be positive, got 0")
		}
		if n > math.MaxInt32 {
			return 0, "", invalidDecl(arg, "array size %d is too large", n)
		}
		return int(n), "{0}", nil
	case *dsl.List:
		if len(arg.Elts) == 0 {
			return 0, "", invalidDecl(arg, "array initializer list is empty")
		}
		elems, err := t.exprs(arg.Elts)
		if err != nil {
			return 0, "", err
		}
		return len(elems), "{" + strings.Join(elems, ", ") + "}", nil
	}
	return 0, "", invalidDecl(call.Args[0], "%s() argument must be an integer or a list literal", ArrayConstructor)
}

// baseName returns the variable at the root of a Name/Attribute/Subscript
// chain, or "" when the chain starts elsewhere (e.g. f().x).
func baseName(e dsl.Expr) string {
	switch e := e.(type) {
	case *dsl.Name:
		return e.ID
	case *dsl.Attribute:
		return baseName(e.Value)
	case *dsl.Subscript:
		return baseName(e.Value)
	}
	return ""
}

// checkTarget enforces declare-before-assign and rejects whole-array
// assignment.
func (t *translator) checkTarget(target dsl.Expr) error {
	name := baseName(target)
	if name == "" {
		return nil
	}
	sym, ok := t.syms.Lookup(name)
	if !ok {
		return undeclared(target, "%q must be declared before it is assigned", name)
	}
	if _, whole := target.(*dsl.Name); whole && sym.IsArray {
		return unsupported(target, "cannot assign to whole array %q, assign to its elements", name)
	}
	return nil
}

func (t *translator) assign(s *dsl.Assign) error {
	if len(s.Targets) != 1 {
		return unsupported(s, "chained assignment is not supported")
	}
	target := s.Targets[0]
	switch target.(type) {
	case *dsl.Tuple, *dsl.List:
		return unsupported(target, "destructuring assignment is not supported")
	}

	value, err := t.expr(s.Value)
	if err != nil {
		return err
	}
	lhs, err := t.expr(target)
	if err != nil {
		return err
	}
	if err := t.checkTarget(target); err != nil {
		return err
	}
	t.out.Writef("%s = %s;", lhs, value)
	return nil
}

func (t *translator) augAssign(s *dsl.AugAssign) error {
	if err := t.checkTarget(s.Target); err != nil {
		return err
	}
	lhs, err := t.expr(s.Target)
	if err != nil {
		return err
	}
	rhs, err := t.expr(s.Value)
	if err != nil {
		return err
	}

	lt := t.infer(s.Target)
	if !t.reg.IsVector(lt) {
		t.out.Writef("%s %s= %s;", lhs, s.Op, rhs)
		return nil
	}
	vec := t.reg.Vector()
	switch s.Op {
	case dsl.Add:
		t.out.Writef("%s = %s(%s, %s);", lhs, vec.AddFunc, lhs, rhs)
	case dsl.Mult:
		t.out.Writef("%s = %s(%s, %s);", lhs, vec.ScaleFunc, lhs, rhs)
	default:
		return mismatch(s, "operator %s= is not defined for %s", s.Op, lt)
	}
	return nil
}

func (t *translator) ifStmt(s *dsl.If) error {
	cond, err := t.expr(s.Test)
	if err != nil {
		return err
	}
	t.out.Writef("if (%s) {", cond)
	if err := t.out.Block(func() error { return t.stmts(s.Body) }); err != nil {
		return err
	}
	if len(s.OrElse) > 0 {
		t.out.Writef("} else {")
		if err := t.out.Block(func() error { return t.stmts(s.OrElse) }); err != nil {
			return err
		}
	}
	t.out.Writef("}")
	return nil
}

func (t *translator) while(s *dsl.While) error {
	if len(s.OrElse) > 0 {
		return unsupported(s, "while-else is not supported")
	}
	cond, err := t.expr(s.Test)
	if err != nil {
		return err
	}
	t.out.Writef("while (%s) {", cond)
	if err := t.loopBody(s.Body); err != nil {
		return err
	}
	t.out.Writef("}")
	return nil
}

// forRange handles `for name in range(...)`, declaring name as int before
// the loop the first time it is seen.
func (t *translator) forRange(s *dsl.For) error {
	if len(s.OrElse) > 0 {
		return unsupported(s, "for-else is not supported")
	}
	target, ok := s.Target.(*dsl.Name)
	if !ok {
		return unsupported(s.Target, "loop variable must be a plain name")
	}
	call, ok := s.Iter.(*dsl.Call)
	if ok {
		fn, isName := call.Func.(*dsl.Name)
		ok = isName && fn.ID == RangeFunc
	}
	if !ok {
		return unsupported(s.Iter, "only %s() loops are supported", RangeFunc)
	}
	if n := len(call.Args); n < 1 || n > 3 {
		return unsupported(call, "%s() takes 1 to 3 arguments, got %d", RangeFunc, n)
	}

	args, err := t.exprs(call.Args)
	if err != nil {
		return err
	}
	start, stop, step := "0", args[0], "1"
	cmp := "<"
	switch len(args) {
	case 2:
		start, stop = args[0], args[1]
	case 3:
		start, stop, step = args[0], args[1], args[2]
		switch sign := literalSign(call.Args[2]); {
		case sign == 0:
			return unsupported(call.Args[2], "%s() step must not be zero", RangeFunc)
		case sign < 0:
			cmp = ">"
		}
	}

	v := target.ID
	if sym, ok := t.syms.Lookup(v); !ok {
		t.syms.Define(Symbol{Name: v, Type: Int, Origin: LoopVar})
		t.out.Writef("int %s;", v)
	} else if sym.Origin == Buffer || sym.Origin == External {
		return invalidDecl(target, "cannot use %s %q as a loop variable", sym.Origin, v)
	} else if sym.IsArray {
		return unsupported(target, "cannot use whole array %q as a loop variable", v)
	}

	t.out.Writef("for (%s = %s; %s %s %s; %s += %s) {", v, start, v, cmp, stop, v, step)
	if err := t.loopBody(s.Body); err != nil {
		return err
	}
	t.out.Writef("}")
	return nil
}

func (t *translator) loopBody(body []dsl.Stmt) error {
	t.loopDepth++
	defer func() { t.loopDepth-- }()
	return t.out.Block(func() error { return t.stmts(body) })
}

// literalSign returns the sign of an integer literal, optionally negated,
// and 1 for anything that is not a literal.
func literalSign(e dsl.Expr) int {
	neg := false
	for {
		u, ok := e.(*dsl.UnaryOp)
		if !ok || (u.Op != dsl.USub && u.Op != dsl.UAdd) {
			break
		}
		if u.Op == dsl.USub {
			neg = !neg
		}
		e = u.Operand
	}
	c, ok := e.(*dsl.Constant)
	if !ok || c.Kind != dsl.IntConst {
		return 1
	}
	if n, _ := c.Value.(uint64); n == 0 {
		return 0
	}
	if neg {
		return -1
	}
	return 1
}
