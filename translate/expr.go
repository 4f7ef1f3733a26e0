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
	"math"
	"strconv"
	"strings"

	"github.com/epsilod/stencilgen/dsl"
)

// expr renders e as C text. It never modifies the symbol table.
func (t *translator) expr(e dsl.Expr) (string, error) {
	switch e := e.(type) {
	case *dsl.Name:
		return t.name(e), nil
	case *dsl.Constant:
		return constant(e)
	case *dsl.BinaryOp:
		return t.binary(e)
	case *dsl.UnaryOp:
		return t.unary(e)
	case *dsl.BoolOp:
		return t.boolOp(e)
	case *dsl.Compare:
		return t.compare(e)
	case *dsl.Call:
		return t.call(e)
	case *dsl.Attribute:
		value, err := t.expr(e.Value)
		if err != nil {
			return "", err
		}
		return value + "." + e.Attr, nil
	case *dsl.Subscript:
		return t.subscript(e)
	case *dsl.IfExp:
		return t.ifExp(e)
	case *dsl.List:
		return "", unsupported(e, "list literals are only allowed in %s() initializers", ArrayConstructor)
	case *dsl.Tuple:
		return "", unsupported(e, "tuples are not supported")
	}
	return "", unsupported(e, "%s expressions are not supported", dsl.NodeName(e))
}

// exprs renders each expression in order.
func (t *translator) exprs(list []dsl.Expr) ([]string, error) {
	out := make([]string, len(list))
	for i, e := range list {
		s, err := t.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (t *translator) name(n *dsl.Name) string {
	if sym, ok := t.syms.Lookup(n.ID); ok && sym.Origin == External {
		return ExtParamsAccessor + "." + n.ID
	}
	return n.ID
}

func constant(c *dsl.Constant) (string, error) {
	switch v := c.Value.(type) {
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return formatFloat(v), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case string:
		return cQuote(v), nil
	}
	return "", unsupported(c, "None has no C equivalent")
}

// formatFloat renders f in shortest round-trip form, always recognizable as
// a floating-point literal: integral values get ".0" and very small or very
// large magnitudes use an exponent.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// cQuote renders s as a C string literal.
func cQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\%03o`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (t *translator) binary(e *dsl.BinaryOp) (string, error) {
	if e.Op == dsl.Pow || e.Op == dsl.FloorDiv {
		return "", unsupported(e, "operator %s has no C equivalent", e.Op)
	}
	left, err := t.expr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := t.expr(e.Right)
	if err != nil {
		return "", err
	}

	lt, rt := t.infer(e.Left), t.infer(e.Right)
	lv, rv := t.reg.IsVector(lt), t.reg.IsVector(rt)
	if !lv && !rv {
		return fmt.Sprintf("(%s %s %s)", left, e.Op, right), nil
	}

	// The vector operand of a scale goes first; the left one when both are.
	vec := t.reg.Vector()
	switch e.Op {
	case dsl.Add:
		return fmt.Sprintf("%s(%s, %s)", vec.AddFunc, left, right), nil
	case dsl.Mult:
		if lv {
			return fmt.Sprintf("%s(%s, %s)", vec.ScaleFunc, left, right), nil
		}
		return fmt.Sprintf("%s(%s, %s)", vec.ScaleFunc, right, left), nil
	}
	return "", mismatch(e, "operator %s is not defined for %s", e.Op, vec.Name)
}

func (t *translator) unary(e *dsl.UnaryOp) (string, error) {
	operand, err := t.expr(e.Operand)
	if err != nil {
		return "", err
	}
	if ot := t.infer(e.Operand); t.reg.IsVector(ot) {
		return "", mismatch(e, "operator %s is not defined for %s", e.Op, ot)
	}
	op := e.Op.String()
	if e.Op == dsl.Not {
		op = "!"
	}
	return "(" + op + operand + ")", nil
}

func (t *translator) boolOp(e *dsl.BoolOp) (string, error) {
	values, err := t.exprs(e.Values)
	if err != nil {
		return "", err
	}
	op := " && "
	if e.Op == dsl.Or {
		op = " || "
	}
	return "(" + strings.Join(values, op) + ")", nil
}

// compare lowers a chain a < b < c to ((a < b) && (b < c)). Interior
// operands appear, and are evaluated, twice.
func (t *translator) compare(e *dsl.Compare) (string, error) {
	left, err := t.expr(e.Left)
	if err != nil {
		return "", err
	}
	rights, err := t.exprs(e.Comparators)
	if err != nil {
		return "", err
	}
	pairs := make([]string, len(e.Ops))
	for i, op := range e.Ops {
		pairs[i] = fmt.Sprintf("(%s %s %s)", left, op, rights[i])
		left = rights[i]
	}
	if len(pairs) == 1 {
		return pairs[0], nil
	}
	return "(" + strings.Join(pairs, " && ") + ")", nil
}

func (t *translator) call(e *dsl.Call) (string, error) {
	if fn, ok := e.Func.(*dsl.Name); ok {
		switch {
		case fn.ID == ArrayConstructor:
			return "", unsupported(e, "%s() is only allowed as an array declaration initializer", ArrayConstructor)
		case t.reg.IsVector(Type(fn.ID)):
			args, err := t.exprs(e.Args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("((%s){%s})", fn.ID, strings.Join(args, ", ")), nil
		}
	}

	fn, err := t.expr(e.Func)
	if err != nil {
		return "", err
	}
	args, err := t.exprs(e.Args)
	if err != nil {
		return "", err
	}
	return fn + "(" + strings.Join(args, ", ") + ")", nil
}

func (t *translator) subscript(e *dsl.Subscript) (string, error) {
	value, err := t.expr(e.Value)
	if err != nil {
		return "", err
	}
	index, err := t.expr(e.Index)
	if err != nil {
		return "", err
	}
	if wrapsStorage(e.Value) {
		return value + ".data[" + index + "]", nil
	}
	return value + "[" + index + "]", nil
}

// wrapsStorage reports whether e is a rotating buffer or a neighbor access,
// whose elements live behind a .data field.
func wrapsStorage(e dsl.Expr) bool {
	switch e := e.(type) {
	case *dsl.Name:
		return IsRotatingBuffer(e.ID)
	case *dsl.Call:
		fn, ok := e.Func.(*dsl.Name)
		return ok && fn.ID == NeighborAccessor
	}
	return false
}

func (t *translator) ifExp(e *dsl.IfExp) (string, error) {
	test, err := t.expr(e.Test)
	if err != nil {
		return "", err
	}
	body, err := t.expr(e.Body)
	if err != nil {
		return "", err
	}
	orElse, err := t.expr(e.OrElse)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s ? %s : %s)", test, body, orElse), nil
}
