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

// Package dsl parses the kernel language: a Python-shaped subset with typed
// declarations, assignments, if/while/for-range control flow, arithmetic,
// boolean and comparison expressions, fixed-size arrays and one vector type.
//
// Expressions and statements are closed sum types: every node implements
// Expr or Stmt through an unexported marker method, so consumers can switch
// over the complete set of node kinds.
package dsl

import "fmt"

// Node is implemented by every AST node.
type Node interface {
	Position() Pos
}

// Expr is an expression node: *Name, *Constant, *BinaryOp, *UnaryOp,
// *BoolOp, *Compare, *Call, *Attribute, *Subscript, *IfExp, *List or *Tuple.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node: *AnnAssign, *Assign, *AugAssign, *If, *While,
// *For, *Break, *Continue, *ExprStmt, *Pass or *Import.
type Stmt interface {
	Node
	stmtNode()
}

// Module is a parsed kernel body.
type Module struct {
	Body []Stmt
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// BinOpKind is an arithmetic operator.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mult
	Div
	Mod
	Pow
	FloorDiv
)

func (op BinOpKind) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "**"
	case FloorDiv:
		return "//"
	default:
		return fmt.Sprintf("BinOpKind(%d)", int(op))
	}
}

// UnaryOpKind is a prefix operator.
type UnaryOpKind int

const (
	UAdd UnaryOpKind = iota
	USub
	Not
)

func (op UnaryOpKind) String() string {
	switch op {
	case UAdd:
		return "+"
	case USub:
		return "-"
	case Not:
		return "not"
	default:
		return fmt.Sprintf("UnaryOpKind(%d)", int(op))
	}
}

// BoolOpKind is a short-circuit boolean operator.
type BoolOpKind int

const (
	And BoolOpKind = iota
	Or
)

func (op BoolOpKind) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return fmt.Sprintf("BoolOpKind(%d)", int(op))
	}
}

// CmpOpKind is a comparison operator.
type CmpOpKind int

const (
	Lt CmpOpKind = iota
	Gt
	LtE
	GtE
	Eq
	NotEq
)

func (op CmpOpKind) String() string {
	switch op {
	case Lt:
		return "<"
	case Gt:
		return ">"
	case LtE:
		return "<="
	case GtE:
		return ">="
	case Eq:
		return "=="
	case NotEq:
		return "!="
	default:
		return fmt.Sprintf("CmpOpKind(%d)", int(op))
	}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Name is an identifier reference.
type Name struct {
	Pos Pos
	ID  string
}

// ConstKind classifies a Constant.
type ConstKind int

const (
	IntConst ConstKind = iota
	FloatConst
	BoolConst
	StringConst
	NoneConst
)

// Constant is a literal. Value holds uint64, float64, bool, string or nil
// according to Kind. Integer literals are unsigned; a minus sign is a UnaryOp.
type Constant struct {
	Pos   Pos
	Kind  ConstKind
	Value any
}

// BinaryOp is Left Op Right.
type BinaryOp struct {
	Pos   Pos
	Op    BinOpKind
	Left  Expr
	Right Expr
}

// UnaryOp is Op Operand.
type UnaryOp struct {
	Pos     Pos
	Op      UnaryOpKind
	Operand Expr
}

// BoolOp joins two or more Values with the same operator.
type BoolOp struct {
	Pos    Pos
	Op     BoolOpKind
	Values []Expr
}

// Compare is a possibly chained comparison: Left Ops[0] Comparators[0] ...
type Compare struct {
	Pos         Pos
	Left        Expr
	Ops         []CmpOpKind
	Comparators []Expr
}

// Call is Func(Args...). Keyword arguments are not part of the language.
type Call struct {
	Pos  Pos
	Func Expr
	Args []Expr
}

// Attribute is Value.Attr.
type Attribute struct {
	Pos   Pos
	Value Expr
	Attr  string
}

// Subscript is Value[Index].
type Subscript struct {
	Pos   Pos
	Value Expr
	Index Expr
}

// IfExp is the conditional expression `Body if Test else OrElse`.
type IfExp struct {
	Pos    Pos
	Test   Expr
	Body   Expr
	OrElse Expr
}

// List is a bracketed sequence literal.
type List struct {
	Pos  Pos
	Elts []Expr
}

// Tuple is a comma-separated sequence, parenthesized or bare.
type Tuple struct {
	Pos  Pos
	Elts []Expr
}

func (n *Name) Position() Pos      { return n.Pos }
func (n *Constant) Position() Pos  { return n.Pos }
func (n *BinaryOp) Position() Pos  { return n.Pos }
func (n *UnaryOp) Position() Pos   { return n.Pos }
func (n *BoolOp) Position() Pos    { return n.Pos }
func (n *Compare) Position() Pos   { return n.Pos }
func (n *Call) Position() Pos      { return n.Pos }
func (n *Attribute) Position() Pos { return n.Pos }
func (n *Subscript) Position() Pos { return n.Pos }
func (n *IfExp) Position() Pos     { return n.Pos }
func (n *List) Position() Pos      { return n.Pos }
func (n *Tuple) Position() Pos     { return n.Pos }

func (*Name) exprNode()      {}
func (*Constant) exprNode()  {}
func (*BinaryOp) exprNode()  {}
func (*UnaryOp) exprNode()   {}
func (*BoolOp) exprNode()    {}
func (*Compare) exprNode()   {}
func (*Call) exprNode()      {}
func (*Attribute) exprNode() {}
func (*Subscript) exprNode() {}
func (*IfExp) exprNode()     {}
func (*List) exprNode()      {}
func (*Tuple) exprNode()     {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// AnnAssign is a typed declaration `Target: Annotation [= Value]`.
// Value is nil for a bare declaration.
type AnnAssign struct {
	Pos        Pos
	Target     Expr
	Annotation Expr
	Value      Expr
}

// Assign is `Targets[0] = Targets[1] = ... = Value`.
type Assign struct {
	Pos     Pos
	Targets []Expr
	Value   Expr
}

// AugAssign is `Target Op= Value`.
type AugAssign struct {
	Pos    Pos
	Target Expr
	Op     BinOpKind
	Value  Expr
}

// If is a conditional. An elif chain is an If nested alone in OrElse.
type If struct {
	Pos    Pos
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// While is a pre-tested loop with an optional else clause.
type While struct {
	Pos    Pos
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// For is `for Target in Iter:` with an optional else clause.
type For struct {
	Pos    Pos
	Target Expr
	Iter   Expr
	Body   []Stmt
	OrElse []Stmt
}

// Break exits the innermost loop.
type Break struct {
	Pos Pos
}

// Continue jumps to the next iteration of the innermost loop.
type Continue struct {
	Pos Pos
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Pos   Pos
	Value Expr
}

// Pass is the empty statement.
type Pass struct {
	Pos Pos
}

// Import is `import Module` or, with From set, `from Module import Names`.
// Names holds "*" for a wildcard import.
type Import struct {
	Pos    Pos
	From   bool
	Module string
	Names  []string
}

func (n *AnnAssign) Position() Pos { return n.Pos }
func (n *Assign) Position() Pos    { return n.Pos }
func (n *AugAssign) Position() Pos { return n.Pos }
func (n *If) Position() Pos        { return n.Pos }
func (n *While) Position() Pos     { return n.Pos }
func (n *For) Position() Pos       { return n.Pos }
func (n *Break) Position() Pos     { return n.Pos }
func (n *Continue) Position() Pos  { return n.Pos }
func (n *ExprStmt) Position() Pos  { return n.Pos }
func (n *Pass) Position() Pos      { return n.Pos }
func (n *Import) Position() Pos    { return n.Pos }

func (*AnnAssign) stmtNode() {}
func (*Assign) stmtNode()    {}
func (*AugAssign) stmtNode() {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*For) stmtNode()       {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*ExprStmt) stmtNode()  {}
func (*Pass) stmtNode()      {}
func (*Import) stmtNode()    {}

// NodeName returns the kind name of a node, e.g. "Subscript", for messages.
func NodeName(n Node) string {
	switch n.(type) {
	case *Name:
		return "Name"
	case *Constant:
		return "Constant"
	case *BinaryOp:
		return "BinaryOp"
	case *UnaryOp:
		return "UnaryOp"
	case *BoolOp:
		return "BoolOp"
	case *Compare:
		return "Compare"
	case *Call:
		return "Call"
	case *Attribute:
		return "Attribute"
	case *Subscript:
		return "Subscript"
	case *IfExp:
		return "IfExp"
	case *List:
		return "List"
	case *Tuple:
		return "Tuple"
	case *AnnAssign:
		return "AnnAssign"
	case *Assign:
		return "Assign"
	case *AugAssign:
		return "AugAssign"
	case *If:
		return "If"
	case *While:
		return "While"
	case *For:
		return "For"
	case *Break:
		return "Break"
	case *Continue:
		return "Continue"
	case *ExprStmt:
		return "ExprStmt"
	case *Pass:
		return "Pass"
	case *Import:
		return "Import"
	default:
		return fmt.Sprintf("%T", n)
	}
}
