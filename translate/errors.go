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
	"errors"
	"fmt"

	"github.com/epsilod/stencilgen/dsl"
)

// Failure kinds. Every error returned by this package is an *Error whose
// Kind is one of these, so callers can test with errors.Is.
var (
	// ErrSyntax reports source text the dsl parser rejected.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupportedConstruct reports valid syntax outside the kernel language.
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	// ErrInvalidDeclaration reports a bad annotation, array initializer or
	// parameter declaration.
	ErrInvalidDeclaration = errors.New("invalid declaration")
	// ErrUndeclaredVariable reports an assignment to a name never declared.
	ErrUndeclaredVariable = errors.New("undeclared variable")
	// ErrTypeMismatch reports a vector operand used with an operator it
	// does not support.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Error is a translation failure at a source position. Pos is zero for
// failures not tied to the kernel body, such as a bad parameter string.
type Error struct {
	Kind error
	Pos  dsl.Pos
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos == (dsl.Pos{}) {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %v: %s", e.Pos, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, node dsl.Node, format string, args ...any) *Error {
	var pos dsl.Pos
	if node != nil {
		pos = node.Position()
	}
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func unsupported(node dsl.Node, format string, args ...any) error {
	return newError(ErrUnsupportedConstruct, node, format, args...)
}

func invalidDecl(node dsl.Node, format string, args ...any) error {
	return newError(ErrInvalidDeclaration, node, format, args...)
}

func undeclared(node dsl.Node, format string, args ...any) error {
	return newError(ErrUndeclaredVariable, node, format, args...)
}

func mismatch(node dsl.Node, format string, args ...any) error {
	return newError(ErrTypeMismatch, node, format, args...)
}

// fromSyntaxError converts a parser failure into an *Error of kind ErrSyntax.
func fromSyntaxError(err error) error {
	var se *dsl.SyntaxError
	if errors.As(err, &se) {
		return &Error{Kind: ErrSyntax, Pos: se.Pos, Msg: se.Msg}
	}
	return &Error{Kind: ErrSyntax, Msg: err.Error()}
}
