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

package dsl

import (
	"strings"
	"unicode"
)

// tabWidth is the column multiple a tab advances indentation to.
const tabWidth = 8

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // 1-based
	col  int // 1-based

	indents     []int // indentation stack, always starts with 0
	depth       int   // bracket nesting; newlines inside brackets are ignored
	atLineStart bool

	tokens []Token
}

// NewLexer creates a lexer for src.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:         []rune(src),
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize scans src into tokens, including NEWLINE/INDENT/DEDENT layout
// tokens, terminated by EOF.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Tokenize()
}

// Tokenize runs the lexer to completion.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		if l.atLineStart && l.depth == 0 {
			skipped, err := l.scanIndentation()
			if err != nil {
				return nil, err
			}
			if skipped {
				continue
			}
		}

		l.skipBlanks()
		if l.pos >= len(l.src) {
			break
		}

		r := l.peek()
		switch {
		case r == '#':
			l.skipComment()
		case r == '\\' && l.peek2() == '\n':
			l.advance()
			l.advance()
		case r == '\\' && l.peek2() == '\r':
			l.advance()
			l.advance()
			if l.peek() == '\n' {
				l.advance()
			}
		case r == '\r':
			l.advance()
		case r == '\n':
			pos := l.here()
			l.advance()
			if l.depth == 0 {
				l.emit(NEWLINE, "", pos)
				l.atLineStart = true
			}
		case isIdentStart(r):
			l.scanName()
		case unicode.IsDigit(r) || (r == '.' && unicode.IsDigit(l.peek2())):
			if err := l.scanNumber(); err != nil {
				return nil, err
			}
		case r == '"' || r == '\'':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		default:
			if err := l.scanOperator(); err != nil {
				return nil, err
			}
		}
	}

	if l.depth > 0 {
		return nil, errorf(l.here(), "unexpected end of input inside brackets")
	}
	end := l.here()
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Type != NEWLINE && l.tokens[n-1].Type != DEDENT {
		l.emit(NEWLINE, "", end)
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DEDENT, "", end)
	}
	l.emit(EOF, "", end)
	return l.tokens, nil
}

// scanIndentation measures the leading whitespace of a physical line and
// emits INDENT/DEDENT tokens. Blank and comment-only lines report skipped
// and produce no tokens.
func (l *Lexer) scanIndentation() (skipped bool, err error) {
	width := 0
measure:
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ':
			width++
		case '\t':
			width = (width/tabWidth + 1) * tabWidth
		case '\f':
			width = 0
		default:
			break measure
		}
		l.advance()
	}

	switch l.peek() {
	case '#':
		l.skipComment()
		fallthrough
	case '\r', '\n':
		if l.peek() == '\r' {
			l.advance()
		}
		if l.peek() == '\n' {
			l.advance()
		}
		return true, nil
	case 0:
		if l.pos >= len(l.src) {
			l.atLineStart = false
			return false, nil
		}
	}

	l.atLineStart = false
	pos := l.here()
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.emit(INDENT, "", pos)
	case width < top:
		for width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(DEDENT, "", pos)
		}
		if width != l.indents[len(l.indents)-1] {
			return false, errorf(pos, "unindent does not match any outer indentation level")
		}
	}
	return false, nil
}

func (l *Lexer) scanName() {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := NAME
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	l.emit(tt, lexeme, pos)
}

// scanNumber accepts decimal, hex, octal and binary integers (with '_'
// separators) and decimal floats with optional exponent.
func (l *Lexer) scanNumber() error {
	pos := l.here()
	start := l.pos
	tt := INT

	if l.peek() == '0' && strings.ContainsRune("xXoObB", l.peek2()) {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && (isHexDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	} else {
		l.scanDigits()
		if l.peek() == '.' {
			tt = FLOAT
			l.advance()
			l.scanDigits()
		}
		if r := l.peek(); r == 'e' || r == 'E' {
			next := l.peek2()
			if unicode.IsDigit(next) || ((next == '+' || next == '-') && l.pos+2 < len(l.src) && unicode.IsDigit(l.src[l.pos+2])) {
				tt = FLOAT
				l.advance()
				if l.peek() == '+' || l.peek() == '-' {
					l.advance()
				}
				l.scanDigits()
			}
		}
	}

	if r := l.peek(); isIdentPart(r) && r != 0 {
		return errorf(l.here(), "invalid numeric literal %q", string(l.src[start:l.pos+1]))
	}
	l.emit(tt, string(l.src[start:l.pos]), pos)
	return nil
}

func (l *Lexer) scanDigits() {
	for l.pos < len(l.src) && (unicode.IsDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
}

// scanString accepts single, double and triple-quoted strings. The lexeme
// keeps its quotes; unquote decodes it.
func (l *Lexer) scanString() error {
	pos := l.here()
	start := l.pos
	quote := l.peek()
	triple := l.pos+2 < len(l.src) && l.src[l.pos+1] == quote && l.src[l.pos+2] == quote
	if triple {
		l.advance()
		l.advance()
	}
	l.advance()

	for {
		if l.pos >= len(l.src) {
			return errorf(pos, "unterminated string literal")
		}
		r := l.peek()
		switch {
		case r == '\\':
			l.advance()
			l.advance()
			continue
		case r == '\n' && !triple:
			return errorf(pos, "unterminated string literal")
		case r == quote && !triple:
			l.advance()
			l.emit(STRING, string(l.src[start:l.pos]), pos)
			return nil
		case r == quote && l.pos+2 < len(l.src) && l.src[l.pos+1] == quote && l.src[l.pos+2] == quote:
			l.advance()
			l.advance()
			l.advance()
			l.emit(STRING, string(l.src[start:l.pos]), pos)
			return nil
		}
		l.advance()
	}
}

// operators lists multi-character operators before their prefixes.
var operators = []struct {
	text string
	tt   TokenType
}{
	{"**", DOUBLESTAR},
	{"//", DOUBLESLASH},
	{"<=", LESS_EQ},
	{">=", GREATER_EQ},
	{"==", EQ},
	{"!=", NOT_EQ},
	{"+=", PLUS_ASSIGN},
	{"-=", MINUS_ASSIGN},
	{"*=", STAR_ASSIGN},
	{"/=", SLASH_ASSIGN},
	{"%=", PERCENT_ASSIGN},
	{"+", PLUS},
	{"-", MINUS},
	{"*", STAR},
	{"/", SLASH},
	{"%", PERCENT},
	{"<", LESS},
	{">", GREATER},
	{"=", ASSIGN},
	{"(", LPAREN},
	{")", RPAREN},
	{"[", LBRACKET},
	{"]", RBRACKET},
	{"{", LBRACE},
	{"}", RBRACE},
	{",", COMMA},
	{":", COLON},
	{".", DOT},
	{";", SEMICOLON},
}

// unsupportedOperators are valid in the host grammar but not in kernels.
var unsupportedOperators = []string{
	"**=", "//=", "<<=", ">>=", "&=", "|=", "^=", "@=", ":=", "->",
	"<<", ">>", "&", "|", "^", "~", "@",
}

func (l *Lexer) scanOperator() error {
	pos := l.here()
	rest := string(l.src[l.pos:min(l.pos+3, len(l.src))])

	for _, op := range unsupportedOperators {
		if strings.HasPrefix(rest, op) {
			return errorf(pos, "operator %q is not supported", op)
		}
	}
	for _, op := range operators {
		if !strings.HasPrefix(rest, op.text) {
			continue
		}
		for range len(op.text) {
			l.advance()
		}
		switch op.tt {
		case LPAREN, LBRACKET, LBRACE:
			l.depth++
		case RPAREN, RBRACKET, RBRACE:
			if l.depth == 0 {
				return errorf(pos, "unmatched %q", op.text)
			}
			l.depth--
		}
		l.emit(op.tt, op.text, pos)
		return nil
	}
	return errorf(pos, "unexpected character %q", l.peek())
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ', '\t', '\f':
			l.advance()
		default:
			return
		}
	}
}

// skipComment discards everything up to (not including) the end of line.
func (l *Lexer) skipComment() {
	for l.pos < len(l.src) && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
}

func (l *Lexer) emit(tt TokenType, lexeme string, pos Pos) {
	l.tokens = append(l.tokens, Token{Type: tt, Lexeme: lexeme, Pos: pos})
}

func (l *Lexer) here() Pos {
	return Pos{Line: l.line, Col: l.col}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// unquote decodes a STRING lexeme.
func unquote(lexeme string) string {
	body := lexeme
	switch {
	case len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)):
		body = body[3 : len(body)-3]
	case len(body) >= 2:
		body = body[1 : len(body)-1]
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '\'', '"':
			sb.WriteByte(body[i])
		case '\n':
			// line continuation inside the literal
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}
