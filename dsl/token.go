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

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota

	// Layout
	NEWLINE // end of a logical line
	INDENT  // indentation increased
	DEDENT  // indentation decreased

	// Literals
	NAME   // identifier
	INT    // integer literal
	FLOAT  // floating-point literal
	STRING // '...' or "..."

	// Arithmetic
	PLUS        // +
	MINUS       // -
	STAR        // *
	SLASH       // /
	PERCENT     // %
	DOUBLESTAR  // **
	DOUBLESLASH // //

	// Comparison
	LESS       // <
	GREATER    // >
	LESS_EQ    // <=
	GREATER_EQ // >=
	EQ         // ==
	NOT_EQ     // !=

	// Assignment
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	COLON     // :
	DOT       // .
	SEMICOLON // ;

	// Keywords
	IF
	ELIF
	ELSE
	WHILE
	FOR
	IN
	BREAK
	CONTINUE
	PASS
	AND
	OR
	NOT
	IS
	TRUE
	FALSE
	NONE
	FROM
	IMPORT

	// RESERVED covers keywords that are valid in the host grammar but have no
	// meaning in kernels (def, class, return, lambda, ...).
	RESERVED
)

var tokenNames = map[TokenType]string{
	EOF:            "EOF",
	NEWLINE:        "NEWLINE",
	INDENT:         "INDENT",
	DEDENT:         "DEDENT",
	NAME:           "NAME",
	INT:            "INT",
	FLOAT:          "FLOAT",
	STRING:         "STRING",
	PLUS:           "+",
	MINUS:          "-",
	STAR:           "*",
	SLASH:          "/",
	PERCENT:        "%",
	DOUBLESTAR:     "**",
	DOUBLESLASH:    "//",
	LESS:           "<",
	GREATER:        ">",
	LESS_EQ:        "<=",
	GREATER_EQ:     ">=",
	EQ:             "==",
	NOT_EQ:         "!=",
	ASSIGN:         "=",
	PLUS_ASSIGN:    "+=",
	MINUS_ASSIGN:   "-=",
	STAR_ASSIGN:    "*=",
	SLASH_ASSIGN:   "/=",
	PERCENT_ASSIGN: "%=",
	LPAREN:         "(",
	RPAREN:         ")",
	LBRACKET:       "[",
	RBRACKET:       "]",
	LBRACE:         "{",
	RBRACE:         "}",
	COMMA:          ",",
	COLON:          ":",
	DOT:            ".",
	SEMICOLON:      ";",
	IF:             "if",
	ELIF:           "elif",
	ELSE:           "else",
	WHILE:          "while",
	FOR:            "for",
	IN:             "in",
	BREAK:          "break",
	CONTINUE:       "continue",
	PASS:           "pass",
	AND:            "and",
	OR:             "or",
	NOT:            "not",
	IS:             "is",
	TRUE:           "True",
	FALSE:          "False",
	NONE:           "None",
	FROM:           "from",
	IMPORT:         "import",
	RESERVED:       "RESERVED",
}

// String returns the source spelling for operators and keywords, and the
// category name for everything else.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"pass":     PASS,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"is":       IS,
	"True":     TRUE,
	"False":    FALSE,
	"None":     NONE,
	"from":     FROM,
	"import":   IMPORT,

	"def":      RESERVED,
	"class":    RESERVED,
	"return":   RESERVED,
	"lambda":   RESERVED,
	"yield":    RESERVED,
	"with":     RESERVED,
	"as":       RESERVED,
	"try":      RESERVED,
	"except":   RESERVED,
	"finally":  RESERVED,
	"raise":    RESERVED,
	"global":   RESERVED,
	"nonlocal": RESERVED,
	"del":      RESERVED,
	"assert":   RESERVED,
	"async":    RESERVED,
	"await":    RESERVED,
}

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a lexical token. Lexeme holds the raw source text.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    Pos
}

func (t Token) String() string {
	switch t.Type {
	case NAME, INT, FLOAT, STRING, RESERVED:
		return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
	}
	return t.Type.String()
}
