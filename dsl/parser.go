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
	"strconv"
	"strings"
)

// Parser consumes the token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	module      = (NEWLINE | statement)* EOF
//	statement   = if | while | for | simple
//	simple      = small (";" small)* [";"] NEWLINE
//	small       = "pass" | "break" | "continue" | import | exprStmt
//	import      = "import" dotted | "from" dotted "import" ("*" | names)
//	exprStmt    = testlist (":" test ["=" testlist] | augop testlist | ("=" testlist)*)
//	if          = "if" test block ("elif" test block)* ["else" block]
//	while       = "while" test block ["else" block]
//	for         = "for" targets "in" testlist block ["else" block]
//	block       = ":" (simple | NEWLINE INDENT statement+ DEDENT)
//	testlist    = test ("," test)* [","]
//	test        = or ["if" or "else" test]
//	or          = and ("or" and)*
//	and         = not ("and" not)*
//	not         = "not" not | comparison
//	comparison  = arith (cmpop arith)*
//	arith       = term (("+" | "-") term)*
//	term        = factor (("*" | "/" | "%" | "//") factor)*
//	factor      = ("+" | "-") factor | power
//	power       = postfix ["**" factor]
//	postfix     = atom ("(" args ")" | "[" test "]" | "." NAME)*
//	atom        = NAME | number | STRING+ | True | False | None
//	            | "(" [test ("," test)* [","]] ")" | "[" [test ("," test)* [","]] "]"
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over a token slice terminated by EOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a kernel body.
func Parse(src string) (*Module, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseModule()
}

// ParseModule parses the whole token stream.
func (p *Parser) ParseModule() (*Module, error) {
	mod := &Module{}
	for p.peek().Type != EOF {
		switch p.peek().Type {
		case NEWLINE:
			p.advance()
			continue
		case INDENT:
			return nil, p.errorAt(p.peek(), "unexpected indent")
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		mod.Body = append(mod.Body, stmts...)
	}
	return mod, nil
}

// ---------------------------------------------------------------------------
// Token helpers
// ---------------------------------------------------------------------------

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorAt(tok, "expected %s, got %s", tt, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	return errorf(tok.Pos, format, args...)
}

func describe(tok Token) string {
	if tok.Lexeme != "" {
		return strconv.Quote(tok.Lexeme)
	}
	return tok.Type.String()
}

// startsExpr reports whether a token can begin an expression.
func startsExpr(tt TokenType) bool {
	switch tt {
	case NAME, INT, FLOAT, STRING, TRUE, FALSE, NONE,
		LPAREN, LBRACKET, LBRACE, PLUS, MINUS, NOT:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) parseStatement() ([]Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case IF:
		s, err := p.parseIf()
		return []Stmt{s}, err
	case WHILE:
		s, err := p.parseWhile()
		return []Stmt{s}, err
	case FOR:
		s, err := p.parseFor()
		return []Stmt{s}, err
	case ELIF, ELSE:
		return nil, p.errorAt(tok, "%q without a matching if", tok.Lexeme)
	case RESERVED:
		return nil, p.errorAt(tok, "%q is not supported in kernels", tok.Lexeme)
	}
	return p.parseSimpleStmt()
}

func (p *Parser) parseSimpleStmt() ([]Stmt, error) {
	var stmts []Stmt
	for {
		s, err := p.parseSmallStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if p.peek().Type != SEMICOLON {
			break
		}
		p.advance()
		if p.peek().Type == NEWLINE {
			break
		}
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseSmallStmt() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case PASS:
		p.advance()
		return &Pass{Pos: tok.Pos}, nil
	case BREAK:
		p.advance()
		return &Break{Pos: tok.Pos}, nil
	case CONTINUE:
		p.advance()
		return &Continue{Pos: tok.Pos}, nil
	case IMPORT:
		p.advance()
		mod, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		return &Import{Pos: tok.Pos, Module: mod}, nil
	case FROM:
		return p.parseFromImport()
	case RESERVED:
		return nil, p.errorAt(tok, "%q is not supported in kernels", tok.Lexeme)
	}
	return p.parseExprStmt()
}

func (p *Parser) parseDottedName() (string, error) {
	var sb strings.Builder
	for p.peek().Type == DOT {
		p.advance()
		sb.WriteByte('.')
	}
	name, err := p.expect(NAME)
	if err != nil {
		return "", err
	}
	sb.WriteString(name.Lexeme)
	for p.peek().Type == DOT {
		p.advance()
		name, err := p.expect(NAME)
		if err != nil {
			return "", err
		}
		sb.WriteByte('.')
		sb.WriteString(name.Lexeme)
	}
	return sb.String(), nil
}

func (p *Parser) parseFromImport() (Stmt, error) {
	tok := p.advance()
	mod, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IMPORT); err != nil {
		return nil, err
	}
	imp := &Import{Pos: tok.Pos, From: true, Module: mod}
	if p.peek().Type == STAR {
		p.advance()
		imp.Names = []string{"*"}
		return imp, nil
	}

	paren := p.peek().Type == LPAREN
	if paren {
		p.advance()
	}
	for {
		name, err := p.expect(NAME)
		if err != nil {
			return nil, err
		}
		imp.Names = append(imp.Names, name.Lexeme)
		if p.peek().Type != COMMA {
			break
		}
		p.advance()
		if paren && p.peek().Type == RPAREN {
			break
		}
	}
	if paren {
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
	}
	return imp, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	start := p.peek()
	first, err := p.parseTestList()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	switch tok.Type {
	case COLON:
		switch first.(type) {
		case *Tuple, *List:
			return nil, p.errorAt(start, "only a single target can be annotated")
		}
		if err := checkAssignTarget(first); err != nil {
			return nil, err
		}
		p.advance()
		ann, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		decl := &AnnAssign{Pos: start.Pos, Target: first, Annotation: ann}
		if p.peek().Type == ASSIGN {
			p.advance()
			if decl.Value, err = p.parseTestList(); err != nil {
				return nil, err
			}
		}
		return decl, nil

	case PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN:
		switch first.(type) {
		case *Name, *Attribute, *Subscript:
		default:
			return nil, p.errorAt(start, "illegal expression for augmented assignment")
		}
		p.advance()
		value, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		return &AugAssign{Pos: start.Pos, Target: first, Op: augOps[tok.Type], Value: value}, nil

	case ASSIGN:
		exprs := []Expr{first}
		for p.peek().Type == ASSIGN {
			p.advance()
			next, err := p.parseTestList()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, next)
		}
		targets := exprs[:len(exprs)-1]
		for _, t := range targets {
			if err := checkAssignTarget(t); err != nil {
				return nil, err
			}
		}
		return &Assign{Pos: start.Pos, Targets: targets, Value: exprs[len(exprs)-1]}, nil
	}

	return &ExprStmt{Pos: start.Pos, Value: first}, nil
}

var augOps = map[TokenType]BinOpKind{
	PLUS_ASSIGN:    Add,
	MINUS_ASSIGN:   Sub,
	STAR_ASSIGN:    Mult,
	SLASH_ASSIGN:   Div,
	PERCENT_ASSIGN: Mod,
}

// checkAssignTarget rejects expressions that cannot appear left of "=".
func checkAssignTarget(e Expr) error {
	switch t := e.(type) {
	case *Name, *Attribute, *Subscript:
		return nil
	case *Tuple:
		for _, elt := range t.Elts {
			if err := checkAssignTarget(elt); err != nil {
				return err
			}
		}
		return nil
	case *List:
		for _, elt := range t.Elts {
			if err := checkAssignTarget(elt); err != nil {
				return err
			}
		}
		return nil
	case *Constant:
		return errorf(e.Position(), "cannot assign to literal")
	case *Call:
		return errorf(e.Position(), "cannot assign to function call")
	case *IfExp:
		return errorf(e.Position(), "cannot assign to conditional expression")
	case *Compare:
		return errorf(e.Position(), "cannot assign to comparison")
	default:
		return errorf(e.Position(), "cannot assign to expression")
	}
}

// parseBlock parses ":" followed by an inline simple statement or an
// indented suite.
func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if p.peek().Type != NEWLINE {
		return p.parseSimpleStmt()
	}
	p.advance()
	if tok := p.peek(); tok.Type != INDENT {
		return nil, p.errorAt(tok, "expected an indented block")
	}
	p.advance()

	var body []Stmt
	for p.peek().Type != DEDENT && p.peek().Type != EOF {
		if p.peek().Type == NEWLINE {
			p.advance()
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return body, nil
}

// parseIf handles both "if" and "elif"; an elif chain nests in OrElse.
func (p *Parser) parseIf() (Stmt, error) {
	tok := p.advance()
	test, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &If{Pos: tok.Pos, Test: test, Body: body}

	switch p.peek().Type {
	case ELIF:
		elif, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.OrElse = []Stmt{elif}
	case ELSE:
		p.advance()
		if stmt.OrElse, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	tok := p.advance()
	test, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &While{Pos: tok.Pos, Test: test, Body: body}
	if p.peek().Type == ELSE {
		p.advance()
		if stmt.OrElse, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	tok := p.advance()
	target, err := p.parseTargetList()
	if err != nil {
		return nil, err
	}
	if err := checkAssignTarget(target); err != nil {
		return nil, err
	}
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	iter, err := p.parseTestList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &For{Pos: tok.Pos, Target: target, Iter: iter, Body: body}
	if p.peek().Type == ELSE {
		p.advance()
		if stmt.OrElse, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseTargetList parses loop targets below comparison level so that "in"
// is left for the for statement.
func (p *Parser) parseTargetList() (Expr, error) {
	start := p.peek()
	first, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != COMMA {
		return first, nil
	}
	elts := []Expr{first}
	for p.peek().Type == COMMA {
		p.advance()
		if !startsExpr(p.peek().Type) {
			break
		}
		next, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		elts = append(elts, next)
	}
	return &Tuple{Pos: start.Pos, Elts: elts}, nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// parseTestList parses a comma-separated expression list; more than one
// element (or a trailing comma) yields a bare Tuple.
func (p *Parser) parseTestList() (Expr, error) {
	start := p.peek()
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != COMMA {
		return first, nil
	}
	elts := []Expr{first}
	for p.peek().Type == COMMA {
		p.advance()
		if !startsExpr(p.peek().Type) {
			break
		}
		next, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, next)
	}
	return &Tuple{Pos: start.Pos, Elts: elts}, nil
}

// parseTest parses a conditional expression.
func (p *Parser) parseTest() (Expr, error) {
	if tok := p.peek(); tok.Type == RESERVED {
		return nil, p.errorAt(tok, "%q is not supported in kernels", tok.Lexeme)
	}
	body, err := p.parseOrTest()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != IF {
		return body, nil
	}
	p.advance()
	test, err := p.parseOrTest()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ELSE); err != nil {
		return nil, err
	}
	orElse, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &IfExp{Pos: body.Position(), Test: test, Body: body, OrElse: orElse}, nil
}

func (p *Parser) parseOrTest() (Expr, error) {
	first, err := p.parseAndTest()
	if err != nil {
		return nil, err
	}
	values := []Expr{first}
	for p.peek().Type == OR {
		p.advance()
		next, err := p.parseAndTest()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	if len(values) == 1 {
		return first, nil
	}
	return &BoolOp{Pos: first.Position(), Op: Or, Values: values}, nil
}

func (p *Parser) parseAndTest() (Expr, error) {
	first, err := p.parseNotTest()
	if err != nil {
		return nil, err
	}
	values := []Expr{first}
	for p.peek().Type == AND {
		p.advance()
		next, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	if len(values) == 1 {
		return first, nil
	}
	return &BoolOp{Pos: first.Position(), Op: And, Values: values}, nil
}

func (p *Parser) parseNotTest() (Expr, error) {
	if tok := p.peek(); tok.Type == NOT {
		p.advance()
		operand, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Pos: tok.Pos, Op: Not, Operand: operand}, nil
	}
	return p.parseComparison()
}

var cmpOps = map[TokenType]CmpOpKind{
	LESS:       Lt,
	GREATER:    Gt,
	LESS_EQ:    LtE,
	GREATER_EQ: GtE,
	EQ:         Eq,
	NOT_EQ:     NotEq,
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	cmp := &Compare{Pos: left.Position(), Left: left}
	for {
		tok := p.peek()
		switch {
		case tok.Type == IN, tok.Type == IS:
			return nil, p.errorAt(tok, "%q comparisons are not supported", tok.Lexeme)
		case tok.Type == NOT && p.peekAt(1).Type == IN:
			return nil, p.errorAt(tok, "\"not in\" comparisons are not supported")
		}
		op, ok := cmpOps[tok.Type]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, right)
	}
	if len(cmp.Ops) == 0 {
		return left, nil
	}
	return cmp, nil
}

func (p *Parser) parseArith() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOpKind
		switch p.peek().Type {
		case PLUS:
			op = Add
		case MINUS:
			op = Sub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOpKind
		switch p.peek().Type {
		case STAR:
			op = Mult
		case SLASH:
			op = Div
		case PERCENT:
			op = Mod
		case DOUBLESLASH:
			op = FloorDiv
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Pos: left.Position(), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseFactor() (Expr, error) {
	tok := p.peek()
	var op UnaryOpKind
	switch tok.Type {
	case PLUS:
		op = UAdd
	case MINUS:
		op = USub
	default:
		return p.parsePower()
	}
	p.advance()
	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &UnaryOp{Pos: tok.Pos, Op: op, Operand: operand}, nil
}

func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != DOUBLESTAR {
		return base, nil
	}
	p.advance()
	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &BinaryOp{Pos: base.Position(), Op: Pow, Left: base, Right: exp}, nil
}

func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case LPAREN:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &Call{Pos: expr.Position(), Func: expr, Args: args}
		case LBRACKET:
			index, err := p.parseIndex()
			if err != nil {
				return nil, err
			}
			expr = &Subscript{Pos: expr.Position(), Value: expr, Index: index}
		case DOT:
			p.advance()
			name, err := p.expect(NAME)
			if err != nil {
				return nil, err
			}
			expr = &Attribute{Pos: expr.Position(), Value: expr, Attr: name.Lexeme}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]Expr, error) {
	p.advance() // (
	var args []Expr
	for p.peek().Type != RPAREN {
		tok := p.peek()
		if tok.Type == STAR || tok.Type == DOUBLESTAR {
			return nil, p.errorAt(tok, "argument unpacking is not supported")
		}
		arg, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		switch next := p.peek(); next.Type {
		case ASSIGN:
			return nil, p.errorAt(tok, "keyword arguments are not supported")
		case FOR:
			return nil, p.errorAt(next, "generator expressions are not supported")
		}
		args = append(args, arg)
		if p.peek().Type != COMMA {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseIndex() (Expr, error) {
	p.advance() // [
	if tok := p.peek(); tok.Type == COLON {
		return nil, p.errorAt(tok, "slices are not supported")
	}
	index, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type == COLON {
		return nil, p.errorAt(tok, "slices are not supported")
	}
	if p.peek().Type == COMMA {
		elts := []Expr{index}
		for p.peek().Type == COMMA {
			p.advance()
			if !startsExpr(p.peek().Type) {
				break
			}
			next, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			elts = append(elts, next)
		}
		index = &Tuple{Pos: index.Position(), Elts: elts}
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return index, nil
}

func (p *Parser) parseAtom() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NAME:
		p.advance()
		return &Name{Pos: tok.Pos, ID: tok.Lexeme}, nil
	case INT:
		p.advance()
		v, err := parseIntLiteral(tok)
		if err != nil {
			return nil, err
		}
		return &Constant{Pos: tok.Pos, Kind: IntConst, Value: v}, nil
	case FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Lexeme, "_", ""), 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid float literal %q", tok.Lexeme)
		}
		return &Constant{Pos: tok.Pos, Kind: FloatConst, Value: v}, nil
	case STRING:
		var sb strings.Builder
		for p.peek().Type == STRING {
			sb.WriteString(unquote(p.advance().Lexeme))
		}
		return &Constant{Pos: tok.Pos, Kind: StringConst, Value: sb.String()}, nil
	case TRUE, FALSE:
		p.advance()
		return &Constant{Pos: tok.Pos, Kind: BoolConst, Value: tok.Type == TRUE}, nil
	case NONE:
		p.advance()
		return &Constant{Pos: tok.Pos, Kind: NoneConst}, nil
	case LPAREN:
		return p.parseParenthesized()
	case LBRACKET:
		return p.parseList()
	case LBRACE:
		return nil, p.errorAt(tok, "dict and set literals are not supported")
	case RESERVED:
		return nil, p.errorAt(tok, "%q is not supported in kernels", tok.Lexeme)
	}
	return nil, p.errorAt(tok, "unexpected %s", describe(tok))
}

// parseIntLiteral returns the magnitude of an integer literal. Signs are
// unary operators, so any value up to the uint64 range is accepted.
func parseIntLiteral(tok Token) (uint64, error) {
	text := strings.ReplaceAll(tok.Lexeme, "_", "")
	if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0123456789") == "" && strings.Trim(text, "0") != "" {
		return 0, errorf(tok.Pos, "leading zeros in decimal integer literals are not permitted")
	}
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, errorf(tok.Pos, "invalid integer literal %q", tok.Lexeme)
	}
	return v, nil
}

func (p *Parser) parseParenthesized() (Expr, error) {
	open := p.advance()
	if p.peek().Type == RPAREN {
		p.advance()
		return &Tuple{Pos: open.Pos}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type == FOR {
		return nil, p.errorAt(tok, "generator expressions are not supported")
	}
	if p.peek().Type != COMMA {
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}

	elts := []Expr{first}
	for p.peek().Type == COMMA {
		p.advance()
		if p.peek().Type == RPAREN {
			break
		}
		next, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, next)
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return &Tuple{Pos: open.Pos, Elts: elts}, nil
}

func (p *Parser) parseList() (Expr, error) {
	open := p.advance()
	list := &List{Pos: open.Pos}
	for p.peek().Type != RBRACKET {
		elt, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if tok := p.peek(); tok.Type == FOR {
			return nil, p.errorAt(tok, "list comprehensions are not supported")
		}
		list.Elts = append(list.Elts, elt)
		if p.peek().Type != COMMA {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}
