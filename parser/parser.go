// Package parser implements the Monkey recursive-descent parser.
//
// The parser pulls tokens one at a time from a [lexer.Lexer] and builds an
// [ast.Program]. Expression parsing uses Pratt (top-down operator precedence)
// so that precedence rules are encoded in a small table rather than a tangle
// of grammar rules.
//
// Usage:
//
//	l := lexer.New(source)
//	p := parser.New(l)
//	prog, errs := p.ParseProgram()
//	if len(errs) != 0 { ... }
//
// Error recovery: the parser collects errors and keeps going so that several
// problems can be reported in a single pass. After a malformed statement it
// skips to the next statement boundary: a ';', the end of the line, or the
// '}' closing the enclosing block.
package parser

import (
	"fmt"
	"strconv"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/lexer"
)

// ── Operator precedence ───────────────────────────────────────────────────────

// Precedence levels, ordered from lowest to highest.
const (
	precLowest      = iota
	precEquals      // == !=
	precLessGreater // < >
	precSum         // + -
	precProduct     // * /
	precPrefix      // -x !x
	precCall        // f(x)
)

// tokenPrecedence maps a TokenType to its infix precedence level.
// Tokens not in this map have precLowest and never continue an expression.
var tokenPrecedence = map[ast.TokenType]int{
	ast.EQ:       precEquals,
	ast.NOT_EQ:   precEquals,
	ast.LT:       precLessGreater,
	ast.GT:       precLessGreater,
	ast.PLUS:     precSum,
	ast.MINUS:    precSum,
	ast.ASTERISK: precProduct,
	ast.SLASH:    precProduct,
	ast.LPAREN:   precCall,
}

// ── Parser ────────────────────────────────────────────────────────────────────

// prefixParseFn parses an expression that starts with the current token.
type prefixParseFn func() ast.Expression

// infixParseFn parses the rest of an expression given its left-hand side;
// the current token is the operator.
type infixParseFn func(left ast.Expression) ast.Expression

// Parser holds the state of a single parse. It is not safe for concurrent
// use; give every parse its own Lexer and Parser.
type Parser struct {
	l      *lexer.Lexer
	cur    ast.Token // current token (the one being examined)
	peek   ast.Token // next token
	errors ErrorList
	depth  int // block nesting, used by synchronize

	closed ast.Token // '}' of the most recently completed block

	prefixFns map[ast.TokenType]prefixParseFn
	infixFns  map[ast.TokenType]infixParseFn
}

// New creates a Parser that reads tokens from l.
// It primes the two-token lookahead and registers all parse functions.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:         l,
		prefixFns: make(map[ast.TokenType]prefixParseFn),
		infixFns:  make(map[ast.TokenType]infixParseFn),
	}

	p.registerPrefix(ast.IDENT, p.parseIdentifier)
	p.registerPrefix(ast.INT, p.parseIntegerLiteral)
	p.registerPrefix(ast.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(ast.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(ast.BANG, p.parsePrefixExpression)
	p.registerPrefix(ast.MINUS, p.parsePrefixExpression)
	p.registerPrefix(ast.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(ast.IF, p.parseIfExpression)
	p.registerPrefix(ast.FUNCTION, p.parseFunctionLiteral)

	for _, tt := range []ast.TokenType{
		ast.PLUS, ast.MINUS, ast.ASTERISK, ast.SLASH,
		ast.EQ, ast.NOT_EQ, ast.LT, ast.GT,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(ast.LPAREN, p.parseCallExpression)

	// After two advances, cur = first token, peek = second.
	p.advance()
	p.advance()

	return p
}

// ParseString parses src with a fresh lexer and parser.
func ParseString(src string) (*ast.Program, ErrorList) {
	return New(lexer.New(src)).ParseProgram()
}

// Errors returns all errors collected so far, in the order they were found.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseProgram parses the whole input. It always returns a non-nil Program;
// when errors is non-empty the Program holds only the statements that
// parsed cleanly.
func (p *Parser) ParseProgram() (*ast.Program, ErrorList) {
	prog := &ast.Program{Statements: []ast.Statement{}}
	for !p.curIs(ast.EOF) {
		if s := p.parseStatement(); s != nil {
			prog.Statements = append(prog.Statements, s)
		} else {
			p.synchronize()
		}
		p.advance()
	}
	return prog, p.errors
}

// ── Internal token management ─────────────────────────────────────────────────

// advance shifts peek into cur and pulls the next token from the lexer.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// expectPeek checks that the peek token matches tt. If so it advances and
// returns true; otherwise it records an error and returns false (no advance).
func (p *Parser) expectPeek(tt ast.TokenType) bool {
	if p.peekIs(tt) {
		p.advance()
		return true
	}
	p.peekError(tt)
	return false
}

func (p *Parser) curIs(tt ast.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt ast.TokenType) bool { return p.peek.Type == tt }

func (p *Parser) curPrec() int {
	if prec, ok := tokenPrecedence[p.cur.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) peekPrec() int {
	if prec, ok := tokenPrecedence[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

// errorAt records an error anchored at tok.
func (p *Parser) errorAt(tok ast.Token, format string, args ...any) {
	p.errors = append(p.errors, &Error{Msg: fmt.Sprintf(format, args...), Token: tok})
}

// peekError records that the peek token is not the wanted one.
func (p *Parser) peekError(want ast.TokenType) {
	if p.peekIs(ast.ILLEGAL) {
		p.errorAt(p.peek, "unexpected character %q", p.peek.Literal)
		return
	}
	p.errorAt(p.peek, "expected next token to be %s, got %s instead", want, describe(p.peek))
}

// noPrefixFnError records an error for a token that cannot start an expression.
func (p *Parser) noPrefixFnError() {
	if p.curIs(ast.ILLEGAL) {
		p.errorAt(p.cur, "unexpected character %q", p.cur.Literal)
		return
	}
	p.errorAt(p.cur, "no prefix parse function for %s found", p.cur.Type)
}

// describe renders a token for "got ..." messages.
func describe(tok ast.Token) string {
	switch tok.Type {
	case ast.IDENT, ast.INT:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return tok.Type.String()
}

func (p *Parser) registerPrefix(tt ast.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt ast.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

// synchronize skips the remains of a malformed statement. It stops on the
// last token of the statement so the caller's advance lands on the next one.
// Braces opened while skipping are skipped as a unit. Inside a block it never
// moves past the block's closing '}'; a '}' that already closed a nested block
// is skipped like any other token.
func (p *Parser) synchronize() {
	open := 0
	for !p.curIs(ast.EOF) {
		switch p.cur.Type {
		case ast.LBRACE:
			open++
		case ast.RBRACE:
			switch {
			case p.cur == p.closed:
				// already matched by a nested block
			case open > 0:
				open--
			case p.depth > 0:
				return
			}
		case ast.SEMICOLON:
			if open == 0 {
				return
			}
		}
		if open == 0 {
			if p.peekIs(ast.EOF) || p.peek.Line > p.cur.Line {
				return
			}
			if p.depth > 0 && p.peekIs(ast.RBRACE) {
				return
			}
		}
		p.advance()
	}
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement parses one statement and its optional terminator. On return
// cur is the last token of the statement (the ';' if there was one).
// It returns nil when the statement was malformed.
func (p *Parser) parseStatement() ast.Statement {
	var s ast.Statement
	switch p.cur.Type {
	case ast.LET:
		s = p.parseLetStatement()
	case ast.RETURN:
		s = p.parseReturnStatement()
	default:
		s = p.parseExpressionStatement()
	}
	if s == nil {
		return nil
	}
	p.endStatement()
	return s
}

// endStatement consumes a ';' after a statement. The ';' may be left out
// before '}', at the end of input, or when the next statement starts on a
// new line; two statements on the same line must be separated.
func (p *Parser) endStatement() {
	switch {
	case p.peekIs(ast.SEMICOLON):
		p.advance()
	case p.peekIs(ast.EOF), p.peekIs(ast.RBRACE):
	case p.peekIs(ast.ILLEGAL):
		// reported when the next statement starts
	case p.peek.Line > p.cur.Line:
	default:
		p.errorAt(p.peek, "expected ; or a new line before %s", describe(p.peek))
	}
}

// parseLetStatement parses `let <ident> = <expr>`. The initializer is
// required.
func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.cur // 'let'

	if !p.expectPeek(ast.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}

	if !p.peekIs(ast.ASSIGN) {
		if p.peekIs(ast.ILLEGAL) {
			p.peekError(ast.ASSIGN)
		} else {
			p.errorAt(p.peek, "expected = after %q, got %s instead (let requires an initializer)",
				name.Value, describe(p.peek))
		}
		return nil
	}
	p.advance() // '='
	p.advance() // first token of the value

	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	return &ast.LetStatement{Token: tok, Name: name, Value: value}
}

// parseReturnStatement parses `return [expr]`.
func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.cur // 'return'

	if p.peekIs(ast.SEMICOLON) || p.peekIs(ast.RBRACE) || p.peekIs(ast.EOF) {
		return &ast.ReturnStatement{Token: tok}
	}
	p.advance()

	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	return &ast.ReturnStatement{Token: tok, ReturnValue: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// parseBlockStatement parses `{ stmts... }`. The current token must be '{'
// on entry; on return cur = '}'. Reaching the end of input first is an error.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur, Statements: []ast.Statement{}}

	p.depth++
	defer func() { p.depth-- }()

	p.advance() // move past '{'
	for !p.curIs(ast.RBRACE) && !p.curIs(ast.EOF) {
		if s := p.parseStatement(); s != nil {
			block.Statements = append(block.Statements, s)
		} else {
			p.synchronize()
			if p.curIs(ast.RBRACE) {
				break
			}
		}
		p.advance()
	}

	if !p.curIs(ast.RBRACE) {
		p.errorAt(p.cur, "expected } to close the block opened at %d:%d, got %s instead",
			block.Token.Line, block.Token.Col, describe(p.cur))
		return nil
	}
	p.closed = p.cur
	return block
}

// ── Expression parsing (Pratt) ────────────────────────────────────────────────

// parseExpression is the Pratt parser entry point. prec is the binding power
// of the operator to the left; only stronger operators are folded in here,
// which makes operators of equal precedence associate to the left.
func (p *Parser) parseExpression(prec int) ast.Expression {
	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.noPrefixFnError()
		return nil
	}

	left := prefix()

	for left != nil && !p.peekIs(ast.SEMICOLON) && prec < p.peekPrec() {
		infix := p.infixFns[p.peek.Type]
		if infix == nil {
			return left
		}
		p.advance()
		left = infix(left)
	}

	return left
}

// ── Prefix parse functions ────────────────────────────────────────────────────

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorAt(tok, "could not parse %q as integer", tok.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: val}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.cur, Value: p.curIs(ast.TRUE)}
}

// parsePrefixExpression handles `!expr` and `-expr`.
func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.cur
	p.advance()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

// parseGroupedExpression handles `(expr)`. The parentheses leave no node
// behind; grouping is visible only in the shape of the tree.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // move past '('
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(ast.RPAREN) {
		return nil
	}
	return expr
}

// parseIfExpression handles `if (cond) { ... } [else { ... }]`.
func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.cur // 'if'

	if !p.expectPeek(ast.LPAREN) {
		return nil
	}
	p.advance()
	cond := p.parseExpression(precLowest)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(ast.RPAREN) {
		return nil
	}

	if !p.expectPeek(ast.LBRACE) {
		return nil
	}
	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	expr := &ast.IfExpression{Token: tok, Condition: cond, Consequence: consequence}

	if p.peekIs(ast.ELSE) {
		p.advance() // 'else'
		if !p.expectPeek(ast.LBRACE) {
			return nil
		}
		alternative := p.parseBlockStatement()
		if alternative == nil {
			return nil
		}
		expr.Alternative = alternative
	}

	return expr
}

// parseFunctionLiteral handles `fn(a, b) { ... }`.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.cur // 'fn'

	if !p.expectPeek(ast.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}

	if !p.expectPeek(ast.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.FunctionLiteral{Token: tok, Parameters: params, Body: body}
}

// parseFunctionParameters parses the identifiers of a parameter list.
// cur = '(' on entry, cur = ')' on success.
func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peekIs(ast.RPAREN) {
		p.advance()
		return params, true
	}

	if !p.expectPeek(ast.IDENT) {
		return nil, false
	}
	params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})

	for p.peekIs(ast.COMMA) {
		p.advance() // ','
		if !p.expectPeek(ast.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	}

	if !p.expectPeek(ast.RPAREN) {
		return nil, false
	}
	return params, true
}

// ── Infix parse functions ─────────────────────────────────────────────────────

// parseInfixExpression handles all binary operators. The right operand is
// parsed at the operator's own precedence.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.cur
	prec := p.curPrec()
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

// parseCallExpression handles `f(args...)`, triggered when '(' follows an
// expression.
func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.cur // '('
	args, ok := p.parseExpressionList(ast.RPAREN)
	if !ok {
		return nil
	}
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

// parseExpressionList parses comma separated expressions up to end.
// cur = the opening token on entry, cur = end on success.
func (p *Parser) parseExpressionList(end ast.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekIs(end) {
		p.advance()
		return list, true
	}

	p.advance()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekIs(ast.COMMA) {
		p.advance() // ','
		p.advance() // first token of the next expression
		expr := p.parseExpression(precLowest)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
