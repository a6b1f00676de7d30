// Package lexer implements the Monkey lexer (tokeniser).
//
// The lexer converts a Monkey source string into a stream of [ast.Token]
// values, produced on demand. Call [New] to create a lexer and then call
// [Lexer.NextToken] repeatedly until you receive a token with Type == [ast.EOF].
//
// Scanning works on bytes with a single read cursor. Every token records the
// 1-based line and column of its first byte. Words are read in full and only
// then checked against the keyword table ([ast.LookupIdent]), so "letter" is
// one identifier. '==' and '!=' are the only tokens that need a byte of
// look-ahead. Lexing never fails: an unknown byte becomes an ILLEGAL token and
// scanning resumes right after it.
package lexer

import (
	"github.com/metaphox/monkey/ast"
)

// Lexer scans one source string. Lexers share no state; use one per input.
type Lexer struct {
	input   string
	pos     int  // index of ch
	readPos int  // index of the byte after ch
	ch      byte // byte under examination, 0 past the end

	line int // current 1-based line number
	col  int // 1-based column of ch
}

// New returns a lexer positioned on the first byte of input.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
//
// Whitespace (spaces, tabs, carriage returns, newlines) is skipped before each
// token. When the input is exhausted NextToken returns a token with
// Type == [ast.EOF] on this and every subsequent call.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespace()

	var tok ast.Token

	switch l.ch {
	case 0:
		if l.atEnd() {
			// No readChar: the cursor stays parked on the sentinel.
			return l.makeToken(ast.EOF, "")
		}
		tok = l.makeToken(ast.ILLEGAL, l.input[l.pos:l.readPos])

	case '=':
		if l.peekChar() == '=' {
			tok = l.makeToken(ast.EQ, "==")
			l.readChar()
		} else {
			tok = l.makeToken(ast.ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.makeToken(ast.NOT_EQ, "!=")
			l.readChar()
		} else {
			tok = l.makeToken(ast.BANG, "!")
		}

	case '+':
		tok = l.makeToken(ast.PLUS, "+")
	case '-':
		tok = l.makeToken(ast.MINUS, "-")
	case '*':
		tok = l.makeToken(ast.ASTERISK, "*")
	case '/':
		tok = l.makeToken(ast.SLASH, "/")
	case '<':
		tok = l.makeToken(ast.LT, "<")
	case '>':
		tok = l.makeToken(ast.GT, ">")
	case ',':
		tok = l.makeToken(ast.COMMA, ",")
	case ';':
		tok = l.makeToken(ast.SEMICOLON, ";")
	case '(':
		tok = l.makeToken(ast.LPAREN, "(")
	case ')':
		tok = l.makeToken(ast.RPAREN, ")")
	case '{':
		tok = l.makeToken(ast.LBRACE, "{")
	case '}':
		tok = l.makeToken(ast.RBRACE, "}")

	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.makeToken(ast.ILLEGAL, l.input[l.pos:l.readPos])
	}

	l.readChar() // advance past the last character of this token
	return tok
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}

	// The column counts the character we are leaving; a newline moves the
	// following character to column 1 of the next line.
	if l.pos < len(l.input) && l.readPos > 0 && l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without consuming it, or 0 at the end.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// atEnd reports whether the cursor has moved past the last byte. It tells
// the end-of-input sentinel apart from a literal NUL byte in the source.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// makeToken constructs a token at the current source position.
// It does NOT advance the cursor.
func (l *Lexer) makeToken(tt ast.TokenType, literal string) ast.Token {
	return ast.Token{Type: tt, Literal: literal, Line: l.line, Col: l.col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier scans an identifier or keyword starting at the current
// position. Like readNumber it returns with the cursor already on the first
// character after the token, so NextToken must not call readChar again.
func (l *Lexer) readIdentifier() ast.Token {
	startLine, startCol, start := l.line, l.col, l.pos

	for isLetter(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(literal), Literal: literal, Line: startLine, Col: startCol}
}

// readNumber scans a decimal integer literal.
func (l *Lexer) readNumber() ast.Token {
	startLine, startCol, start := l.line, l.col, l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	return ast.Token{Type: ast.INT, Literal: l.input[start:l.pos], Line: startLine, Col: startCol}
}

// isLetter reports whether b may appear in an identifier. Monkey identifiers
// are ASCII letters and underscores only; digits end an identifier.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
