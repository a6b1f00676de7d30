// Package ast defines the token types, the Token struct and the syntax tree
// nodes shared by the Monkey lexer and parser.
//
// Tokens are the smallest meaningful units of Monkey source. Every token
// carries its type, the exact literal text it was scanned from, and its
// source position. Position is 1-based: the first character of the input is
// Line 1, Col 1.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is a byte the lexer does not recognise. The literal holds that
	// single byte; the parser reports it as an unexpected character.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input. Once returned, the lexer keeps
	// returning it.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_]+
	IDENT
	// INT is a decimal integer literal. A leading '-' is never part of it.
	INT

	// ── Operators ──────────────────────────────────────────────────────────────

	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	BANG     // !
	ASTERISK // *
	SLASH    // /
	EQ       // ==
	NOT_EQ   // !=
	LT       // <
	GT       // >

	// ── Delimiters ─────────────────────────────────────────────────────────────

	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	// ── Keywords ───────────────────────────────────────────────────────────────

	FUNCTION // fn
	LET      // let
	TRUE     // true
	FALSE    // false
	IF       // if
	ELSE     // else
	RETURN   // return
)

var tokenNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	GT:        ">",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
}

// String returns the name used for tt in error messages and dumps.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "TokenType(?)"
}

// keywords maps the literal text of every Monkey keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer. Tokens are values and
// are never modified after the lexer returns them.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// String returns the literal text of the token.
func (t Token) String() string {
	return t.Literal
}
