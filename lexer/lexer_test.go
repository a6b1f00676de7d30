// Package lexer_test contains tests for the Monkey lexer.
//
// Tests are organised by category:
//   - TestLexer_SingleCharOperators  each single-character token in isolation
//   - TestLexer_TwoCharOperators     '==' and '!=' versus '=' and '!'
//   - TestLexer_LetStatement         a statement with mixed token kinds
//   - TestLexer_Keywords             the keyword table
//   - TestLexer_KeywordBoundary      maximal munch around keywords
//   - TestLexer_Integers             decimal literals and digit boundaries
//   - TestLexer_Illegal              unknown bytes never stop the lexer
//   - TestLexer_IllegalMultiByte     non-ASCII input, one ILLEGAL per byte
//   - TestLexer_EOFIsSticky          EOF is returned forever
//   - TestLexer_Position             line and column tracking
//   - TestLexer_Program              a complete snippet
package lexer_test

import (
	"testing"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/lexer"
)

type tokenCase struct {
	expectedType    ast.TokenType
	expectedLiteral string
}

// runCases calls NextToken for each case in want and fails the test on mismatch.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	l := lexer.New(input)
	for i, tc := range want {
		tok := l.NextToken()
		if tok.Type != tc.expectedType {
			t.Errorf("case %d: type mismatch, got %s, want %s (literal %q)", i, tok.Type, tc.expectedType, tok.Literal)
		}
		if tok.Literal != tc.expectedLiteral {
			t.Errorf("case %d: literal mismatch, got %q, want %q", i, tok.Literal, tc.expectedLiteral)
		}
	}
}

func TestLexer_SingleCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  ast.TokenType
	}{
		{"=", ast.ASSIGN},
		{"+", ast.PLUS},
		{"-", ast.MINUS},
		{"!", ast.BANG},
		{"*", ast.ASTERISK},
		{"/", ast.SLASH},
		{"<", ast.LT},
		{">", ast.GT},
		{";", ast.SEMICOLON},
		{"(", ast.LPAREN},
		{")", ast.RPAREN},
		{"{", ast.LBRACE},
		{"}", ast.RBRACE},
		{",", ast.COMMA},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			runCases(t, tt.input, []tokenCase{
				{tt.want, tt.input},
				{ast.EOF, ""},
			})
		})
	}
}

func TestLexer_TwoCharOperators(t *testing.T) {
	runCases(t, "==", []tokenCase{{ast.EQ, "=="}, {ast.EOF, ""}})
	runCases(t, "!=", []tokenCase{{ast.NOT_EQ, "!="}, {ast.EOF, ""}})
	runCases(t, "= = ! =", []tokenCase{
		{ast.ASSIGN, "="},
		{ast.ASSIGN, "="},
		{ast.BANG, "!"},
		{ast.ASSIGN, "="},
		{ast.EOF, ""},
	})
	runCases(t, "!!x===", []tokenCase{
		{ast.BANG, "!"},
		{ast.BANG, "!"},
		{ast.IDENT, "x"},
		{ast.EQ, "=="},
		{ast.ASSIGN, "="},
		{ast.EOF, ""},
	})
}

func TestLexer_LetStatement(t *testing.T) {
	runCases(t, "let five = 5;", []tokenCase{
		{ast.LET, "let"},
		{ast.IDENT, "five"},
		{ast.ASSIGN, "="},
		{ast.INT, "5"},
		{ast.SEMICOLON, ";"},
		{ast.EOF, ""},
	})
}

func TestLexer_Keywords(t *testing.T) {
	runCases(t, "fn let true false if else return", []tokenCase{
		{ast.FUNCTION, "fn"},
		{ast.LET, "let"},
		{ast.TRUE, "true"},
		{ast.FALSE, "false"},
		{ast.IF, "if"},
		{ast.ELSE, "else"},
		{ast.RETURN, "return"},
		{ast.EOF, ""},
	})
}

// TestLexer_KeywordBoundary checks that keyword prefixes used as identifiers are
// not mis-classified. E.g. "letter" must not be split into LET + "ter".
func TestLexer_KeywordBoundary(t *testing.T) {
	runCases(t, "letter fnord iffy returned _private snake_case", []tokenCase{
		{ast.IDENT, "letter"},
		{ast.IDENT, "fnord"},
		{ast.IDENT, "iffy"},
		{ast.IDENT, "returned"},
		{ast.IDENT, "_private"},
		{ast.IDENT, "snake_case"},
		{ast.EOF, ""},
	})
}

func TestLexer_Integers(t *testing.T) {
	runCases(t, "0 42 -7 x1", []tokenCase{
		{ast.INT, "0"},
		{ast.INT, "42"},
		{ast.MINUS, "-"},
		{ast.INT, "7"},
		{ast.IDENT, "x"},
		{ast.INT, "1"},
		{ast.EOF, ""},
	})
}

func TestLexer_Illegal(t *testing.T) {
	runCases(t, "a @ b $\x00c", []tokenCase{
		{ast.IDENT, "a"},
		{ast.ILLEGAL, "@"},
		{ast.IDENT, "b"},
		{ast.ILLEGAL, "$"},
		{ast.ILLEGAL, "\x00"},
		{ast.IDENT, "c"},
		{ast.EOF, ""},
	})
}

func TestLexer_IllegalMultiByte(t *testing.T) {
	// "é" is two bytes; each becomes its own ILLEGAL token holding exactly
	// that byte of the source.
	input := "é+"
	l := lexer.New(input)

	want := []struct {
		literal string
		col     int
	}{
		{"\xc3", 1},
		{"\xa9", 2},
	}
	var joined string
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != ast.ILLEGAL || tok.Literal != w.literal || tok.Col != w.col {
			t.Fatalf("token %d: got %s %q at col %d, want ILLEGAL %q at col %d",
				i, tok.Type, tok.Literal, tok.Col, w.literal, w.col)
		}
		joined += tok.Literal
	}
	if joined != "é" {
		t.Fatalf("ILLEGAL literals should reassemble the source, got %q", joined)
	}

	if tok := l.NextToken(); tok.Type != ast.PLUS || tok.Col != 3 {
		t.Fatalf("expected + at col 3, got %s at col %d", tok.Type, tok.Col)
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	for _, input := range []string{"", "x", "   \n\t"} {
		l := lexer.New(input)
		if input == "x" {
			l.NextToken()
		}
		first := l.NextToken()
		for i := 0; i < 5; i++ {
			tok := l.NextToken()
			if tok.Type != ast.EOF {
				t.Fatalf("input %q call %d: got %s, want EOF", input, i, tok.Type)
			}
			if tok != first {
				t.Fatalf("input %q call %d: EOF token moved, got %+v, want %+v", input, i, tok, first)
			}
		}
	}
}

func TestLexer_Position(t *testing.T) {
	input := "let x = 1;\n  x + y\n"
	want := []struct {
		lit       string
		line, col int
	}{
		{"let", 1, 1},
		{"x", 1, 5},
		{"=", 1, 7},
		{"1", 1, 9},
		{";", 1, 10},
		{"x", 2, 3},
		{"+", 2, 5},
		{"y", 2, 7},
		{"", 3, 1},
	}

	l := lexer.New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Literal != w.lit || tok.Line != w.line || tok.Col != w.col {
			t.Errorf("token %d: got %q at %d:%d, want %q at %d:%d",
				i, tok.Literal, tok.Line, tok.Col, w.lit, w.line, w.col)
		}
	}
}

func TestLexer_Program(t *testing.T) {
	input := `let five = 5;
let ten = 10;

let add = fn(x, y) {
  x + y;
};

let result = add(five, ten);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
`
	runCases(t, input, []tokenCase{
		{ast.LET, "let"},
		{ast.IDENT, "five"},
		{ast.ASSIGN, "="},
		{ast.INT, "5"},
		{ast.SEMICOLON, ";"},
		{ast.LET, "let"},
		{ast.IDENT, "ten"},
		{ast.ASSIGN, "="},
		{ast.INT, "10"},
		{ast.SEMICOLON, ";"},
		{ast.LET, "let"},
		{ast.IDENT, "add"},
		{ast.ASSIGN, "="},
		{ast.FUNCTION, "fn"},
		{ast.LPAREN, "("},
		{ast.IDENT, "x"},
		{ast.COMMA, ","},
		{ast.IDENT, "y"},
		{ast.RPAREN, ")"},
		{ast.LBRACE, "{"},
		{ast.IDENT, "x"},
		{ast.PLUS, "+"},
		{ast.IDENT, "y"},
		{ast.SEMICOLON, ";"},
		{ast.RBRACE, "}"},
		{ast.SEMICOLON, ";"},
		{ast.LET, "let"},
		{ast.IDENT, "result"},
		{ast.ASSIGN, "="},
		{ast.IDENT, "add"},
		{ast.LPAREN, "("},
		{ast.IDENT, "five"},
		{ast.COMMA, ","},
		{ast.IDENT, "ten"},
		{ast.RPAREN, ")"},
		{ast.SEMICOLON, ";"},
		{ast.BANG, "!"},
		{ast.MINUS, "-"},
		{ast.SLASH, "/"},
		{ast.ASTERISK, "*"},
		{ast.INT, "5"},
		{ast.SEMICOLON, ";"},
		{ast.INT, "5"},
		{ast.LT, "<"},
		{ast.INT, "10"},
		{ast.GT, ">"},
		{ast.INT, "5"},
		{ast.SEMICOLON, ";"},
		{ast.IF, "if"},
		{ast.LPAREN, "("},
		{ast.INT, "5"},
		{ast.LT, "<"},
		{ast.INT, "10"},
		{ast.RPAREN, ")"},
		{ast.LBRACE, "{"},
		{ast.RETURN, "return"},
		{ast.TRUE, "true"},
		{ast.SEMICOLON, ";"},
		{ast.RBRACE, "}"},
		{ast.ELSE, "else"},
		{ast.LBRACE, "{"},
		{ast.RETURN, "return"},
		{ast.FALSE, "false"},
		{ast.SEMICOLON, ";"},
		{ast.RBRACE, "}"},
		{ast.INT, "10"},
		{ast.EQ, "=="},
		{ast.INT, "10"},
		{ast.SEMICOLON, ";"},
		{ast.INT, "10"},
		{ast.NOT_EQ, "!="},
		{ast.INT, "9"},
		{ast.SEMICOLON, ";"},
		{ast.EOF, ""},
	})
}
