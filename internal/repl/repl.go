// Package repl implements the interactive shell of the monkey tool. Each
// input line is lexed and parsed; the shell prints the canonical form of
// the program or the syntax errors. Nothing is evaluated.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/internal/diag"
	"github.com/metaphox/monkey/parser"
)

// DefaultPrompt is printed before every input line.
const DefaultPrompt = ">> "

// Result is the outcome of parsing one input.
type Result struct {
	Source  string
	Program *ast.Program
	Errors  parser.ErrorList
}

// Eval parses a single input with a fresh lexer and parser.
func Eval(input string) Result {
	prog, errs := parser.ParseString(input)
	return Result{Source: input, Program: prog, Errors: errs}
}

// Failed reports whether the input had syntax errors.
func (r Result) Failed() bool { return len(r.Errors) > 0 }

// Output is the text shown for r: the rendered errors, or the canonical
// source of the program.
func (r Result) Output(pr diag.Printer) string {
	if r.Failed() {
		return strings.TrimRight(pr.Render(r.Source, r.Errors), "\n")
	}
	return r.Program.String()
}

// Start runs the line based shell until in is exhausted.
func Start(in io.Reader, out io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	pr := diag.Printer{}

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintln(out, Eval(line).Output(pr))
	}
}
