// Package ast defines the Abstract Syntax Tree (AST) node types for Monkey.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    LetStatement, ReturnStatement, ExpressionStatement, BlockStatement
//	  Expression (interface)
//	    Identifier, IntegerLiteral, BooleanLiteral
//	    PrefixExpression, InfixExpression
//	    IfExpression, FunctionLiteral, CallExpression
//
// Trees are built once by the parser and never mutated afterwards. Each child
// is owned by exactly one parent. Consumers dispatch with a type switch over
// the concrete node types.
//
// String renders the canonical source form of a node. Expressions are fully
// parenthesised, so the output of String parses back into the same tree.
// A few rules exist only to keep that true when statements are concatenated:
// blocks keep their braces, an if condition that is not already a prefix or
// infix expression is wrapped in parentheses, and an expression statement
// followed by another statement is terminated with ';'.
package ast

import (
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the AST.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns the canonical source form of the node.
	String() string
}

// Statement is a Node in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser. Statements are in
// source order; an empty input gives an empty, non-nil slice.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	writeStatements(&out, p.Statements)
	return out.String()
}

// writeStatements concatenates statements. An expression statement that is
// followed by another statement gets a ';' so that "a; b" does not render as
// the single identifier "ab".
func writeStatements(out *strings.Builder, stmts []Statement) {
	for i, s := range stmts {
		out.WriteString(s.String())
		if _, ok := s.(*ExpressionStatement); ok && i < len(stmts)-1 {
			out.WriteByte(';')
		}
	}
}

// ── Statements ────────────────────────────────────────────────────────────────

// LetStatement binds a name to a value. The initializer is mandatory.
//
//	let x = 5;
type LetStatement struct {
	Token Token // the 'let' token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(s.TokenLiteral() + " ")
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	if s.Value != nil {
		out.WriteString(s.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ReturnStatement returns from the enclosing function.
//
//	return x + 1;
//	return;        (ReturnValue == nil)
type ReturnStatement struct {
	Token       Token // the 'return' token
	ReturnValue Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) String() string {
	if s.ReturnValue == nil {
		return s.TokenLiteral() + ";"
	}
	return s.TokenLiteral() + " " + s.ReturnValue.String() + ";"
}

// ExpressionStatement wraps an expression that appears in statement position.
type ExpressionStatement struct {
	Token      Token // the first token of the expression
	Expression Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) String() string {
	if s.Expression != nil {
		return s.Expression.String()
	}
	return ""
}

// BlockStatement is a brace-delimited sequence of statements. It only
// appears as the body of an if branch or a function literal.
type BlockStatement struct {
	Token      Token // the '{' token
	Statements []Statement
}

func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("{")
	writeStatements(&out, s.Statements)
	out.WriteString("}")
	return out.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Identifier is a reference to a named binding.
type Identifier struct {
	Token Token
	Value string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Value }

// IntegerLiteral is a decimal integer literal value.
type IntegerLiteral struct {
	Token Token
	Value int64
}

func (e *IntegerLiteral) expressionNode()      {}
func (e *IntegerLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *IntegerLiteral) String() string       { return e.Token.Literal }

// BooleanLiteral is the literal true or false.
type BooleanLiteral struct {
	Token Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *BooleanLiteral) String() string       { return e.Token.Literal }

// PrefixExpression is a unary prefix expression: !x or -5.
type PrefixExpression struct {
	Token    Token  // the operator token
	Operator string // "!" or "-"
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + e.Right.String() + ")"
}

// InfixExpression is a binary expression: left op right.
type InfixExpression struct {
	Token    Token // the operator token
	Left     Expression
	Operator string // "+", "-", "*", "/", "==", "!=", "<", ">"
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// IfExpression is a conditional. Alternative is nil without an else branch.
//
//	if (x < y) { x } else { y }
type IfExpression struct {
	Token       Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode()      {}
func (e *IfExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpression) String() string {
	var out strings.Builder
	out.WriteString("if")
	switch e.Condition.(type) {
	case *PrefixExpression, *InfixExpression:
		// already rendered inside parentheses
		out.WriteString(e.Condition.String())
	default:
		out.WriteString("(" + e.Condition.String() + ")")
	}
	out.WriteString(" ")
	out.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		out.WriteString("else ")
		out.WriteString(e.Alternative.String())
	}
	return out.String()
}

// FunctionLiteral is an anonymous function.
//
//	fn(x, y) { x + y }
type FunctionLiteral struct {
	Token      Token // the 'fn' token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (e *FunctionLiteral) expressionNode()      {}
func (e *FunctionLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *FunctionLiteral) String() string {
	params := make([]string, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		params = append(params, p.String())
	}
	return e.TokenLiteral() + "(" + strings.Join(params, ", ") + ")" + e.Body.String()
}

// CallExpression applies a function to arguments.
//
//	add(1, 2 * 3)
//	fn(x) { x }(5)
type CallExpression struct {
	Token     Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) String() string {
	args := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, a.String())
	}
	return e.Function.String() + "(" + strings.Join(args, ",") + ")"
}
