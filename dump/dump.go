// Package dump renders token streams and syntax trees as YAML documents.
//
// The output is meant for people and for golden tests: every tree node is a
// mapping whose first key is "node" (the Go type name) followed by the fields
// of that node in declaration order.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/lexer"
)

// TokenRecord is the YAML shape of a single token.
type TokenRecord struct {
	Kind    string `yaml:"kind"`
	Literal string `yaml:"literal,omitempty"`
	Line    int    `yaml:"line"`
	Col     int    `yaml:"col"`
}

// CollectTokens drains l up to and including the EOF token.
func CollectTokens(l *lexer.Lexer) []TokenRecord {
	var out []TokenRecord
	for {
		tok := l.NextToken()
		out = append(out, TokenRecord{
			Kind:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Line,
			Col:     tok.Col,
		})
		if tok.Type == ast.EOF {
			return out
		}
	}
}

// Tokens writes the token stream of l to w as a YAML sequence.
func Tokens(w io.Writer, l *lexer.Lexer) error {
	return encode(w, CollectTokens(l))
}

// Program writes the tree of p to w.
func Program(w io.Writer, p *ast.Program) error {
	return encode(w, Node(p))
}

func encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Node converts n into a YAML node tree. A nil node becomes a YAML null.
func Node(n ast.Node) *yaml.Node {
	switch n := n.(type) {
	case nil:
		return null()
	case *ast.Program:
		return mapping("Program", "statements", statements(n.Statements))
	case *ast.LetStatement:
		return mapping("LetStatement", "name", scalar(n.Name.Value), "value", expr(n.Value))
	case *ast.ReturnStatement:
		return mapping("ReturnStatement", "value", expr(n.ReturnValue))
	case *ast.ExpressionStatement:
		return mapping("ExpressionStatement", "expression", expr(n.Expression))
	case *ast.BlockStatement:
		return mapping("BlockStatement", "statements", statements(n.Statements))
	case *ast.Identifier:
		return mapping("Identifier", "value", scalar(n.Value))
	case *ast.IntegerLiteral:
		return mapping("IntegerLiteral", "value", typedScalar("!!int", strconv.FormatInt(n.Value, 10)))
	case *ast.BooleanLiteral:
		return mapping("BooleanLiteral", "value", typedScalar("!!bool", strconv.FormatBool(n.Value)))
	case *ast.PrefixExpression:
		return mapping("PrefixExpression", "operator", scalar(n.Operator), "right", expr(n.Right))
	case *ast.InfixExpression:
		return mapping("InfixExpression",
			"left", expr(n.Left),
			"operator", scalar(n.Operator),
			"right", expr(n.Right))
	case *ast.IfExpression:
		var alt *yaml.Node
		if n.Alternative != nil {
			alt = Node(n.Alternative)
		} else {
			alt = null()
		}
		return mapping("IfExpression",
			"condition", expr(n.Condition),
			"consequence", Node(n.Consequence),
			"alternative", alt)
	case *ast.FunctionLiteral:
		params := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, p := range n.Parameters {
			params.Content = append(params.Content, scalar(p.Value))
		}
		return mapping("FunctionLiteral", "parameters", params, "body", Node(n.Body))
	case *ast.CallExpression:
		args := &yaml.Node{Kind: yaml.SequenceNode}
		for _, a := range n.Arguments {
			args.Content = append(args.Content, expr(a))
		}
		return mapping("CallExpression", "function", expr(n.Function), "arguments", args)
	default:
		return mapping(fmt.Sprintf("%T", n), "source", scalar(n.String()))
	}
}

// expr renders a missing expression (a nil interface, such as the value of
// a bare return) as a YAML null.
func expr(e ast.Expression) *yaml.Node {
	if e == nil {
		return null()
	}
	return Node(e)
}

func statements(stmts []ast.Statement) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range stmts {
		seq.Content = append(seq.Content, Node(s))
	}
	return seq
}

// mapping builds {node: kind, k1: v1, ...}; kv alternates key strings and
// value nodes.
func mapping(kind string, kv ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, scalar("node"), scalar(kind))
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func typedScalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
