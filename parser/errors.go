package parser

import (
	"fmt"
	"strings"

	"github.com/metaphox/monkey/ast"
)

// Error is a single syntax error. Token is the token that triggered it; its
// Type, Literal and position locate the mistake in the source.
type Error struct {
	Msg   string
	Token ast.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Col, e.Msg)
}

// ErrorList is the ordered list of errors collected during one parse.
// The zero value is an empty list.
type ErrorList []*Error

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	var b strings.Builder
	for i, e := range el {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns an error equivalent to this list, or nil if the list is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Messages returns the bare messages without positions.
func (el ErrorList) Messages() []string {
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Msg
	}
	return msgs
}
