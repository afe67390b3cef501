package parser

import (
	"fmt"

	"github.com/leapstack-labs/apexql/pkg/token"
)

// ErrorKind classifies a parse error.
type ErrorKind int

const (
	// UnexpectedToken reports a token that does not fit the grammar at its
	// position. Expected and Found describe the mismatch.
	UnexpectedToken ErrorKind = iota
	// UnexpectedEOF reports source that ended mid-construct.
	UnexpectedEOF
	// InvalidExpression reports a construct that cannot start an expression.
	InvalidExpression
	// InvalidStatement reports a construct that cannot start a statement.
	InvalidStatement
	// InvalidType reports a construct that cannot be a type reference.
	InvalidType
)

// ParseError is the error type returned by all parser entry points.
type ParseError struct {
	Kind     ErrorKind
	Expected string // UnexpectedToken only
	Found    string // UnexpectedToken only
	Span     token.Span
	Pos      token.Position
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidExpression:
		return fmt.Sprintf("invalid expression at %s", e.Pos)
	case InvalidStatement:
		return fmt.Sprintf("invalid statement at %s", e.Pos)
	case InvalidType:
		return fmt.Sprintf("invalid type at %s", e.Pos)
	default:
		return fmt.Sprintf("parse error at %s", e.Pos)
	}
}
