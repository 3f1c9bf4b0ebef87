package parser

import (
	"fmt"

	"github.com/leapstack-labs/geosql/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnexpectedInExpr   = "unexpected token in expression: %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrIllegalCharacter   = "illegal character %q"
	ErrEmptyStatement     = "empty statement"
	ErrTrailingInput      = "unexpected %s after end of statement"
	ErrUnknownStatement   = "unknown statement %q"
	ErrSubquery           = "subqueries are not supported"
)
