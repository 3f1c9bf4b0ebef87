package guard

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the validators. Messages match the ones the
// HTTP API has always reported.
var (
	// ErrUnsupportedStatement matches every *UnsupportedStatementError.
	ErrUnsupportedStatement = errors.New("statement type not allowed")
	ErrJoinsNotAllowed      = errors.New("Joins not allowed")
	ErrMalformedQuery       = errors.New("Malformed query")
)

// UnsupportedStatementError reports a statement kind outside the allowlist.
type UnsupportedStatementError struct {
	Keyword string
}

func (e *UnsupportedStatementError) Error() string {
	return fmt.Sprintf("Type %s not allowed", e.Keyword)
}

// Is lets errors.Is match ErrUnsupportedStatement.
func (e *UnsupportedStatementError) Is(target error) bool {
	return target == ErrUnsupportedStatement
}
