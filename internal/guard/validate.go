// Package guard holds the statement allowlist and the spatial filter
// injection applied to queries before they reach the data store.
package guard

import "github.com/leapstack-labs/geosql/pkg/core"

// ValidateShape accepts only single-source SELECT and DELETE statements.
// Explicit joins and comma-separated sources are both rejected with
// ErrJoinsNotAllowed.
func ValidateShape(stmt *core.Statement) error {
	if stmt == nil {
		return ErrMalformedQuery
	}

	switch stmt.Kind {
	case core.StmtSelect, core.StmtDelete:
	default:
		keyword := stmt.Keyword
		if keyword == "" {
			keyword = stmt.Kind.String()
		}
		return &UnsupportedStatementError{Keyword: keyword}
	}

	if len(stmt.Joins) > 0 || len(stmt.From) > 1 {
		return ErrJoinsNotAllowed
	}
	return nil
}

// ValidateWellFormed requires a select list and a FROM clause.
func ValidateWellFormed(stmt *core.Statement) error {
	if stmt == nil || len(stmt.Columns) == 0 || stmt.From == nil {
		return ErrMalformedQuery
	}
	return nil
}
