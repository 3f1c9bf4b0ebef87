// Package adapter executes rewritten statements against the target
// PostGIS database.
package adapter

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/geosql/pkg/core"
)

// Config holds the connection settings for a target database.
type Config struct {
	DSN string
}

// Adapter is a connection to a target database.
type Adapter interface {
	// Connect opens and verifies the connection.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection.
	Close() error

	// Exec runs a statement that returns no rows and reports rows affected.
	Exec(ctx context.Context, sql string) (int64, error)

	// Query runs a statement and materializes its rows.
	Query(ctx context.Context, sql string) (*Rows, error)
}

// Rows is a fully read query result.
type Rows struct {
	Columns []string
	Values  [][]any
}

// Outcome is the result of running a statement.
type Outcome struct {
	Kind         core.StatementKind `json:"-"`
	Columns      []string           `json:"columns,omitempty"`
	Rows         [][]any            `json:"rows,omitempty"`
	RowsAffected int64              `json:"rowsAffected"`
}

// Run executes sql on a using the method that matches the statement kind:
// SELECT statements are queried, DELETE statements executed.
func Run(ctx context.Context, a Adapter, stmt *core.Statement, sql string) (*Outcome, error) {
	if stmt == nil {
		return nil, fmt.Errorf("no statement to run")
	}

	switch stmt.Kind {
	case core.StmtSelect:
		rows, err := a.Query(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Kind:         stmt.Kind,
			Columns:      rows.Columns,
			Rows:         rows.Values,
			RowsAffected: int64(len(rows.Values)),
		}, nil
	case core.StmtDelete:
		n, err := a.Exec(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Outcome{Kind: stmt.Kind, RowsAffected: n}, nil
	default:
		return nil, fmt.Errorf("cannot run %s statement", stmt.Keyword)
	}
}
