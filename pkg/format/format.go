// Package format renders a core.Statement back to SQL text.
//
// Output is a single line with upper-case keywords. Identifiers are quoted
// only when they were quoted in the source or cannot be written bare, and
// parentheses are added wherever the tree's shape would otherwise be lost
// on re-parse.
package format

import "github.com/leapstack-labs/geosql/pkg/core"

// Format renders a statement. Statements of kind core.StmtOther are not
// modelled and render as their upper-cased leading keyword only.
func Format(stmt *core.Statement) string {
	if stmt == nil {
		return ""
	}
	p := newPrinter()
	p.formatStatement(stmt)
	return p.String()
}

// Expr renders a single expression.
func Expr(e core.Expr) string {
	p := newPrinter()
	p.formatExpr(e)
	return p.String()
}
