// Package core defines the typed SQL syntax tree shared by the parser,
// the formatter, and the query guard.
//
// The tree covers the single-table statements geosql accepts plus enough
// of the surrounding grammar (joins, other statement keywords) for the
// guard to recognize and reject what it does not accept.
//
// pkg/core imports only pkg/token and the standard library.
package core
