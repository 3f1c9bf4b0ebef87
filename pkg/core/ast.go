package core

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// StatementKind identifies the top-level statement type.
type StatementKind int

// StatementKind values. StmtOther covers every statement the parser
// recognizes by its leading keyword but does not model (INSERT, UPDATE, ...).
const (
	StmtOther StatementKind = iota
	StmtSelect
	StmtDelete
)

func (k StatementKind) String() string {
	switch k {
	case StmtSelect:
		return "select"
	case StmtDelete:
		return "delete"
	default:
		return "other"
	}
}

// Statement is the root of a parsed query.
//
// From is nil when the statement has no FROM clause. Joins holds explicit
// JOIN clauses; comma-separated sources land in From instead.
type Statement struct {
	Kind    StatementKind
	Keyword string // leading keyword, lowercase

	Distinct bool
	Columns  []SelectItem
	From     []*TableName
	Joins    []*Join
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	Limit    Expr
	Offset   Expr
}

// HasWhere reports whether the statement carries a WHERE predicate.
func (s *Statement) HasWhere() bool {
	return s != nil && s.Where != nil
}

// SelectItem represents one entry of a SELECT list.
type SelectItem struct {
	Star            bool   // SELECT *
	TableStar       string // SELECT t.*
	TableStarQuoted bool
	Expr            Expr
	Alias           string
	AliasQuoted     bool
}

// OrderByItem represents a single ORDER BY item.
type OrderByItem struct {
	Expr Expr
	Desc bool
}

// TableName is a source table reference, optionally schema-qualified.
type TableName struct {
	Schema      string
	Name        string
	Alias       string
	Quoted      bool // name was written as a quoted identifier
	AliasQuoted bool
}

// JoinType is the kind of an explicit JOIN.
type JoinType string

// JoinType values.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// Join represents an explicit JOIN clause.
type Join struct {
	Type      JoinType
	Natural   bool
	Table     *TableName
	Condition Expr     // ON
	Using     []string // USING (...)
}
