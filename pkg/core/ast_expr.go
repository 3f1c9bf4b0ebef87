package core

import "github.com/leapstack-labs/geosql/pkg/token"

// ColumnRef is a bare or table-qualified column reference.
type ColumnRef struct {
	Table  string
	Column string
	Quoted bool
}

func (*ColumnRef) exprNode() {}

// Literal represents a literal value. Value holds the source text for
// numbers and the unescaped contents for strings.
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for SQL literal value types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// BinaryExpr represents a binary expression. With Op AND or OR it is a
// conditional node; both children are always set.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// IsConditional reports whether the node joins two predicates with AND/OR.
func (b *BinaryExpr) IsConditional() bool {
	return b.Op == token.AND || b.Op == token.OR
}

// UnaryExpr represents a prefix expression (NOT, -, +).
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall represents a function call. Args are kept in call order and
// Name keeps the casing it was written with.
type FuncCall struct {
	Name     string
	Distinct bool
	Star     bool // COUNT(*)
	Args     []Expr
}

func (*FuncCall) exprNode() {}

// ParenExpr is an explicitly parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// InExpr represents expr [NOT] IN (values...).
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
}

func (*InExpr) exprNode() {}

// BetweenExpr represents expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// IsNullExpr represents expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// LikeExpr represents expr [NOT] LIKE|ILIKE pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Op      token.TokenType // token.LIKE or token.ILIKE
	Pattern Expr
}

func (*LikeExpr) exprNode() {}

// StarExpr is a * argument or t.* reference inside an expression.
type StarExpr struct {
	Table string
}

func (*StarExpr) exprNode() {}

// NewAnd joins two predicates with AND, left first.
func NewAnd(left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: token.AND, Right: right}
}

// NewFunc builds a function call node.
func NewFunc(name string, args ...Expr) *FuncCall {
	return &FuncCall{Name: name, Args: args}
}

// NewString builds a string literal.
func NewString(v string) *Literal {
	return &Literal{Type: LiteralString, Value: v}
}

// NewNumber builds a numeric literal from its textual form.
func NewNumber(v string) *Literal {
	return &Literal{Type: LiteralNumber, Value: v}
}

// NewColumn builds an unqualified column reference.
func NewColumn(name string) *ColumnRef {
	return &ColumnRef{Column: name}
}
