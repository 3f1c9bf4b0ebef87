package token

// Operator precedence levels, lowest first.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceNot
	PrecedenceComparison // =, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE
	PrecedenceAddition   // +, -, ||
	PrecedenceMultiply   // *, /, %
	PrecedenceUnary      // -, +, NOT
)

// Precedence returns the binding power of t as an infix operator.
// Tokens that are not infix operators return PrecedenceNone.
func Precedence(t TokenType) int {
	switch t {
	case OR:
		return PrecedenceOr
	case AND:
		return PrecedenceAnd
	case EQ, NE, LT, GT, LE, GE, IS, IN, BETWEEN, LIKE, ILIKE, NOT:
		return PrecedenceComparison
	case PLUS, MINUS, DPIPE:
		return PrecedenceAddition
	case STAR, SLASH, PERCENT:
		return PrecedenceMultiply
	default:
		return PrecedenceNone
	}
}
