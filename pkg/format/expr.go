package format

import (
	"strings"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

func (p *Printer) formatExpr(e core.Expr) {
	switch expr := e.(type) {
	case nil:
		return
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.ColumnRef:
		if expr.Table != "" {
			p.ident(expr.Table, expr.Quoted)
			p.write(".")
		}
		p.ident(expr.Column, expr.Quoted)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.ParenExpr:
		p.write("(")
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.InExpr:
		p.formatOperand(expr.Expr, token.PrecedenceComparison+1)
		p.space()
		if expr.Not {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(token.IN)
		p.write(" (")
		p.formatExprList(expr.Values)
		p.write(")")
	case *core.BetweenExpr:
		p.formatOperand(expr.Expr, token.PrecedenceComparison+1)
		p.space()
		if expr.Not {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(token.BETWEEN)
		p.space()
		p.formatOperand(expr.Low, token.PrecedenceAddition)
		p.space()
		p.kw(token.AND)
		p.space()
		p.formatOperand(expr.High, token.PrecedenceAddition)
	case *core.IsNullExpr:
		p.formatOperand(expr.Expr, token.PrecedenceComparison+1)
		p.space()
		p.kw(token.IS)
		if expr.Not {
			p.space()
			p.kw(token.NOT)
		}
		p.space()
		p.kw(token.NULL)
	case *core.LikeExpr:
		p.formatOperand(expr.Expr, token.PrecedenceComparison+1)
		p.space()
		if expr.Not {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(expr.Op)
		p.space()
		p.formatOperand(expr.Pattern, token.PrecedenceAddition)
	case *core.StarExpr:
		if expr.Table != "" {
			p.ident(expr.Table, false)
			p.write(".")
		}
		p.write("*")
	}
}

func (p *Printer) formatLiteral(l *core.Literal) {
	switch l.Type {
	case core.LiteralString:
		p.stringLiteral(l.Value)
	case core.LiteralBool:
		p.write(strings.ToUpper(l.Value))
	case core.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(l.Value)
	}
}

func (p *Printer) formatBinaryExpr(b *core.BinaryExpr) {
	prec := token.Precedence(b.Op)
	p.formatOperand(b.Left, prec)
	p.space()
	p.write(opText(b.Op))
	p.space()
	// AND and OR are associative; everything else is left-associative so an
	// equal-precedence right operand needs parentheses.
	if b.IsConditional() {
		p.formatOperand(b.Right, prec)
	} else {
		p.formatOperand(b.Right, prec+1)
	}
}

func (p *Printer) formatUnaryExpr(u *core.UnaryExpr) {
	if u.Op == token.NOT {
		p.kw(token.NOT)
		p.space()
		p.formatOperand(u.Expr, token.PrecedenceNot)
		return
	}
	p.write(u.Op.String())
	if inner, ok := u.Expr.(*core.UnaryExpr); ok && inner.Op != token.NOT {
		p.space() // "--" would start a comment
	}
	p.formatOperand(u.Expr, token.PrecedenceUnary)
}

func (p *Printer) formatFuncCall(f *core.FuncCall) {
	p.write(f.Name)
	p.write("(")
	switch {
	case f.Star:
		p.write("*")
	default:
		if f.Distinct {
			p.kw(token.DISTINCT)
			p.space()
		}
		p.formatExprList(f.Args)
	}
	p.write(")")
}

func (p *Printer) formatExprList(exprs []core.Expr) {
	p.formatList(len(exprs), func(i int) {
		p.formatExpr(exprs[i])
	})
}

// formatOperand writes e, wrapping it in parentheses when it binds looser
// than minPrec.
func (p *Printer) formatOperand(e core.Expr, minPrec int) {
	if exprPrecedence(e) < minPrec {
		p.write("(")
		p.formatExpr(e)
		p.write(")")
		return
	}
	p.formatExpr(e)
}

// exprPrecedence returns how tightly e binds. Atoms bind tightest.
func exprPrecedence(e core.Expr) int {
	switch expr := e.(type) {
	case *core.BinaryExpr:
		return token.Precedence(expr.Op)
	case *core.UnaryExpr:
		if expr.Op == token.NOT {
			return token.PrecedenceNot
		}
		return token.PrecedenceUnary
	case *core.InExpr, *core.BetweenExpr, *core.IsNullExpr, *core.LikeExpr:
		return token.PrecedenceComparison
	default:
		return token.PrecedenceUnary + 1
	}
}

// opText returns the SQL spelling of a binary operator.
func opText(op token.TokenType) string {
	if op == token.NE {
		return "<>"
	}
	return op.String()
}
