package parser

import (
	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

// Expression precedence parsing (Pratt). Precedence levels come from
// token.Precedence:
//
//	OR < AND < NOT < comparison (=, <>, IS, IN, BETWEEN, LIKE, ILIKE)
//	   < additive (+, -, ||) < multiplicative (*, /, %) < unary

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(token.PrecedenceOr)
}

func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for !p.failed() {
		prec := token.Precedence(p.token.Type)
		if prec == token.PrecedenceNone || prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(token.PrecedenceNot)
		if expr == nil {
			return nil
		}
		return &core.UnaryExpr{Op: token.NOT, Expr: expr}

	case token.MINUS, token.PLUS:
		op := p.token.Type
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(token.PrecedenceUnary)
		if expr == nil {
			return nil
		}
		return &core.UnaryExpr{Op: op, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	switch p.token.Type {
	case token.NOT:
		return p.parseNotInfixExpr(left)

	case token.IS:
		return p.parseIsExpr(left)

	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, false)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)

	case token.LIKE, token.ILIKE:
		op := p.token.Type
		p.nextToken()
		return p.parseLikeExpr(left, false, op)
	}

	op := p.token.Type
	p.nextToken()

	// Right operand binds tighter (left-associative)
	right := p.parseExpressionWithPrecedence(prec + 1)
	if right == nil {
		if !p.failed() {
			p.addError("expected expression after " + op.String())
		}
		return nil
	}

	return &core.BinaryExpr{Left: left, Op: op, Right: right}
}

// parseNotInfixExpr handles NOT IN, NOT BETWEEN, NOT LIKE, NOT ILIKE.
func (p *Parser) parseNotInfixExpr(left core.Expr) core.Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, true)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)

	case token.LIKE, token.ILIKE:
		op := p.token.Type
		p.nextToken()
		return p.parseLikeExpr(left, true, op)

	default:
		p.addError("expected IN, BETWEEN, LIKE, or ILIKE after NOT")
		return nil
	}
}

// parseIsExpr parses IS [NOT] NULL.
func (p *Parser) parseIsExpr(left core.Expr) core.Expr {
	p.nextToken() // consume IS

	isNot := p.match(token.NOT)
	if !p.expect(token.NULL) {
		return nil
	}
	return &core.IsNullExpr{Expr: left, Not: isNot}
}

// parseInExpr parses the value list of an IN expression.
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	if p.check(token.SELECT) {
		p.addError(ErrSubquery)
		return nil
	}

	in := &core.InExpr{Expr: left, Not: not}
	in.Values = p.parseExpressionList()
	if !p.expect(token.RPAREN) {
		return nil
	}
	return in
}

// parseBetweenExpr parses a BETWEEN expression.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	between := &core.BetweenExpr{Expr: left, Not: not}
	// Bounds parse at additive precedence so the AND is not captured
	between.Low = p.parseExpressionWithPrecedence(token.PrecedenceAddition)
	if !p.expect(token.AND) {
		return nil
	}
	between.High = p.parseExpressionWithPrecedence(token.PrecedenceAddition)
	if between.Low == nil || between.High == nil {
		return nil
	}
	return between
}

// parseLikeExpr parses a LIKE/ILIKE expression.
func (p *Parser) parseLikeExpr(left core.Expr, not bool, op token.TokenType) core.Expr {
	pattern := p.parseExpressionWithPrecedence(token.PrecedenceAddition)
	if pattern == nil {
		return nil
	}
	return &core.LikeExpr{Expr: left, Not: not, Op: op, Pattern: pattern}
}
