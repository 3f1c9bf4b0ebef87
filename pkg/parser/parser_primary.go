package parser

import (
	"fmt"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls,
// parenthesized expressions.
//
// Grammar:
//
//	primary       → literal | column_ref | func_call | paren_expr | "*"
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [table "."] column | [schema "." table "."] column
//	func_call     → identifier "(" [DISTINCT] [expr_list | "*"] ")"
//	paren_expr    → "(" expression ")"

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() core.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := core.NewNumber(p.token.Literal)
		p.nextToken()
		return lit

	case token.STRING:
		lit := core.NewString(p.token.Literal)
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "true"}

	case token.FALSE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "false"}

	case token.NULL:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "null"}

	case token.IDENT:
		return p.parseIdentifierExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.STAR:
		p.nextToken()
		return &core.StarExpr{}

	case token.ILLEGAL:
		p.illegal()
		return nil

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedInExpr, describe(p.token)))
		return nil
	}
}

// parseIdentifierExpr parses a column reference or function call.
func (p *Parser) parseIdentifierExpr() core.Expr {
	name := p.token.Literal
	quoted := p.token.Quoted
	p.nextToken()

	if p.check(token.LPAREN) && !quoted {
		return p.parseFuncCall(name)
	}

	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name, quoted)
	}

	return &core.ColumnRef{Column: name, Quoted: quoted}
}

// parseQualifiedColumnRef parses table.column, schema.table.column or table.*.
func (p *Parser) parseQualifiedColumnRef(first string, quoted bool) core.Expr {
	parts := []string{first}

	for p.match(token.DOT) {
		if p.check(token.STAR) {
			p.nextToken()
			return &core.StarExpr{Table: parts[len(parts)-1]}
		}
		if !p.check(token.IDENT) {
			p.addError("expected column name after '.', got " + describe(p.token))
			return nil
		}
		parts = append(parts, p.token.Literal)
		quoted = quoted || p.token.Quoted
		p.nextToken()
	}

	// schema.table.column keeps table.column
	n := len(parts)
	return &core.ColumnRef{Table: parts[n-2], Column: parts[n-1], Quoted: quoted}
}

// parseFuncCall parses a function call. The name keeps its original casing.
func (p *Parser) parseFuncCall(name string) core.Expr {
	fn := &core.FuncCall{Name: name}

	p.expect(token.LPAREN)

	switch {
	case p.check(token.SELECT):
		p.addError(ErrSubquery)
		return nil
	case p.check(token.STAR):
		fn.Star = true
		p.nextToken()
	case !p.check(token.RPAREN):
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	return fn
}

// parseParenExpr parses a parenthesized expression.
func (p *Parser) parseParenExpr() core.Expr {
	p.expect(token.LPAREN)

	if p.check(token.SELECT) {
		p.addError(ErrSubquery)
		return nil
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &core.ParenExpr{Expr: expr}
}
