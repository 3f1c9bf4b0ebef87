package parser

import (
	"fmt"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

// Statement parsing: SELECT, DELETE, recognized-but-unmodelled statements,
// SELECT list and ORDER BY.
//
// Grammar:
//
//	select_list   → select_item ("," select_item)*
//	select_item   → "*" | table "." "*" | expr [[AS] identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC]

// parseStatement parses a complete SQL statement.
func (p *Parser) parseStatement() *core.Statement {
	var stmt *core.Statement

	switch p.token.Type {
	case token.SELECT:
		stmt = p.parseSelect()
	case token.DELETE:
		stmt = p.parseDelete()
	case token.EOF:
		p.addError(ErrEmptyStatement)
		return nil
	default:
		stmt = p.parseOther()
	}

	if p.failed() {
		return nil
	}

	p.match(token.SEMICOLON)
	if !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, describe(p.token)))
		return nil
	}
	return stmt
}

// parseSelect parses a SELECT statement.
func (p *Parser) parseSelect() *core.Statement {
	p.expect(token.SELECT)
	stmt := &core.Statement{Kind: core.StmtSelect, Keyword: "select"}

	// DISTINCT / ALL
	if p.match(token.DISTINCT) {
		stmt.Distinct = true
	} else {
		p.match(token.ALL)
	}

	stmt.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		p.parseFromClause(stmt)
	}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	if p.match(token.GROUP) {
		p.expect(token.BY)
		stmt.GroupBy = p.parseExpressionList()
	}

	if p.match(token.HAVING) {
		stmt.Having = p.parseExpression()
	}

	if p.match(token.ORDER) {
		p.expect(token.BY)
		stmt.OrderBy = p.parseOrderByList()
	}

	if p.match(token.LIMIT) {
		stmt.Limit = p.parseExpression()
	}

	if p.match(token.OFFSET) {
		stmt.Offset = p.parseExpression()
	}

	return stmt
}

// parseDelete parses DELETE FROM from_clause [WHERE expr].
func (p *Parser) parseDelete() *core.Statement {
	p.expect(token.DELETE)
	stmt := &core.Statement{Kind: core.StmtDelete, Keyword: "delete"}

	if !p.expect(token.FROM) {
		return stmt
	}
	p.parseFromClause(stmt)

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	return stmt
}

// parseOther records the leading keyword of a statement the parser does not
// model and consumes the rest of it. The remaining tokens still have to
// lex cleanly.
func (p *Parser) parseOther() *core.Statement {
	word, ok := p.keywordOf()
	if !ok || (p.token.Type != token.IDENT && !token.IsKeyword(p.token.Type)) {
		p.addError(fmt.Sprintf(ErrUnknownStatement, p.token.Literal))
		return nil
	}

	stmt := &core.Statement{Kind: core.StmtOther, Keyword: word}
	p.nextToken()

	for !p.check(token.EOF) && !p.check(token.SEMICOLON) {
		if p.check(token.ILLEGAL) {
			p.illegal()
			return nil
		}
		p.nextToken()
	}
	return stmt
}

// illegal records an error for the current ILLEGAL token.
func (p *Parser) illegal() {
	if p.token.Literal != "" && (p.token.Literal[0] == '\'' || p.token.Literal[0] == '"') {
		p.addError(ErrUnterminatedString)
		return
	}
	p.addError(fmt.Sprintf(ErrIllegalCharacter, p.token.Literal))
}

// parseSelectList parses the list of SELECT items.
func (p *Parser) parseSelectList() []core.SelectItem {
	var items []core.SelectItem

	for {
		item := p.parseSelectItem()
		if p.failed() {
			return items
		}
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseSelectItem parses a single SELECT item.
func (p *Parser) parseSelectItem() core.SelectItem {
	item := core.SelectItem{}

	if p.match(token.STAR) {
		item.Star = true
		return item
	}

	// table.* via 3-token lookahead
	if p.check(token.IDENT) && p.checkPeek(token.DOT) && p.checkPeek2(token.STAR) {
		item.TableStar = p.token.Literal
		item.TableStarQuoted = p.token.Quoted
		p.nextToken() // identifier
		p.nextToken() // DOT
		p.nextToken() // STAR
		return item
	}

	item.Expr = p.parseExpression()

	if p.match(token.AS) {
		if p.check(token.IDENT) {
			item.Alias = p.token.Literal
			item.AliasQuoted = p.token.Quoted
			p.nextToken()
		} else {
			p.addError("expected alias after AS")
		}
	} else if p.check(token.IDENT) {
		item.Alias = p.token.Literal
		item.AliasQuoted = p.token.Quoted
		p.nextToken()
	}

	return item
}

// parseOrderByList parses a list of ORDER BY items.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	var items []core.OrderByItem

	for {
		item := core.OrderByItem{Expr: p.parseExpression()}
		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}
		if p.failed() {
			return items
		}
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr

	for {
		expr := p.parseExpression()
		if p.failed() {
			return exprs
		}
		exprs = append(exprs, expr)

		if !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}
