package parser

import (
	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

// FROM clause parsing: table references and JOINs.
//
// Grammar:
//
//	from_clause   → table_name ("," table_name | join)*
//	table_name    → [schema "."] identifier [[AS] identifier]
//	join          → [NATURAL] join_type JOIN table_name [ON expr | USING "(" ident_list ")"]
//	join_type     → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS
//
// Comma-separated sources are appended to Statement.From; explicit JOINs to
// Statement.Joins. Derived tables are rejected.

// parseFromClause parses the FROM clause into stmt.
func (p *Parser) parseFromClause(stmt *core.Statement) {
	stmt.From = append(stmt.From, p.parseTableName())

	for !p.failed() {
		if p.match(token.COMMA) {
			stmt.From = append(stmt.From, p.parseTableName())
			continue
		}

		join := p.parseJoin()
		if join == nil {
			break
		}
		stmt.Joins = append(stmt.Joins, join)
	}
}

// parseTableName parses a table name with optional schema and alias.
func (p *Parser) parseTableName() *core.TableName {
	table := &core.TableName{}

	if p.check(token.LPAREN) {
		p.addError(ErrSubquery)
		return table
	}
	if !p.check(token.IDENT) {
		p.addError("expected table name, got " + describe(p.token))
		return table
	}

	table.Name = p.token.Literal
	table.Quoted = p.token.Quoted
	p.nextToken()

	if p.match(token.DOT) {
		if !p.check(token.IDENT) {
			p.addError("expected table name after schema, got " + describe(p.token))
			return table
		}
		table.Schema = table.Name
		table.Name = p.token.Literal
		table.Quoted = table.Quoted || p.token.Quoted
		p.nextToken()
	}

	if p.match(token.AS) {
		if !p.check(token.IDENT) {
			p.addError("expected alias after AS")
			return table
		}
		table.Alias = p.token.Literal
		table.AliasQuoted = p.token.Quoted
		p.nextToken()
	} else if p.check(token.IDENT) {
		table.Alias = p.token.Literal
		table.AliasQuoted = p.token.Quoted
		p.nextToken()
	}

	return table
}

// parseJoin parses a JOIN clause. It returns nil when the current token
// does not start a join.
func (p *Parser) parseJoin() *core.Join {
	join := &core.Join{}

	if p.match(token.NATURAL) {
		join.Natural = true
	}

	switch p.token.Type {
	case token.JOIN:
		join.Type = core.JoinInner
	case token.INNER:
		join.Type = core.JoinInner
		p.nextToken()
	case token.LEFT:
		join.Type = core.JoinLeft
		p.nextToken()
		p.match(token.OUTER)
	case token.RIGHT:
		join.Type = core.JoinRight
		p.nextToken()
		p.match(token.OUTER)
	case token.FULL:
		join.Type = core.JoinFull
		p.nextToken()
		p.match(token.OUTER)
	case token.CROSS:
		join.Type = core.JoinCross
		p.nextToken()
	default:
		if join.Natural {
			p.addError("expected JOIN after NATURAL")
		}
		return nil
	}

	if !p.expect(token.JOIN) {
		return nil
	}

	join.Table = p.parseTableName()
	if p.failed() {
		return nil
	}

	switch {
	case join.Natural || join.Type == core.JoinCross:
		if p.check(token.ON) || p.check(token.USING) {
			p.addError(string(join.Type) + " JOIN cannot have a join condition")
		}
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		join.Using = p.parseUsingColumns()
	}

	return join
}

// parseUsingColumns parses the column list in USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	p.expect(token.LPAREN)
	var cols []string
	for !p.failed() {
		if !p.check(token.IDENT) {
			p.addError("expected column name in USING clause")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}
