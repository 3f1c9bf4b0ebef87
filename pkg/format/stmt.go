package format

import (
	"strings"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

func (p *Printer) formatStatement(stmt *core.Statement) {
	switch stmt.Kind {
	case core.StmtSelect:
		p.formatSelect(stmt)
	case core.StmtDelete:
		p.formatDelete(stmt)
	default:
		p.write(strings.ToUpper(stmt.Keyword))
	}
}

func (p *Printer) formatSelect(stmt *core.Statement) {
	p.kw(token.SELECT)
	if stmt.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.space()
	p.formatList(len(stmt.Columns), func(i int) {
		p.formatSelectItem(stmt.Columns[i])
	})

	if stmt.From != nil {
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatFrom(stmt)
	}

	p.formatWhere(stmt.Where)

	if len(stmt.GroupBy) > 0 {
		p.space()
		p.kw(token.GROUP, token.BY)
		p.space()
		p.formatExprList(stmt.GroupBy)
	}

	if stmt.Having != nil {
		p.space()
		p.kw(token.HAVING)
		p.space()
		p.formatExpr(stmt.Having)
	}

	if len(stmt.OrderBy) > 0 {
		p.space()
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(stmt.OrderBy), func(i int) {
			item := stmt.OrderBy[i]
			p.formatExpr(item.Expr)
			if item.Desc {
				p.space()
				p.kw(token.DESC)
			}
		})
	}

	if stmt.Limit != nil {
		p.space()
		p.kw(token.LIMIT)
		p.space()
		p.formatExpr(stmt.Limit)
	}

	if stmt.Offset != nil {
		p.space()
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(stmt.Offset)
	}
}

func (p *Printer) formatDelete(stmt *core.Statement) {
	p.kw(token.DELETE, token.FROM)
	p.space()
	p.formatFrom(stmt)
	p.formatWhere(stmt.Where)
}

func (p *Printer) formatWhere(where core.Expr) {
	if where == nil {
		return
	}
	p.space()
	p.kw(token.WHERE)
	p.space()
	p.formatExpr(where)
}

func (p *Printer) formatSelectItem(item core.SelectItem) {
	switch {
	case item.Star:
		p.write("*")
	case item.TableStar != "":
		p.ident(item.TableStar, item.TableStarQuoted)
		p.write(".*")
	default:
		p.formatExpr(item.Expr)
		if item.Alias != "" {
			p.space()
			p.kw(token.AS)
			p.space()
			p.ident(item.Alias, item.AliasQuoted)
		}
	}
}

func (p *Printer) formatFrom(stmt *core.Statement) {
	p.formatList(len(stmt.From), func(i int) {
		p.formatTable(stmt.From[i])
	})
	for _, join := range stmt.Joins {
		p.space()
		p.formatJoin(join)
	}
}

func (p *Printer) formatTable(t *core.TableName) {
	if t.Schema != "" {
		p.ident(t.Schema, t.Quoted)
		p.write(".")
	}
	p.ident(t.Name, t.Quoted)
	if t.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.ident(t.Alias, t.AliasQuoted)
	}
}

func (p *Printer) formatJoin(join *core.Join) {
	if join.Natural {
		p.kw(token.NATURAL)
		p.space()
	}
	if join.Type != core.JoinInner {
		p.write(string(join.Type))
		p.space()
	}
	p.kw(token.JOIN)
	p.space()
	p.formatTable(join.Table)

	switch {
	case join.Condition != nil:
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatExpr(join.Condition)
	case len(join.Using) > 0:
		p.space()
		p.kw(token.USING)
		p.write(" (")
		p.formatList(len(join.Using), func(i int) {
			p.ident(join.Using[i], false)
		})
		p.write(")")
	}
}
