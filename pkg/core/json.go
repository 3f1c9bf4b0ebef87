package core

import (
	"encoding/json"
	"strings"
)

// The JSON form of the tree follows the jsonSql layout consumed by the
// existing API clients: every node is an object with a "type" and a
// "value", bare identifiers are "literal" nodes, and AND/OR nodes are
// "conditional" nodes with "left" and "right".

// MarshalJSON renders the statement in jsonSql layout.
func (s *Statement) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": statementType(s)}

	if s.Kind == StmtSelect {
		cols := make([]any, 0, len(s.Columns))
		for _, item := range s.Columns {
			cols = append(cols, selectItemJSON(item))
		}
		out["select"] = cols
		if s.Distinct {
			out["distinct"] = true
		}
	}

	if s.From != nil {
		from := make([]any, 0, len(s.From))
		for _, t := range s.From {
			from = append(from, tableJSON(t))
		}
		out["from"] = from
	}

	if len(s.Joins) > 0 {
		joins := make([]any, 0, len(s.Joins))
		for _, j := range s.Joins {
			joins = append(joins, joinJSON(j))
		}
		out["join"] = joins
	}

	if s.Where != nil {
		out["where"] = ExprJSON(s.Where)
	}
	if len(s.GroupBy) > 0 {
		out["group"] = exprListJSON(s.GroupBy)
	}
	if s.Having != nil {
		out["having"] = ExprJSON(s.Having)
	}
	if len(s.OrderBy) > 0 {
		order := make([]any, 0, len(s.OrderBy))
		for _, o := range s.OrderBy {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			order = append(order, map[string]any{"value": ExprJSON(o.Expr), "direction": dir})
		}
		out["orderBy"] = order
	}
	if s.Limit != nil {
		out["limit"] = ExprJSON(s.Limit)
	}
	if s.Offset != nil {
		out["offset"] = ExprJSON(s.Offset)
	}

	return json.Marshal(out)
}

func statementType(s *Statement) string {
	if s.Kind == StmtOther && s.Keyword != "" {
		return s.Keyword
	}
	return s.Kind.String()
}

// ExprJSON converts an expression into its jsonSql value. A nil
// expression yields nil.
func ExprJSON(e Expr) any {
	switch n := e.(type) {
	case nil:
		return nil
	case *Literal:
		return literalJSON(n)
	case *ColumnRef:
		return map[string]any{"type": "literal", "value": columnName(n)}
	case *FuncCall:
		args := exprListJSON(n.Args)
		if n.Star {
			args = []any{map[string]any{"type": "wildcard", "value": "*"}}
		}
		out := map[string]any{"type": "function", "value": n.Name, "arguments": args}
		if n.Distinct {
			out["distinct"] = true
		}
		return out
	case *BinaryExpr:
		typ := "operator"
		if n.IsConditional() {
			typ = "conditional"
		}
		return map[string]any{
			"type":  typ,
			"value": strings.ToLower(n.Op.String()),
			"left":  ExprJSON(n.Left),
			"right": ExprJSON(n.Right),
		}
	case *UnaryExpr:
		return map[string]any{"type": "unary", "value": strings.ToLower(n.Op.String()), "operand": ExprJSON(n.Expr)}
	case *ParenExpr:
		return map[string]any{"type": "bracket", "value": ExprJSON(n.Expr)}
	case *InExpr:
		return map[string]any{"type": "in", "value": ExprJSON(n.Expr), "not": n.Not, "arguments": exprListJSON(n.Values)}
	case *BetweenExpr:
		return map[string]any{"type": "between", "value": ExprJSON(n.Expr), "not": n.Not, "low": ExprJSON(n.Low), "high": ExprJSON(n.High)}
	case *IsNullExpr:
		return map[string]any{"type": "isnull", "value": ExprJSON(n.Expr), "not": n.Not}
	case *LikeExpr:
		return map[string]any{
			"type":     "like",
			"operator": strings.ToLower(n.Op.String()),
			"value":    ExprJSON(n.Expr),
			"not":      n.Not,
			"pattern":  ExprJSON(n.Pattern),
		}
	case *StarExpr:
		v := "*"
		if n.Table != "" {
			v = n.Table + ".*"
		}
		return map[string]any{"type": "wildcard", "value": v}
	default:
		return nil
	}
}

func literalJSON(l *Literal) any {
	switch l.Type {
	case LiteralNumber:
		return map[string]any{"type": "number", "value": json.Number(l.Value)}
	case LiteralBool:
		return map[string]any{"type": "bool", "value": l.Value == "true"}
	case LiteralNull:
		return map[string]any{"type": "null", "value": nil}
	default:
		return map[string]any{"type": "string", "value": l.Value}
	}
}

func columnName(c *ColumnRef) string {
	if c.Table != "" {
		return c.Table + "." + c.Column
	}
	return c.Column
}

func exprListJSON(exprs []Expr) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, ExprJSON(e))
	}
	return out
}

func selectItemJSON(item SelectItem) any {
	switch {
	case item.Star:
		return map[string]any{"type": "wildcard", "value": "*", "alias": nil}
	case item.TableStar != "":
		return map[string]any{"type": "wildcard", "value": item.TableStar + ".*", "alias": nil}
	}
	out := map[string]any{"value": ExprJSON(item.Expr), "alias": nil}
	if item.Alias != "" {
		out["alias"] = item.Alias
	}
	return out
}

func tableJSON(t *TableName) any {
	name := t.Name
	if t.Schema != "" {
		name = t.Schema + "." + t.Name
	}
	out := map[string]any{"type": "table", "value": name, "alias": nil}
	if t.Alias != "" {
		out["alias"] = t.Alias
	}
	return out
}

func joinJSON(j *Join) any {
	out := map[string]any{
		"type":  strings.ToLower(string(j.Type)),
		"table": tableJSON(j.Table),
	}
	if j.Natural {
		out["natural"] = true
	}
	if j.Condition != nil {
		out["on"] = ExprJSON(j.Condition)
	}
	if len(j.Using) > 0 {
		out["using"] = j.Using
	}
	return out
}
