package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

func TestStatement_MarshalJSON_Select(t *testing.T) {
	stmt := &core.Statement{
		Kind:    core.StmtSelect,
		Keyword: "select",
		Columns: []core.SelectItem{
			{Star: true},
			{Expr: core.NewColumn("area"), Alias: "a"},
		},
		From: []*core.TableName{{Schema: "public", Name: "table1"}},
		Where: core.NewAnd(
			core.NewFunc("ST_INTERSECTS", core.NewString("g"), core.NewColumn("the_geom")),
			&core.BinaryExpr{Left: &core.ColumnRef{Table: "t", Column: "x"}, Op: token.GT, Right: core.NewNumber("1.5")},
		),
		OrderBy: []core.OrderByItem{{Expr: core.NewColumn("area"), Desc: true}},
		Limit:   core.NewNumber("10"),
	}

	data, err := json.Marshal(stmt)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "select",
		"select": [
			{"type": "wildcard", "value": "*", "alias": null},
			{"value": {"type": "literal", "value": "area"}, "alias": "a"}
		],
		"from": [{"type": "table", "value": "public.table1", "alias": null}],
		"where": {
			"type": "conditional",
			"value": "and",
			"left": {
				"type": "function",
				"value": "ST_INTERSECTS",
				"arguments": [
					{"type": "string", "value": "g"},
					{"type": "literal", "value": "the_geom"}
				]
			},
			"right": {
				"type": "operator",
				"value": ">",
				"left": {"type": "literal", "value": "t.x"},
				"right": {"type": "number", "value": 1.5}
			}
		},
		"orderBy": [{"value": {"type": "literal", "value": "area"}, "direction": "desc"}],
		"limit": {"type": "number", "value": 10}
	}`, string(data))
}

func TestStatement_MarshalJSON_Delete(t *testing.T) {
	stmt := &core.Statement{
		Kind:    core.StmtDelete,
		Keyword: "delete",
		From:    []*core.TableName{{Name: "t", Alias: "x"}},
	}

	data, err := json.Marshal(stmt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"delete","from":[{"type":"table","value":"t","alias":"x"}]}`, string(data))
}

func TestStatement_MarshalJSON_Other(t *testing.T) {
	data, err := json.Marshal(&core.Statement{Kind: core.StmtOther, Keyword: "insert"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"insert"}`, string(data))
}

func TestExprJSON(t *testing.T) {
	tests := []struct {
		name     string
		expr     core.Expr
		expected string
	}{
		{"nil", nil, `null`},
		{"bool", &core.Literal{Type: core.LiteralBool, Value: "true"}, `{"type":"bool","value":true}`},
		{"null", &core.Literal{Type: core.LiteralNull, Value: "null"}, `{"type":"null","value":null}`},
		{"count star", &core.FuncCall{Name: "count", Star: true}, `{"type":"function","value":"count","arguments":[{"type":"wildcard","value":"*"}]}`},
		{"no args", core.NewFunc("now"), `{"type":"function","value":"now","arguments":[]}`},
		{"not", &core.UnaryExpr{Op: token.NOT, Expr: core.NewColumn("a")}, `{"type":"unary","value":"not","operand":{"type":"literal","value":"a"}}`},
		{"paren", &core.ParenExpr{Expr: core.NewColumn("a")}, `{"type":"bracket","value":{"type":"literal","value":"a"}}`},
		{"in", &core.InExpr{Expr: core.NewColumn("a"), Not: true, Values: []core.Expr{core.NewNumber("1")}},
			`{"type":"in","value":{"type":"literal","value":"a"},"not":true,"arguments":[{"type":"number","value":1}]}`},
		{"is null", &core.IsNullExpr{Expr: core.NewColumn("a")}, `{"type":"isnull","value":{"type":"literal","value":"a"},"not":false}`},
		{"like", &core.LikeExpr{Expr: core.NewColumn("a"), Op: token.ILIKE, Pattern: core.NewString("x%")},
			`{"type":"like","operator":"ilike","value":{"type":"literal","value":"a"},"not":false,"pattern":{"type":"string","value":"x%"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(core.ExprJSON(tt.expr))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestStatement_HasWhere(t *testing.T) {
	var nilStmt *core.Statement
	assert.False(t, nilStmt.HasWhere())
	assert.False(t, (&core.Statement{}).HasWhere())
	assert.True(t, (&core.Statement{Where: core.NewColumn("a")}).HasWhere())
}
