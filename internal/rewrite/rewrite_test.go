package rewrite_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/geosql/internal/geostore"
	"github.com/leapstack-labs/geosql/internal/guard"
	"github.com/leapstack-labs/geosql/internal/rewrite"
	"github.com/leapstack-labs/geosql/internal/testutil"
	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/format"
	"github.com/leapstack-labs/geosql/pkg/parser"
	"github.com/leapstack-labs/geosql/pkg/token"
)

const polygon = `{"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}`

const spatial = `ST_INTERSECTS(ST_SetSRID(ST_GeomFromGeoJSON('{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}'), 4326), the_geom)`

func newService(t *testing.T, fetcher geostore.Fetcher) *rewrite.Service {
	t.Helper()
	return rewrite.New(rewrite.Config{Fetcher: fetcher, Logger: testutil.NewTestLogger(t)})
}

func requireKind(t *testing.T, err error, kind rewrite.Kind, message string) {
	t.Helper()
	require.Error(t, err)

	var rerr *rewrite.Error
	require.True(t, errors.As(err, &rerr), "expected *rewrite.Error, got %T", err)
	assert.Equal(t, kind, rerr.Kind, "kind %s", rerr.Kind)
	assert.Equal(t, message, rerr.Message)
	assert.Equal(t, message, err.Error())
}

func TestRewrite_Success(t *testing.T) {
	fetcher := testutil.NewFakeFetcher().Add("abc123", polygon).Add("g1", polygon)
	svc := newService(t, fetcher)

	tests := []struct {
		name     string
		req      rewrite.Request
		expected string
	}{
		{
			name:     "no geostore",
			req:      rewrite.Request{SQL: "select * from table1 where x = 1"},
			expected: "SELECT * FROM table1 WHERE x = 1",
		},
		{
			name:     "geostore without where",
			req:      rewrite.Request{SQL: "SELECT * FROM table1", Geostore: "abc123"},
			expected: "SELECT * FROM table1 WHERE " + spatial,
		},
		{
			name:     "geostore with where",
			req:      rewrite.Request{SQL: "SELECT * FROM t WHERE x=1", Geostore: "g1"},
			expected: "SELECT * FROM t WHERE " + spatial + " AND x = 1",
		},
		{
			name:     "geostore with or predicate",
			req:      rewrite.Request{SQL: "SELECT a FROM t WHERE x = 1 OR y = 2", Geostore: "g1"},
			expected: "SELECT a FROM t WHERE " + spatial + " AND (x = 1 OR y = 2)",
		},
		{
			name:     "delete with geostore",
			req:      rewrite.Request{SQL: "DELETE FROM t", Geostore: "g1"},
			expected: "DELETE FROM t WHERE " + spatial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Rewrite(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.SQL)
			require.NotNil(t, res.Parsed)

			// Re-parsing may add ParenExpr nodes, so compare rendered text.
			reparsed, err := parser.Parse(res.SQL)
			require.NoError(t, err)
			assert.Equal(t, res.SQL, format.Format(reparsed))
		})
	}
}

func TestRewrite_SpatialPredicateIsLeftOperand(t *testing.T) {
	svc := newService(t, testutil.NewFakeFetcher().Add("g1", polygon))

	res, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t WHERE x=1", Geostore: "g1"})
	require.NoError(t, err)

	and, ok := res.Parsed.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)

	fn, ok := and.Left.(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "ST_INTERSECTS", fn.Name)
	assert.Equal(t, &core.ColumnRef{Column: "the_geom"}, fn.Args[1])

	setSRID := fn.Args[0].(*core.FuncCall)
	assert.Equal(t, "ST_SetSRID", setSRID.Name)
	assert.Equal(t, core.NewNumber("4326"), setSRID.Args[1])

	assert.Equal(t, &core.BinaryExpr{
		Left:  &core.ColumnRef{Column: "x"},
		Op:    token.EQ,
		Right: core.NewNumber("1"),
	}, and.Right)
}

func TestRewrite_OrPredicateKeptWhole(t *testing.T) {
	svc := newService(t, testutil.NewFakeFetcher().Add("g1", polygon))

	res, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT a FROM t WHERE x = 1 OR y = 2", Geostore: "g1"})
	require.NoError(t, err)

	and, ok := res.Parsed.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
	assert.IsType(t, &core.FuncCall{}, and.Left)

	or, ok := and.Right.(*core.BinaryExpr)
	require.True(t, ok, "existing predicate should stay one OR node, got %T", and.Right)
	assert.Equal(t, token.OR, or.Op)

	reparsed, err := parser.Parse(res.SQL)
	require.NoError(t, err)
	reAnd := reparsed.Where.(*core.BinaryExpr)
	paren, ok := reAnd.Right.(*core.ParenExpr)
	require.True(t, ok, "rendered OR should be parenthesized, got %T", reAnd.Right)
	assert.Equal(t, or, paren.Expr)
}

func TestRewrite_Errors(t *testing.T) {
	fetcher := testutil.NewFakeFetcher().Add("g1", polygon)
	svc := newService(t, fetcher)

	tests := []struct {
		name    string
		req     rewrite.Request
		kind    rewrite.Kind
		message string
	}{
		{"join", rewrite.Request{SQL: "SELECT * FROM a JOIN b ON a.id=b.id"}, rewrite.KindJoinsNotAllowed, "Joins not allowed"},
		{"comma join", rewrite.Request{SQL: "SELECT * FROM a, b"}, rewrite.KindJoinsNotAllowed, "Joins not allowed"},
		{"insert", rewrite.Request{SQL: "INSERT INTO table1 VALUES (1)"}, rewrite.KindUnsupportedStatement, "Type insert not allowed"},
		{"update", rewrite.Request{SQL: "update t set a = 1"}, rewrite.KindUnsupportedStatement, "Type update not allowed"},
		{"garbage", rewrite.Request{SQL: "SELEC * FROM t"}, rewrite.KindMalformedQuery, "Malformed query"},
		{"empty", rewrite.Request{SQL: "   "}, rewrite.KindMalformedQuery, "Malformed query"},
		{"unterminated", rewrite.Request{SQL: "SELECT * FROM t WHERE a = 'x"}, rewrite.KindMalformedQuery, "Malformed query"},
		{"no from", rewrite.Request{SQL: "SELECT 1"}, rewrite.KindMalformedQuery, "Malformed query"},
		{"incomplete exponent", rewrite.Request{SQL: "SELECT * FROM t WHERE x = 1e+"}, rewrite.KindMalformedQuery, "Malformed query"},
		{"missing geostore", rewrite.Request{SQL: "SELECT * FROM t", Geostore: "missing"}, rewrite.KindGeostoreNotFound, "Geostore not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Rewrite(context.Background(), tt.req)
			assert.Nil(t, res)
			requireKind(t, err, tt.kind, tt.message)
		})
	}
}

func TestRewrite_ShapeCheckedBeforeFetch(t *testing.T) {
	fetcher := testutil.NewFakeFetcher().Add("g1", polygon)
	svc := newService(t, fetcher)

	_, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM a JOIN b ON a.id = b.id", Geostore: "g1"})
	requireKind(t, err, rewrite.KindJoinsNotAllowed, "Joins not allowed")
	assert.ErrorIs(t, err, guard.ErrJoinsNotAllowed)
	assert.Empty(t, fetcher.Calls())
}

func TestRewrite_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    rewrite.Kind
		message string
	}{
		{"not found", geostore.ErrNotFound, rewrite.KindGeostoreNotFound, "Geostore not found"},
		{"wrapped not found", &geostore.TransportError{StatusCode: 404, Err: geostore.ErrNotFound}, rewrite.KindGeostoreNotFound, "Geostore not found"},
		{"server error", &geostore.TransportError{StatusCode: 500, Err: errors.New("boom")}, rewrite.KindGeostoreFetchError, "Error obtaining geostore"},
		{"unknown error", errors.New("dns failure"), rewrite.KindGeostoreFetchError, "Error obtaining geostore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := testutil.NewFakeFetcher()
			fetcher.Err = tt.err
			svc := newService(t, fetcher)

			_, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t", Geostore: "x"})
			requireKind(t, err, tt.kind, tt.message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRewrite_GeostoreWithoutGeometry(t *testing.T) {
	svc := newService(t, testutil.NewFakeFetcher().Add("empty", "null"))

	_, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t", Geostore: "empty"})
	requireKind(t, err, rewrite.KindGeostoreNotFound, "Geostore not found")
}

func TestRewrite_NoFetcher(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t", Geostore: "g1"})
	requireKind(t, err, rewrite.KindGeostoreFetchError, "Error obtaining geostore")

	res, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t", res.SQL)
}

func TestRewrite_CancelledDuringFetch(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Block = true
	svc := newService(t, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Rewrite(ctx, rewrite.Request{SQL: "SELECT * FROM t", Geostore: "g1"})
	assert.Nil(t, res)
	requireKind(t, err, rewrite.KindGeostoreFetchError, "Error obtaining geostore")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRewrite_CancelledAfterFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := testutil.NewFakeFetcher().Add("g1", polygon)
	fetcher.OnFetch = func(string) { cancel() }
	svc := newService(t, fetcher)

	res, err := svc.Rewrite(ctx, rewrite.Request{SQL: "SELECT * FROM t", Geostore: "g1"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRewrite_LogsFailureKind(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	svc := rewrite.New(rewrite.Config{Logger: logger})

	_, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "DROP TABLE t"})
	require.Error(t, err)

	rec := logs.Find("rewrite rejected")
	require.NotNil(t, rec)
	assert.Equal(t, "UnsupportedStatement", rec["kind"])
	assert.Equal(t, "Type drop not allowed", rec["error"])
	assert.NotEmpty(t, rec["rewrite_id"])
}

func TestRewrite_Concurrent(t *testing.T) {
	svc := newService(t, testutil.NewFakeFetcher().Add("g1", polygon))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT * FROM t WHERE x = 1", Geostore: "g1"})
			if assert.NoError(t, err) {
				results[i] = res.SQL
			}
		}(i)
	}
	wg.Wait()

	for _, sql := range results {
		assert.Equal(t, "SELECT * FROM t WHERE "+spatial+" AND x = 1", sql)
	}
}

func TestResult_JSON(t *testing.T) {
	svc := newService(t, nil)
	res, err := svc.Rewrite(context.Background(), rewrite.Request{SQL: "SELECT a FROM t"})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sql": "SELECT a FROM t",
		"parsed": {
			"type": "select",
			"select": [{"value": {"type": "literal", "value": "a"}, "alias": null}],
			"from": [{"type": "table", "value": "t", "alias": null}]
		}
	}`, string(data))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "JoinsNotAllowed", rewrite.KindJoinsNotAllowed.String())
	assert.Equal(t, "Unknown", rewrite.Kind(0).String())

	kind, ok := rewrite.KindOf(&rewrite.Error{Kind: rewrite.KindMalformedQuery})
	assert.True(t, ok)
	assert.Equal(t, rewrite.KindMalformedQuery, kind)

	_, ok = rewrite.KindOf(errors.New("plain"))
	assert.False(t, ok)
}
