package guard

import (
	"bytes"
	"encoding/json"

	"github.com/leapstack-labs/geosql/pkg/core"
)

const (
	// SRID is the spatial reference the geostore geometry is declared in.
	SRID = "4326"
	// GeomColumn is the geometry column every filtered table carries.
	GeomColumn = "the_geom"
)

// SpatialPredicate builds
//
//	ST_INTERSECTS(ST_SetSRID(ST_GeomFromGeoJSON('<geom>'), 4326), the_geom)
//
// with geom embedded as compact JSON. Input that is not valid JSON is
// embedded unchanged.
func SpatialPredicate(geom json.RawMessage) *core.FuncCall {
	var buf bytes.Buffer
	text := string(geom)
	if err := json.Compact(&buf, geom); err == nil {
		text = buf.String()
	}

	return core.NewFunc("ST_INTERSECTS",
		core.NewFunc("ST_SetSRID",
			core.NewFunc("ST_GeomFromGeoJSON", core.NewString(text)),
			core.NewNumber(SRID),
		),
		core.NewColumn(GeomColumn),
	)
}

// InjectSpatialFilter restricts stmt to rows intersecting geom. The spatial
// predicate always becomes the left operand of an AND with any existing
// WHERE predicate, or the whole WHERE when there is none.
func InjectSpatialFilter(stmt *core.Statement, geom json.RawMessage) {
	if stmt == nil {
		return
	}

	spatial := SpatialPredicate(geom)
	if stmt.Where == nil {
		stmt.Where = spatial
		return
	}
	stmt.Where = core.NewAnd(spatial, stmt.Where)
}
