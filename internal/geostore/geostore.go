// Package geostore fetches stored geometries from the geostore service.
package geostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the geostore does not exist or carries no
// usable geometry.
var ErrNotFound = errors.New("geostore not found")

// TransportError is any fetch failure other than not-found: connection
// errors, non-2xx responses and undecodable bodies.
type TransportError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch geostore: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch geostore: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the request could succeed.
func (e *TransportError) Temporary() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// Fetcher resolves a geostore id to its stored geometry.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Geostore, error)
}

// Geostore is a stored GeoJSON feature collection.
type Geostore struct {
	ID      string            `json:"id"`
	Hash    string            `json:"hash,omitempty"`
	GeoJSON FeatureCollection `json:"geojson"`
	Bbox    []float64         `json:"bbox,omitempty"`
	AreaHa  float64           `json:"areaHa,omitempty"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON Feature. Geometry is kept verbatim.
type Feature struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Geometry returns the geometry of the first feature, or nil when there is
// none.
func (g *Geostore) Geometry() json.RawMessage {
	if g == nil || len(g.GeoJSON.Features) == 0 {
		return nil
	}
	geom := bytes.TrimSpace(g.GeoJSON.Features[0].Geometry)
	if len(geom) == 0 || bytes.Equal(geom, []byte("null")) {
		return nil
	}
	return geom
}

// document is the JSON:API envelope the service responds with.
type document struct {
	Data struct {
		ID         string   `json:"id"`
		Type       string   `json:"type"`
		Attributes Geostore `json:"attributes"`
	} `json:"data"`
}

func (d *document) geostore() *Geostore {
	gs := d.Data.Attributes
	if gs.ID == "" {
		gs.ID = d.Data.ID
	}
	return &gs
}
