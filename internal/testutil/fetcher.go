package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/leapstack-labs/geosql/internal/geostore"
)

// FakeFetcher is an in-memory geostore.Fetcher.
type FakeFetcher struct {
	// Err, when set, is returned by every Fetch.
	Err error
	// Block makes Fetch wait for ctx to be cancelled.
	Block bool
	// OnFetch runs before a successful Fetch returns.
	OnFetch func(id string)

	mu     sync.Mutex
	stores map[string]*geostore.Geostore
	calls  []string
}

var _ geostore.Fetcher = (*FakeFetcher)(nil)

// NewFakeFetcher returns an empty FakeFetcher.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{stores: make(map[string]*geostore.Geostore)}
}

// Add registers a geostore whose single feature has the given geometry.
func (f *FakeFetcher) Add(id, geometry string) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores[id] = &geostore.Geostore{
		ID: id,
		GeoJSON: geostore.FeatureCollection{
			Type:     "FeatureCollection",
			Features: []geostore.Feature{{Type: "Feature", Geometry: json.RawMessage(geometry)}},
		},
	}
	return f
}

// Fetch implements geostore.Fetcher.
func (f *FakeFetcher) Fetch(ctx context.Context, id string) (*geostore.Geostore, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	gs, ok := f.stores[id]
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return nil, &geostore.TransportError{Err: ctx.Err()}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if !ok {
		return nil, geostore.ErrNotFound
	}
	if f.OnFetch != nil {
		f.OnFetch(id)
	}
	return gs, nil
}

// Calls returns the ids fetched so far, in order.
func (f *FakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
