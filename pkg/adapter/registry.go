package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory under a DSN scheme.
// Called by adapter implementations in their init() functions.
func Register(scheme string, factory func(*slog.Logger) Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[scheme] = factory
}

// Get retrieves an adapter factory by scheme.
func Get(scheme string) (func(*slog.Logger) Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[scheme]
	return f, ok
}

// Scheme returns the scheme of a DSN. Keyword/value DSNs
// ("host=... dbname=...") have no scheme and are treated as postgres.
func Scheme(dsn string) string {
	if i := strings.Index(dsn, "://"); i > 0 {
		return strings.ToLower(dsn[:i])
	}
	return "postgres"
}

// NewAdapter creates an adapter for the database named by dsn.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(dsn string, logger *slog.Logger) (Adapter, error) {
	if dsn == "" {
		return nil, fmt.Errorf("target dsn is required")
	}

	scheme := Scheme(dsn)
	factory, ok := Get(scheme)
	if !ok {
		return nil, &UnknownAdapterError{
			Scheme:    scheme,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns all registered schemes (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a scheme has an adapter.
func IsRegistered(scheme string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[scheme]
	return ok
}

// UnknownAdapterError is returned when no adapter serves a DSN scheme.
type UnknownAdapterError struct {
	Scheme    string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unsupported database %q\nAvailable adapters: %v\nHint: Check target.dsn in geosql.yaml", e.Scheme, e.Available)
}
