// Package rewrite turns client SQL into a guarded statement restricted to a
// geostore's geometry.
package rewrite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/geosql/internal/geostore"
	"github.com/leapstack-labs/geosql/internal/guard"
	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/format"
	"github.com/leapstack-labs/geosql/pkg/parser"
)

var errNoFetcher = errors.New("no geostore fetcher configured")

// Request is one rewrite input. Geostore is optional.
type Request struct {
	SQL      string `json:"sql"`
	Geostore string `json:"geostore,omitempty"`
}

// Result is a successful rewrite.
type Result struct {
	SQL    string          `json:"sql"`
	Parsed *core.Statement `json:"parsed"`
}

// Config holds the Service collaborators.
type Config struct {
	Fetcher geostore.Fetcher // may be nil when no request carries a geostore
	Logger  *slog.Logger
}

// Service runs the rewrite pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	fetcher geostore.Fetcher
	logger  *slog.Logger
}

// New creates a Service.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{fetcher: cfg.Fetcher, logger: logger}
}

// Rewrite parses req.SQL, checks it against the statement allowlist, injects
// the geostore's spatial filter when req.Geostore is set and renders the
// result. Failures are returned as *Error.
func (s *Service) Rewrite(ctx context.Context, req Request) (*Result, error) {
	logger := s.logger.With("rewrite_id", uuid.NewString())
	logger.Debug("rewriting query", "sql", req.SQL, "geostore", req.Geostore)

	stmt, err := parser.Parse(req.SQL)
	if err != nil {
		return nil, s.fail(logger, newError(KindMalformedQuery, msgMalformedQuery, err))
	}

	if err := guard.ValidateShape(stmt); err != nil {
		return nil, s.fail(logger, shapeError(err))
	}

	if req.Geostore != "" {
		geom, rerr := s.geometry(ctx, req.Geostore)
		if rerr != nil {
			logger.Error("obtaining geostore failed", "geostore", req.Geostore, "error", rerr.Unwrap())
			return nil, s.fail(logger, rerr)
		}
		logger.Debug("injecting spatial filter", "geostore", req.Geostore)
		guard.InjectSpatialFilter(stmt, geom)
	}

	if stmt.Kind == core.StmtSelect {
		if err := guard.ValidateWellFormed(stmt); err != nil {
			return nil, s.fail(logger, newError(KindMalformedQuery, msgMalformedQuery, err))
		}
	}

	out := format.Format(stmt)
	logger.Debug("query rewritten", "sql", out)
	return &Result{SQL: out, Parsed: stmt}, nil
}

// geometry fetches the geostore and maps fetch failures onto error kinds.
func (s *Service) geometry(ctx context.Context, id string) ([]byte, *Error) {
	if s.fetcher == nil {
		return nil, newError(KindGeostoreFetchError, msgGeostoreFetchError, errNoFetcher)
	}

	gs, err := s.fetcher.Fetch(ctx, id)
	if err == nil {
		// The caller may have gone away while the fetch completed.
		err = ctx.Err()
	}
	switch {
	case err == nil:
	case errors.Is(err, geostore.ErrNotFound):
		return nil, newError(KindGeostoreNotFound, msgGeostoreNotFound, err)
	default:
		return nil, newError(KindGeostoreFetchError, msgGeostoreFetchError, err)
	}

	geom := gs.Geometry()
	if geom == nil {
		return nil, newError(KindGeostoreNotFound, msgGeostoreNotFound, geostore.ErrNotFound)
	}
	return geom, nil
}

func (s *Service) fail(logger *slog.Logger, err *Error) *Error {
	logger.Debug("rewrite rejected", "kind", err.Kind.String(), "error", err.Message)
	return err
}

func shapeError(err error) *Error {
	switch {
	case errors.Is(err, guard.ErrUnsupportedStatement):
		return newError(KindUnsupportedStatement, err.Error(), err)
	case errors.Is(err, guard.ErrJoinsNotAllowed):
		return newError(KindJoinsNotAllowed, err.Error(), err)
	default:
		return newError(KindMalformedQuery, msgMalformedQuery, err)
	}
}
