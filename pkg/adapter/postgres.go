package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Postgres is the adapter for PostGIS-enabled PostgreSQL targets.
type Postgres struct {
	BaseSQLAdapter
}

var _ Adapter = (*Postgres)(nil)

func init() {
	factory := func(logger *slog.Logger) Adapter { return NewPostgres(logger) }
	Register("postgres", factory)
	Register("postgresql", factory)
}

// NewPostgres creates a Postgres adapter. If logger is nil, a discard
// logger is used.
func NewPostgres(logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Postgres{BaseSQLAdapter: BaseSQLAdapter{Logger: logger}}
}

// Connect parses the DSN with pgx and opens a database/sql pool over it.
func (p *Postgres) Connect(ctx context.Context, cfg Config) error {
	if cfg.DSN == "" {
		return fmt.Errorf("target dsn is required")
	}

	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}

	p.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host), slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	p.DB = db
	return nil
}
