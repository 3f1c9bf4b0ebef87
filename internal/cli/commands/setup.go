package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geosql/internal/config"
	"github.com/leapstack-labs/geosql/internal/geostore"
	"github.com/leapstack-labs/geosql/internal/rewrite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext reads the config and logger stored on the command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    config.FromContext(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// NewService builds the rewrite service. Without a configured geostore URL
// the service still rewrites, but rejects requests that name a geostore.
func (c *CommandContext) NewService() (*rewrite.Service, error) {
	var fetcher geostore.Fetcher
	if c.Cfg.Geostore.URL != "" {
		client, err := geostore.NewClient(geostore.ClientConfig{
			BaseURL:    c.Cfg.Geostore.URL,
			Timeout:    c.Cfg.Geostore.Timeout,
			MaxRetries: c.Cfg.Geostore.MaxRetries,
			Backoff:    c.Cfg.Geostore.Backoff,
			Logger:     c.Logger,
		})
		if err != nil {
			return nil, err
		}
		fetcher = client
	}
	return rewrite.New(rewrite.Config{Fetcher: fetcher, Logger: c.Logger}), nil
}

// readSQL returns the SQL given as arguments, or stdin when there are none
// or the only argument is "-".
func readSQL(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read SQL from stdin: %w", err)
	}
	sql := strings.TrimSpace(string(data))
	if sql == "" {
		return "", fmt.Errorf("no SQL given")
	}
	return sql, nil
}
