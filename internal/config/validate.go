package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	if c.Geostore.URL != "" {
		u, err := url.Parse(c.Geostore.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid geostore.url %q: must be an http(s) URL", c.Geostore.URL)
		}
	}
	if c.Geostore.Timeout <= 0 {
		return fmt.Errorf("geostore.timeout must be positive")
	}
	if c.Geostore.MaxRetries < 0 {
		return fmt.Errorf("geostore.max_retries must not be negative")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// ParseLevel converts a log_level value into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", s)
	}
}
