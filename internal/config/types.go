// Package config loads geosql configuration from defaults, a YAML file,
// GEOSQL_ environment variables and command-line flags.
package config

import "time"

// Config holds all geosql settings.
type Config struct {
	LogLevel  string         `koanf:"log_level"`
	LogFormat string         `koanf:"log_format"`
	Geostore  GeostoreConfig `koanf:"geostore"`
	Server    ServerConfig   `koanf:"server"`
	Target    TargetConfig   `koanf:"target"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// GeostoreConfig configures the geostore service client.
type GeostoreConfig struct {
	URL        string        `koanf:"url"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`
	Backoff    time.Duration `koanf:"backoff"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// TargetConfig is the PostGIS database rewritten queries run against.
type TargetConfig struct {
	DSN string `koanf:"dsn"`
}

// Default configuration values.
const (
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultGeostoreTimeout   = 10 * time.Second
	DefaultGeostoreRetries   = 2
	DefaultGeostoreBackoff   = 200 * time.Millisecond
	DefaultServerAddr        = ":3000"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Geostore: GeostoreConfig{
			Timeout:    DefaultGeostoreTimeout,
			MaxRetries: DefaultGeostoreRetries,
			Backoff:    DefaultGeostoreBackoff,
		},
		Server: ServerConfig{
			Addr:              DefaultServerAddr,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
	}
}
