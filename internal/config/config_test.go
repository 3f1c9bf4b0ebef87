package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "geosql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("geostore-url", "", "")
	flags.Duration("geostore-timeout", 0, "")
	flags.Int("geostore-max-retries", 0, "")
	flags.String("addr", "", "")
	flags.String("dsn", "", "")
	flags.Bool("unrelated", false, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultGeostoreTimeout, cfg.Geostore.Timeout)
	assert.Equal(t, DefaultGeostoreRetries, cfg.Geostore.MaxRetries)
	assert.Equal(t, DefaultGeostoreBackoff, cfg.Geostore.Backoff)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultReadHeaderTimeout, cfg.Server.ReadHeaderTimeout)
	assert.Empty(t, cfg.Geostore.URL)
	assert.Empty(t, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, `
log_level: debug
geostore:
  url: http://file-geostore/v1
  timeout: 3s
  max_retries: 4
server:
  addr: ":8080"
target:
  dsn: postgres://file@localhost/db
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://file-geostore/v1", cfg.Geostore.URL)
		assert.Equal(t, 3*time.Second, cfg.Geostore.Timeout)
		assert.Equal(t, 4, cfg.Geostore.MaxRetries)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "geosql.yaml", filepath.Base(cfg.File))
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("GEOSQL_GEOSTORE__URL", "http://env-geostore/v1")
		t.Setenv("GEOSQL_GEOSTORE__MAX_RETRIES", "1")
		t.Setenv("GEOSQL_LOG_LEVEL", "warn")

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://env-geostore/v1", cfg.Geostore.URL)
		assert.Equal(t, 1, cfg.Geostore.MaxRetries)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.Server.Addr)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("GEOSQL_SERVER__ADDR", ":9000")
		t.Setenv("GEOSQL_TARGET__DSN", "postgres://env@localhost/db")

		flags := testFlags()
		require.NoError(t, flags.Parse([]string{"--addr", ":9999", "--geostore-timeout", "7s"}))

		cfg, err := Load("", flags)
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Server.Addr)
		assert.Equal(t, 7*time.Second, cfg.Geostore.Timeout)
		assert.Equal(t, "postgres://env@localhost/db", cfg.Target.DSN, "unset flags must not override")
	})
}

func TestLoad_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "server:\n  addr: \":7000\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	other := t.TempDir()
	path := filepath.Join(other, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: json\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, path, cfg.File)

	_, err = Load(filepath.Join(other, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_ExpandsDSN(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PGPASSWORD_TEST", "s3cret")
	t.Setenv("GEOSQL_TARGET__DSN", "postgres://geo:${PGPASSWORD_TEST}@db/gis?sslmode=${UNSET_VAR_FOR_TEST}")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://geo:s3cret@db/gis?sslmode=${UNSET_VAR_FOR_TEST}", cfg.Target.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEOSQL_LOG_LEVEL", "loud")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https geostore", mutate: func(c *Config) { c.Geostore.URL = "https://api.example.com/v1" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, errSubstr: "invalid log_format"},
		{name: "bad url scheme", mutate: func(c *Config) { c.Geostore.URL = "ftp://x" }, errSubstr: "invalid geostore.url"},
		{name: "url without host", mutate: func(c *Config) { c.Geostore.URL = "http://" }, errSubstr: "invalid geostore.url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Geostore.Timeout = 0 }, errSubstr: "geostore.timeout"},
		{name: "negative retries", mutate: func(c *Config) { c.Geostore.MaxRetries = -1 }, errSubstr: "max_retries"},
		{name: "no addr", mutate: func(c *Config) { c.Server.Addr = "" }, errSubstr: "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestContext(t *testing.T) {
	ctx := t.Context()
	assert.Equal(t, Defaults(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := Defaults()
	cfg.Server.Addr = ":1234"
	logger := cfg.NewLogger(&bytes.Buffer{})

	ctx = WithContext(ctx, cfg, logger)
	assert.Same(t, cfg, FromContext(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}
