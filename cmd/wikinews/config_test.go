package main_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/wikinews/cmd/wikinews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wikinews.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
store:
  driver: fs
  path: /tmp/snapshots
source:
  api_url: https://de.wikipedia.org/w/api.php
  page: "Portal:Aktuelle Ereignisse"
  timeout: 30s
  rate: 0.5
log:
  level: debug
format: "{date} {text}\n"
`)

		cfg, err := main.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, main.DriverFS, cfg.Store.Driver)
		assert.Equal(t, "/tmp/snapshots", cfg.StorePath())
		assert.Equal(t, "https://de.wikipedia.org/w/api.php", cfg.Source.APIURL)
		assert.Equal(t, "Portal:Aktuelle Ereignisse", cfg.Source.Page)
		assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
		assert.InDelta(t, 0.5, cfg.Source.Rate, 1e-9)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
		assert.Equal(t, "{date} {text}\n", cfg.Format)
	})

	t.Run("keeps defaults for missing keys", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(writeConfig(t, "log:\n  level: info\n"))
		require.NoError(t, err)

		defaults := main.DefaultConfig()
		assert.Equal(t, defaults.Source, cfg.Source)
		assert.Equal(t, defaults.Store.Driver, cfg.Store.Driver)
		assert.Equal(t, defaults.Format, cfg.Format)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	})

	t.Run("returns error for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "store: [unclosed"))

		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("returns validation errors", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "store:\n  driver: postgres\n"))

		assert.ErrorIs(t, err, main.ErrInvalidDriver)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*main.Config)
		want   error
	}{
		{"defaults are valid", func(*main.Config) {}, nil},
		{"unknown driver", func(c *main.Config) { c.Store.Driver = "redis" }, main.ErrInvalidDriver},
		{"missing API URL", func(c *main.Config) { c.Source.APIURL = "" }, main.ErrMissingAPIURL},
		{"missing page", func(c *main.Config) { c.Source.Page = "" }, main.ErrMissingPage},
		{"zero timeout", func(c *main.Config) { c.Source.Timeout = 0 }, main.ErrInvalidTimeout},
		{"negative rate", func(c *main.Config) { c.Source.Rate = -1 }, main.ErrInvalidRate},
		{"zero rate disables limiting", func(c *main.Config) { c.Source.Rate = 0 }, nil},
		{"unknown log level", func(c *main.Config) { c.Log.Level = "trace" }, main.ErrInvalidLogLevel},
		{"log level ignores case", func(c *main.Config) { c.Log.Level = "ERROR" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := main.DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
