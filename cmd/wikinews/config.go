package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
	wikihttp "github.com/fwojciec/wikinews/http"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidDriver   = errors.New("store.driver must be 'sqlite' or 'fs'")
	ErrMissingAPIURL   = errors.New("source.api_url is required")
	ErrMissingPage     = errors.New("source.page is required")
	ErrInvalidTimeout  = errors.New("source.timeout must be positive")
	ErrInvalidRate     = errors.New("source.rate must be non-negative")
	ErrInvalidLogLevel = errors.New("log.level must be one of: debug, info, warn, error")
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverFS     = "fs"
)

// Config represents the optional YAML configuration file.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Source SourceConfig `yaml:"source"`
	Log    LogConfig    `yaml:"log"`

	// Format is the default template for the show command.
	Format string `yaml:"format"`
}

// StoreConfig selects where snapshots are kept.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// SourceConfig configures the MediaWiki content source.
type SourceConfig struct {
	APIURL    string        `yaml:"api_url"`
	Page      string        `yaml:"page"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Rate      float64       `yaml:"rate"`
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Driver: DriverSQLite},
		Source: SourceConfig{
			APIURL:    wikihttp.DefaultAPIURL,
			Page:      wikinews.PortalPage,
			UserAgent: wikihttp.DefaultUserAgent,
			Timeout:   wikihttp.DefaultTimeout,
			Rate:      wikihttp.DefaultRate,
		},
		Log:    LogConfig{Level: "warn"},
		Format: wikinews.DefaultFormat,
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Store.Driver != DriverSQLite && c.Store.Driver != DriverFS {
		return ErrInvalidDriver
	}

	if c.Source.APIURL == "" {
		return ErrMissingAPIURL
	}

	if c.Source.Page == "" {
		return ErrMissingPage
	}

	if c.Source.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Source.Rate < 0 {
		return ErrInvalidRate
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return ErrInvalidLogLevel
	}

	return nil
}

// StorePath returns the configured store path, or the driver's default
// location under ~/.wikinews.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	name := "wikinews.db"
	if c.Store.Driver == DriverFS {
		name = "snapshots"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".wikinews")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
