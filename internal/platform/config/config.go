// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (catalogue source, library store) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/yomira-reader/pkg/query"
)

// # Backend Identifiers

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomira Reader API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalogue source: "memory" (seed file) or "postgres".
	CatalogBackend  string `env:"CATALOG_BACKEND"   envDefault:"memory"`
	CatalogSeedPath string `env:"CATALOG_SEED_PATH" envDefault:"./data/seed/galleries.json"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Preference/progress store: "memory", "redis" or "sqlite".
	LibraryBackend string `env:"LIBRARY_BACKEND" envDefault:"sqlite"`
	RedisURL       string `env:"REDIS_URL"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./data/library.db"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Reader tuning
	Reader ReaderConfig `envPrefix:"READER_"`

	// ProgressHistoryCap bounds the recently-read list.
	ProgressHistoryCap int `env:"PROGRESS_HISTORY_CAP" envDefault:"20"`
}

// ReaderConfig holds the view-transform bounds and timers of a reader session.
type ReaderConfig struct {
	ZoomMin        float64       `env:"ZOOM_MIN"        envDefault:"0.5"`
	ZoomMax        float64       `env:"ZOOM_MAX"        envDefault:"3.0"`
	ZoomStep       float64       `env:"ZOOM_STEP"       envDefault:"0.25"`
	BrightnessMin  int           `env:"BRIGHTNESS_MIN"  envDefault:"20"`
	BrightnessMax  int           `env:"BRIGHTNESS_MAX"  envDefault:"150"`
	BrightnessStep int           `env:"BRIGHTNESS_STEP" envDefault:"10"`
	AutoHideDelay  time.Duration `env:"AUTO_HIDE_DELAY" envDefault:"3s"`
	SessionTTL     time.Duration `env:"SESSION_TTL"     envDefault:"30m"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports configuration combinations that cannot start a server.
func (c *Config) Validate() error {
	var errs []error

	switch c.CatalogBackend {
	case BackendMemory:
		if c.CatalogSeedPath == "" {
			errs = append(errs, errors.New("CATALOG_SEED_PATH is required for the memory catalog"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres catalog"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_BACKEND %q", c.CatalogBackend))
	}

	switch c.LibraryBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis library store"))
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite library store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LIBRARY_BACKEND %q", c.LibraryBackend))
	}

	r := c.Reader
	if r.ZoomMin <= 0 || r.ZoomMin > 1 || r.ZoomMax < 1 || r.ZoomStep <= 0 {
		errs = append(errs, errors.New("reader zoom bounds must satisfy 0 < min <= 1 <= max and step > 0"))
	}
	if r.BrightnessMin < 0 || r.BrightnessMin > r.BrightnessMax || r.BrightnessStep <= 0 {
		errs = append(errs, errors.New("reader brightness bounds must satisfy 0 <= min <= max and step > 0"))
	}
	if r.AutoHideDelay <= 0 || r.SessionTTL <= 0 {
		errs = append(errs, errors.New("reader timers must be positive"))
	}
	if c.ProgressHistoryCap < 1 {
		errs = append(errs, errors.New("PROGRESS_HISTORY_CAP must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a list.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
