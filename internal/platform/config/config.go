// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package config maps environment variables onto the runtime configuration
struct via caarlos0/env tags.

Load runs once at startup and is the only place configuration enters the
process; everything downstream receives the parsed *Config (or the slice of
it they need) through constructors. There is no global config state.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Treadstock API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing. The defaults mirror a fresh development install and MUST
	// be overridden for any real deployment.
	SecretKey      string        `env:"SECRET_KEY"       envDefault:"change-me-in-production"`
	TokenAlgorithm string        `env:"TOKEN_ALGORITHM"  envDefault:"HS256"`
	TokenLifetime  time.Duration `env:"TOKEN_LIFETIME"   envDefault:"30m"`

	// Google Sheets mirror (optional; sync endpoints are disabled when unset)
	SheetsCredentialsJSON string `env:"SHEETS_CREDENTIALS_JSON"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`

	// Cross-Origin Resource Sharing
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:4200"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing or empty signing key is a fatal startup condition, never a
// per-request error, so it is rejected here before any component is built.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails when a field tagged 'required' is unset.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("config: SECRET_KEY must not be empty")
	}

	if cfg.TokenLifetime <= 0 {
		return nil, fmt.Errorf("config: TOKEN_LIFETIME must be positive, got %s", cfg.TokenLifetime)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigin returns the browser origin permitted by CORS in production.
func (c *Config) AllowedOrigin() string {
	return c.FrontendURL
}

// SheetsEnabled reports whether the spreadsheet mirror is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsCredentialsJSON != "" && c.SheetsSpreadsheetID != ""
}
