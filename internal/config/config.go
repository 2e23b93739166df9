// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultDatabaseURL     = "postgres://localhost/the_acme_icecream_db"
	DefaultPort            = 3000
	DefaultShutdownTimeout = 10 * time.Second
)

// Driver names the storage backend selected by DATABASE_URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config holds every externally supplied setting.
type Config struct {
	DatabaseURL string
	Port        int
	LogLevel    string
	LogFormat   string

	// RequireSchema makes a failed table initialization fatal at startup.
	// When false the server starts anyway and reports not-ready on /healthz.
	RequireSchema bool

	ShutdownTimeout time.Duration
}

// Load reads a .env file from the working directory if present, then the
// process environment. Unset values fall back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", DefaultDatabaseURL),
		Port:            DefaultPort,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("REQUIRE_SCHEMA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUIRE_SCHEMA %q: %w", v, err)
		}
		cfg.RequireSchema = b
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.ShutdownTimeout = d
	}

	if _, _, err := cfg.Database(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Database resolves DATABASE_URL into a driver and the DSN that driver
// expects. postgres:// and postgresql:// URLs are passed through; sqlite://
// and file: prefixes are stripped to a filesystem path.
func (c *Config) Database() (Driver, string, error) {
	url := c.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "file:"):
		return DriverSQLite, strings.TrimPrefix(url, "file:"), nil
	}
	return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", url)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
