// Package config loads the client's configuration from the environment.
// A .env file is honored when present (loaded by main via godotenv).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"invoicectl/internal/logger"
	"invoicectl/internal/session"
)

// Backend selection values for INVOICE_BACKEND.
const (
	BackendAPI   = "api"
	BackendLocal = "local"
)

// Config is the full runtime configuration.
type Config struct {
	// Backend selects where invoices live: "api" talks to the remote REST
	// backend, "local" keeps everything in a sqlite database on disk.
	Backend string

	// APIURL is the REST backend base path, e.g. http://localhost:8000/api/v1.
	APIURL string

	// DBPath is the sqlite database location used in local mode.
	DBPath string

	// SessionFile is where tokens and the user profile persist across runs.
	SessionFile string

	// PageSize is the listing window size.
	PageSize int

	// Logging configuration.
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	pageSize, err := strconv.Atoi(getEnv("INVOICE_PAGE_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("INVOICE_PAGE_SIZE must be a number: %w", err)
	}

	cfg := &Config{
		Backend:       getEnv("INVOICE_BACKEND", BackendAPI),
		APIURL:        getEnv("INVOICE_API_URL", "http://localhost:8000/api/v1"),
		DBPath:        getEnv("INVOICE_DB_PATH", defaultDBPath()),
		SessionFile:   getEnv("INVOICE_SESSION_FILE", session.DefaultPath()),
		PageSize:      pageSize,
		LogLevel:      getEnv("LOG_LEVEL", "warn"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Backend != BackendAPI && c.Backend != BackendLocal {
		return fmt.Errorf("INVOICE_BACKEND must be %q or %q, got %q", BackendAPI, BackendLocal, c.Backend)
	}
	if c.Backend == BackendAPI && c.APIURL == "" {
		return fmt.Errorf("INVOICE_API_URL is required when INVOICE_BACKEND=api")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("INVOICE_PAGE_SIZE must be positive")
	}
	return nil
}

// LoggerConfig maps the logging keys onto the logger package's config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "invoices.db"
	}
	return filepath.Join(home, ".invoicectl", "invoices.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
