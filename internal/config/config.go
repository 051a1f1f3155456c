// Package config provides centralized configuration for the service.
// Settings are read from environment variables with defaults and validated
// on startup so misconfiguration fails fast.
package config

import (
	"fmt"
	"time"
)

// Backend selects the persistence collaborator implementation.
const (
	BackendAPI      = "api"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Import  ImportConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response.
	// Imports run synchronously, so this must cover a whole job (default: 5m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// StoreConfig selects and configures the persistence collaborator.
type StoreConfig struct {
	// Backend is "api" for the hosted data service or "postgres" for a
	// self-hosted database (default: api)
	Backend string `env:"STORE_BACKEND" default:"api"`

	// APIBaseURL is the hosted data service base URL (required for api)
	APIBaseURL string `env:"CRM_API_BASE_URL"`

	// APIKey is the bearer token for the hosted data service
	APIKey string `env:"CRM_API_KEY"`

	// APITimeout bounds a single create call (default: 15s)
	APITimeout time.Duration `env:"CRM_API_TIMEOUT" default:"15s"`

	// DatabaseURL is the PostgreSQL connection string (required for postgres)
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the pgx pool size (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	// MaxFileSize is the maximum upload size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of imports running at once
	// (default: 5)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for an import slot (default: 10s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"10s"`

	// CommitWidth is the Commit Executor's concurrency window; 1 commits
	// rows strictly one at a time (default: 1)
	CommitWidth int `env:"IMPORT_COMMIT_WIDTH" default:"1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is "text" or "json" (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
