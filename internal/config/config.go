package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the relay service. Values are read from
// the environment with the RELAY_ prefix (e.g. RELAY_ADDR, RELAY_LOG_FORMAT).
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `envconfig:"ADDR" default:":8080"`

	// AllowedOrigins is the list of origin patterns accepted during the
	// WebSocket handshake. Empty means same-origin only.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	// SendBufferSize is the per-connection outbound queue length. When a
	// client's queue is full, further events for it are dropped.
	SendBufferSize int `envconfig:"SEND_BUFFER_SIZE" default:"256"`

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// New loads configuration from a .env file (if present) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet, so the standard logger is fine here.
		log.Println("No .env file found, relying on environment variables")
	}

	var cfg Config
	if err := envconfig.Process("RELAY", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if cfg.SendBufferSize < 1 {
		return nil, fmt.Errorf("RELAY_SEND_BUFFER_SIZE must be positive, got %d", cfg.SendBufferSize)
	}
	return &cfg, nil
}
