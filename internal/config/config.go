package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the journal service.
// Environment variables are parsed from the JOURNAL_ prefix,
// e.g. JOURNAL_HTTP_PORT, JOURNAL_HISTORY_SIZE.
type Config struct {
	// Debug enables diagnostic dumps of validated entries.
	Debug bool `envconfig:"DEBUG" default:"false"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// HistorySize is the fixed capacity of both journal logs.
	HistorySize int `envconfig:"HISTORY_SIZE" default:"100"`

	// SigningServiceURL is the base URL of the resource signing service.
	SigningServiceURL string `envconfig:"SIGNING_SERVICE_URL" default:"http://localhost:9400"`

	// ResourceDir is where downloaded resource files are written.
	ResourceDir string `envconfig:"RESOURCE_DIR" default:"resources"`

	// HTTPTimeoutSeconds bounds signing and download requests.
	HTTPTimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"30"`
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	if c.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive, got %d", c.HistorySize)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http timeout must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}

// New creates a new Config by parsing JOURNAL_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("JOURNAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Bool("debug", cfg.Debug).
		Int("http_port", cfg.HTTPPort).
		Int("history_size", cfg.HistorySize).
		Str("signing_service_url", cfg.SigningServiceURL).
		Str("resource_dir", cfg.ResourceDir).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests.
func NewForTesting() *Config {
	return &Config{
		Debug:              true,
		HTTPPort:           8080,
		HistorySize:        10,
		SigningServiceURL:  "http://localhost:9400",
		ResourceDir:        "resources",
		HTTPTimeoutSeconds: 5,
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
