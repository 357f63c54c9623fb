// Package config provides configuration loading and validation for the
// job-coach service. Values come from the environment (optionally via a
// .env file loaded at startup) and fall back to defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration of the service.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// APIKey is the OpenAI API key. Required.
	APIKey string
	// DataDir is the per-company storage area for posting text, images
	// and OCR output.
	DataDir string
	// IdentityFile is the path of the persisted assistant id record.
	IdentityFile string
	// Environment is the deployment environment ("development" or
	// "production"). Controls the Secure attribute on session cookies.
	Environment string
	// PollInterval is the delay between assistant run status polls.
	PollInterval time.Duration
	// PollTimeout bounds how long one turn waits for its run to finish.
	PollTimeout time.Duration
	// UseBrowser enables the headless-browser fallback when a posting
	// detail page renders its content via JavaScript.
	UseBrowser bool
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8000,
		APIKey:       os.Getenv("OPENAI_API_KEY"),
		DataDir:      "company",
		IdentityFile: ".assistant.id",
		Environment:  "development",
		PollInterval: time.Second,
		PollTimeout:  2 * time.Minute,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ASSISTANT_ID_FILE"); v != "" {
		cfg.IdentityFile = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("RUN_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_POLL_INTERVAL %q: %w", v, err)
		}
		cfg.PollInterval = d
	}
	if v := os.Getenv("RUN_POLL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_POLL_TIMEOUT %q: %w", v, err)
		}
		cfg.PollTimeout = d
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		cfg.UseBrowser = v == "1" || v == "true"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.PollTimeout < c.PollInterval {
		return fmt.Errorf("poll timeout must be at least the poll interval")
	}
	return nil
}

// Production reports whether the service runs in a production deployment.
func (c *Config) Production() bool {
	return c.Environment == "production"
}
