package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	EnvAPIBaseURL = "PRINTMG_API_BASE_URL"
	EnvAPITimeout = "PRINTMG_API_TIMEOUT"
)

// APIConfig locates the print backend.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration parses and returns the request timeout.
func (c *APIConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the API configuration.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *APIConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		c.Timeout = v
	}
}

func (c *APIConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
