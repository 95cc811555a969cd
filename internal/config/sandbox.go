package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/printmg/pkg/middleware"
)

const (
	EnvSandboxHost        = "PRINTMG_SANDBOX_HOST"
	EnvSandboxPort        = "PRINTMG_SANDBOX_PORT"
	EnvSandboxJWTSecret   = "PRINTMG_SANDBOX_JWT_SECRET"
	EnvSandboxStoragePath = "PRINTMG_SANDBOX_STORAGE_PATH"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PRINTMG_CORS_ENABLED",
	Origins:          "PRINTMG_CORS_ORIGINS",
	AllowedMethods:   "PRINTMG_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PRINTMG_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PRINTMG_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PRINTMG_CORS_MAX_AGE",
}

// SandboxConfig configures the local stand-in backend.
type SandboxConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTL        string `toml:"token_ttl"`
	StoragePath     string `toml:"storage_path"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	CORS middleware.CORSConfig `toml:"cors"`
}

// Addr returns the host:port listen address.
func (c *SandboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TokenTTLDuration returns the lifetime of issued access tokens.
func (c *SandboxConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// ReadTimeoutDuration parses and returns the read timeout.
func (c *SandboxConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration parses and returns the write timeout.
func (c *SandboxConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// ShutdownTimeoutDuration parses and returns the graceful shutdown timeout.
func (c *SandboxConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the sandbox configuration.
func (c *SandboxConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SandboxConfig) Merge(overlay *SandboxConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.JWTSecret != "" {
		c.JWTSecret = overlay.JWTSecret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.StoragePath != "" {
		c.StoragePath = overlay.StoragePath
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *SandboxConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "sandbox-secret"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "24h"
	}
	if c.StoragePath == "" {
		c.StoragePath = ".sandbox/uploads"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "1m"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "15m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
}

func (c *SandboxConfig) loadEnv() {
	if v := os.Getenv(EnvSandboxHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvSandboxPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvSandboxJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvSandboxStoragePath); v != "" {
		c.StoragePath = v
	}
}

func (c *SandboxConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if len(c.JWTSecret) < 8 {
		return fmt.Errorf("jwt_secret must be at least 8 characters")
	}
	for name, v := range map[string]string{
		"token_ttl":        c.TokenTTL,
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}
