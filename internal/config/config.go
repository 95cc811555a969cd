// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/printmg/pkg/logging"
	"github.com/JaimeStill/printmg/pkg/pagination"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvPrintEnv specifies the environment name for configuration overlays.
	EnvPrintEnv = "PRINTMG_ENV"
)

var paginationEnv = &pagination.Env{
	DefaultPageSize: "PRINTMG_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PRINTMG_PAGINATION_MAX_PAGE_SIZE",
}

// Config is the root configuration shared by printctl and the sandbox.
type Config struct {
	API        APIConfig         `toml:"api"`
	Session    SessionConfig     `toml:"session"`
	Upload     UploadConfig      `toml:"upload"`
	Polling    PollingConfig     `toml:"polling"`
	Locale     LocaleConfig      `toml:"locale"`
	Google     GoogleConfig      `toml:"google"`
	Sandbox    SandboxConfig     `toml:"sandbox"`
	Logging    logging.Config    `toml:"logging"`
	Pagination pagination.Config `toml:"pagination"`
}

// Load reads the configuration file at path and applies any environment-specific
// overlay found next to it. An empty path means BaseConfigFile, which may be absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = BaseConfigFile
	}

	cfg, err := load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates every section.
func (c *Config) Finalize() error {
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Session.Finalize(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Upload.Finalize(); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := c.Polling.Finalize(); err != nil {
		return fmt.Errorf("polling: %w", err)
	}
	if err := c.Locale.Finalize(); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if err := c.Google.Finalize(); err != nil {
		return fmt.Errorf("google: %w", err)
	}
	if err := c.Sandbox.Finalize(); err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	if err := c.Logging.Finalize(logging.DefaultEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.API.Merge(&overlay.API)
	c.Session.Merge(&overlay.Session)
	c.Upload.Merge(&overlay.Upload)
	c.Polling.Merge(&overlay.Polling)
	c.Locale.Merge(&overlay.Locale)
	c.Google.Merge(&overlay.Google)
	c.Sandbox.Merge(&overlay.Sandbox)
	c.Logging.Merge(&overlay.Logging)
	c.Pagination.Merge(&overlay.Pagination)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPrintEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
