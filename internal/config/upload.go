package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const EnvUploadMaxSize = "PRINTMG_UPLOAD_MAX_SIZE"

// UploadConfig bounds the files attached to an order.
type UploadConfig struct {
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *UploadConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the upload configuration.
func (c *UploadConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *UploadConfig) Merge(overlay *UploadConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *UploadConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *UploadConfig) loadEnv() {
	if v := os.Getenv(EnvUploadMaxSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *UploadConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size
	return nil
}
