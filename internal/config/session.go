package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	EnvSessionDurablePath = "PRINTMG_SESSION_DURABLE_PATH"
	EnvSessionScopedPath  = "PRINTMG_SESSION_SCOPED_PATH"
)

// SessionConfig locates the two session backends. The durable path keeps a
// "remember me" session and user preferences; the scoped path is cleared with
// the machine's temporary directory.
type SessionConfig struct {
	DurablePath string `toml:"durable_path"`
	ScopedPath  string `toml:"scoped_path"`
}

// Finalize applies defaults, loads environment overrides, and validates the session configuration.
func (c *SessionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SessionConfig) Merge(overlay *SessionConfig) {
	if overlay.DurablePath != "" {
		c.DurablePath = overlay.DurablePath
	}
	if overlay.ScopedPath != "" {
		c.ScopedPath = overlay.ScopedPath
	}
}

func (c *SessionConfig) loadDefaults() {
	if c.DurablePath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.DurablePath = filepath.Join(dir, "printmg")
		} else {
			c.DurablePath = ".printmg"
		}
	}
	if c.ScopedPath == "" {
		c.ScopedPath = filepath.Join(os.TempDir(), fmt.Sprintf("printmg-session-%d", os.Getuid()))
	}
}

func (c *SessionConfig) loadEnv() {
	if v := os.Getenv(EnvSessionDurablePath); v != "" {
		c.DurablePath = v
	}
	if v := os.Getenv(EnvSessionScopedPath); v != "" {
		c.ScopedPath = v
	}
}

func (c *SessionConfig) validate() error {
	if filepath.Clean(c.DurablePath) == filepath.Clean(c.ScopedPath) {
		return fmt.Errorf("durable_path and scoped_path must differ")
	}
	return nil
}
