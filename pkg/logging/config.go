package logging

import (
	"os"
	"strings"
)

// Env names the environment variables that override a Config.
type Env struct {
	Level  string
	Format string
}

// DefaultEnv is read when Finalize receives a nil Env.
var DefaultEnv = &Env{
	Level:  "PRINTMG_LOG_LEVEL",
	Format: "PRINTMG_LOG_FORMAT",
}

// Config is the [logging] section shared by printctl and the sandbox.
// Values are matched without regard to case or surrounding space, so
// PRINTMG_LOG_LEVEL=DEBUG is accepted.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize fills unset fields, applies environment overrides from env (or
// DefaultEnv) and rejects unknown levels and formats.
func (c *Config) Finalize(env *Env) error {
	if env == nil {
		env = DefaultEnv
	}
	c.loadEnv(env)
	c.normalize()
	c.loadDefaults()
	return c.validate()
}

// Merge takes the overlay's level and format when they are set.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// DefaultLevel sets the level used when neither the file nor the environment
// chose one. It must run before Finalize.
func (c *Config) DefaultLevel(l Level) {
	if c.Level == "" && os.Getenv(DefaultEnv.Level) == "" {
		c.Level = l
	}
}

func (c *Config) normalize() {
	c.Level = Level(strings.ToLower(strings.TrimSpace(string(c.Level))))
	c.Format = Format(strings.ToLower(strings.TrimSpace(string(c.Format))))
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(env.Format); v != "" {
		c.Format = Format(v)
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}
