package config

import (
	"fmt"
	"os"
	"slices"
)

const (
	EnvLocaleDefault  = "PRINTMG_LOCALE"
	EnvGoogleClientID = "PRINTMG_GOOGLE_CLIENT_ID"
)

// Locales lists the supported interface languages.
var Locales = []string{"fr", "en", "mlg"}

// LocaleConfig selects the language used when no preference is stored.
type LocaleConfig struct {
	Default string `toml:"default"`
}

// Finalize applies defaults, loads environment overrides, and validates the locale configuration.
func (c *LocaleConfig) Finalize() error {
	if c.Default == "" {
		c.Default = "fr"
	}
	if v := os.Getenv(EnvLocaleDefault); v != "" {
		c.Default = v
	}
	if !slices.Contains(Locales, c.Default) {
		return fmt.Errorf("unsupported default locale %q (must be one of %v)", c.Default, Locales)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *LocaleConfig) Merge(overlay *LocaleConfig) {
	if overlay.Default != "" {
		c.Default = overlay.Default
	}
}

// GoogleConfig holds the OAuth client used for social login.
// An empty ClientID disables Google login.
type GoogleConfig struct {
	ClientID string `toml:"client_id"`
}

// Finalize loads environment overrides.
func (c *GoogleConfig) Finalize() error {
	if v := os.Getenv(EnvGoogleClientID); v != "" {
		c.ClientID = v
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GoogleConfig) Merge(overlay *GoogleConfig) {
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
}
