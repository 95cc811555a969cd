package config

import (
	"fmt"
	"time"
)

// PollingConfig sets the cadence of background refreshes.
type PollingConfig struct {
	UnreadInterval string `toml:"unread_interval"`
	StatsTTL       string `toml:"stats_ttl"`
}

// UnreadIntervalDuration returns the unread-count polling interval.
func (c *PollingConfig) UnreadIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.UnreadInterval)
	return d
}

// StatsTTLDuration returns how long dashboard statistics stay fresh.
func (c *PollingConfig) StatsTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.StatsTTL)
	return d
}

// Finalize applies defaults and validates the polling configuration.
func (c *PollingConfig) Finalize() error {
	if c.UnreadInterval == "" {
		c.UnreadInterval = "30s"
	}
	if c.StatsTTL == "" {
		c.StatsTTL = "30s"
	}

	if d, err := time.ParseDuration(c.UnreadInterval); err != nil || d <= 0 {
		return fmt.Errorf("invalid unread_interval: %q", c.UnreadInterval)
	}
	if d, err := time.ParseDuration(c.StatsTTL); err != nil || d < 0 {
		return fmt.Errorf("invalid stats_ttl: %q", c.StatsTTL)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *PollingConfig) Merge(overlay *PollingConfig) {
	if overlay.UnreadInterval != "" {
		c.UnreadInterval = overlay.UnreadInterval
	}
	if overlay.StatsTTL != "" {
		c.StatsTTL = overlay.StatsTTL
	}
}
