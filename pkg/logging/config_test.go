package logging_test

import (
	"testing"

	"github.com/JaimeStill/printmg/pkg/logging"
)

var testEnv = &logging.Env{
	Level:  "TEST_LOG_LEVEL",
	Format: "TEST_LOG_FORMAT",
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	var cfg logging.Config
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelInfo)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatText)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_LOG_FORMAT", "json")

	cfg := logging.Config{Level: logging.LevelError}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelDebug)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatJSON)
	}
}

func TestConfig_Finalize_InvalidLevel(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "loud")

	var cfg logging.Config
	if err := cfg.Finalize(testEnv); err == nil {
		t.Error("Finalize() succeeded with invalid level, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	base.Merge(&logging.Config{Format: logging.FormatJSON})

	if base.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want unchanged %q", base.Level, logging.LevelInfo)
	}
	if base.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q", base.Format, logging.FormatJSON)
	}
}

func TestConfig_Finalize_NormalizesCase(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", " DEBUG ")

	cfg := logging.Config{Format: "JSON"}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelDebug)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatJSON)
	}
}

func TestConfig_Finalize_DefaultEnv(t *testing.T) {
	t.Setenv(logging.DefaultEnv.Level, "error")

	var cfg logging.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != logging.LevelError {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelError)
	}
}

func TestConfig_DefaultLevel(t *testing.T) {
	tests := []struct {
		name  string
		level logging.Level
		env   string
		want  logging.Level
	}{
		{"unset", "", "", logging.LevelWarn},
		{"chosen in file", logging.LevelInfo, "", logging.LevelInfo},
		{"chosen in environment", "", "debug", logging.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(logging.DefaultEnv.Level, tt.env)

			cfg := logging.Config{Level: tt.level}
			cfg.DefaultLevel(logging.LevelWarn)
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("Finalize() failed: %v", err)
			}
			if cfg.Level != tt.want {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.want)
			}
		})
	}
}
