package config_test

import (
	"testing"

	"github.com/johnwards/storeseed/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Unset any env vars that might be set.
	t.Setenv("STORESEED_ADDR", "")
	t.Setenv("STORESEED_DB", "")
	t.Setenv("STORESEED_AUTH_TOKEN", "")
	t.Setenv("STORESEED_LAYOUT", "")
	t.Setenv("STORESEED_LOG_LEVEL", "")
	t.Setenv("STORESEED_LOG_FORMAT", "")

	cfg := config.Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != "storeseed.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "storeseed.db")
	}
	if cfg.AuthToken != "" {
		t.Errorf("AuthToken = %q, want empty", cfg.AuthToken)
	}
	if cfg.LayoutPath != "" {
		t.Errorf("LayoutPath = %q, want empty", cfg.LayoutPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORESEED_ADDR", ":9090")
	t.Setenv("STORESEED_DB", "/tmp/test.db")
	t.Setenv("STORESEED_AUTH_TOKEN", "secret-token")
	t.Setenv("STORESEED_LAYOUT", "/etc/storeseed/layout.yaml")
	t.Setenv("STORESEED_LOG_LEVEL", "debug")
	t.Setenv("STORESEED_LOG_FORMAT", "json")

	cfg := config.Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.AuthToken != "secret-token" {
		t.Errorf("AuthToken = %q, want %q", cfg.AuthToken, "secret-token")
	}
	if cfg.LayoutPath != "/etc/storeseed/layout.yaml" {
		t.Errorf("LayoutPath = %q, want %q", cfg.LayoutPath, "/etc/storeseed/layout.yaml")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}
