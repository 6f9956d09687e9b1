package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr       string // STORESEED_ADDR, default ":8080"
	DBPath     string // STORESEED_DB, default "storeseed.db"
	AuthToken  string // STORESEED_AUTH_TOKEN, optional
	LayoutPath string // STORESEED_LAYOUT, optional YAML hierarchy layout
	LogLevel   string // STORESEED_LOG_LEVEL, default "info"
	LogFormat  string // STORESEED_LOG_FORMAT, "text" or "json", default "text"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:       envOr("STORESEED_ADDR", ":8080"),
		DBPath:     envOr("STORESEED_DB", "storeseed.db"),
		AuthToken:  os.Getenv("STORESEED_AUTH_TOKEN"),
		LayoutPath: os.Getenv("STORESEED_LAYOUT"),
		LogLevel:   envOr("STORESEED_LOG_LEVEL", "info"),
		LogFormat:  envOr("STORESEED_LOG_FORMAT", "text"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
