// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for local single-user runs.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links in responses.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// StaticDir is the directory holding the browsing UI assets.
	StaticDir string

	// Database holds SQLite settings.
	Database DatabaseConfig

	// Redis holds the optional render cache settings.
	Redis RedisConfig

	// Upload holds image upload settings.
	Upload UploadConfig

	// CORSOrigins lists origins allowed to call the JSON API from another
	// host. Empty means same-origin only.
	CORSOrigins []string
}

// DatabaseConfig holds SQLite connection parameters. The store is a single
// local file created on first start.
type DatabaseConfig struct {
	// Path is the SQLite database file (default: "./notes.db").
	Path string

	// BusyTimeout is how long a statement waits on a locked database before
	// failing. SQLite serializes writes, so concurrent requests briefly queue.
	BusyTimeout time.Duration
}

// DSN returns the mattn/go-sqlite3 connection string. Foreign keys are
// enabled explicitly: folder cascade deletion and note_tags cleanup depend
// on them, and SQLite defaults them off.
func (d DatabaseConfig) DSN() string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", strconv.Itoa(int(d.BusyTimeout.Milliseconds())))
	return "file:" + d.Path + "?" + q.Encode()
}

// RedisConfig holds the optional Redis connection used to cache rendered
// note bodies. An empty URL disables caching entirely -- the app is a
// single-user local service and must run without external processes.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// Enabled reports whether a cache backend was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// UploadConfig holds image upload settings.
type UploadConfig struct {
	// MaxSize is the maximum upload size in bytes.
	MaxSize int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:       getEnv("ENV", "development"),
		Port:      getEnvInt("PORT", 8080),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		StaticDir: getEnv("STATIC_DIR", "static"),

		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", "./notes.db"),
			BusyTimeout: getEnvDuration("DB_BUSY_TIMEOUT", 5*time.Second),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		Upload: UploadConfig{
			MaxSize: getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		},

		CORSOrigins: getEnvList("CORS_ORIGINS"),
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvInt64 reads an int64 env var or returns the default.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var into a slice, dropping blanks.
func getEnvList(key string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvDuration reads a duration env var (e.g., "5s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
