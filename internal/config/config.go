// Package config resolves ctdguide settings from defaults, CTDGUIDE_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds process-wide settings.
type Config struct {
	// CatalogPath is an alternative catalog file. Empty means the
	// embedded catalog.
	CatalogPath string

	Log LogConfig

	// Addr is the listen address of the HTTP API.
	Addr string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json

	// File is the log destination. Empty means stderr.
	File string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Addr: ":8080",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("CTDGUIDE_CATALOG"); p != "" {
		cfg.CatalogPath = p
	}
	if l := os.Getenv("CTDGUIDE_LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}
	if f := os.Getenv("CTDGUIDE_LOG_FORMAT"); f != "" {
		cfg.Log.Format = f
	}
	if f := os.Getenv("CTDGUIDE_LOG_FILE"); f != "" {
		cfg.Log.File = f
	}
	if a := os.Getenv("CTDGUIDE_ADDR"); a != "" {
		cfg.Addr = a
	}

	return cfg
}

// Validate checks the enumerated values.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

// DefaultLogPath returns the log file used by the terminal UI, which
// owns stdout and stderr while running.
func DefaultLogPath() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve cache dir: %w", err)
		}
		cacheHome = dir
	}

	p := filepath.Join(cacheHome, "ctdguide", "ctdguide.log")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
