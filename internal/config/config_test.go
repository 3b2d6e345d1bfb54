package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CTDGUIDE_CATALOG", "/tmp/catalog.yaml")
	t.Setenv("CTDGUIDE_LOG_LEVEL", "debug")
	t.Setenv("CTDGUIDE_LOG_FORMAT", "json")
	t.Setenv("CTDGUIDE_LOG_FILE", "/tmp/ctdguide.log")
	t.Setenv("CTDGUIDE_ADDR", "127.0.0.1:9000")

	cfg := ConfigFromEnv()
	assert.Equal(t, "/tmp/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/ctdguide.log", cfg.Log.File)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_UnsetKeepsDefaults(t *testing.T) {
	t.Setenv("CTDGUIDE_LOG_LEVEL", "")
	t.Setenv("CTDGUIDE_ADDR", "")
	cfg := ConfigFromEnv()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty addr", func(c *Config) { c.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestDefaultLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	p, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ctdguide", "ctdguide.log"), p)

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
