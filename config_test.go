package intl_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := intl.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, intl.DefaultCacheTTL, cfg.CacheTTL)
		assert.Empty(t, cfg.Locale)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "intl.yaml", `
locale: de_DE
timezone: Europe/Berlin
log_level: debug
cache_ttl: 5m
sentry:
  environment: staging
`)
		t.Setenv("INTL_LOCALE", "fr_FR")
		t.Setenv("INTL_SENTRY_DSN", "https://key@sentry.example.com/1")

		cfg, err := intl.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "fr_FR", cfg.Locale)
		assert.Equal(t, "Europe/Berlin", cfg.TimeZone)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.Equal(t, "staging", cfg.Sentry.Environment)
		assert.Equal(t, "https://key@sentry.example.com/1", cfg.Sentry.DSN)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := intl.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, intl.ErrConfigFile)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := intl.LoadConfig(writeFile(t, "bad.yaml", "locale: [de"))
		require.ErrorIs(t, err, intl.ErrConfigParse)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("INTL_CACHE_TTL", "soon")
		_, err := intl.LoadConfig("")
		require.ErrorIs(t, err, intl.ErrConfigParse)
	})
}
