package intl

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/intl/pkg/logger"
)

// DefaultCacheTTL is the lifetime of cached zone listings and of the
// character name index when none is configured.
const DefaultCacheTTL = 10 * time.Minute

// Config holds the process-wide settings of the library.
type Config struct {
	Locale        string              `env:"INTL_LOCALE" yaml:"locale"`
	TimeZone      string              `env:"INTL_TIMEZONE" yaml:"timezone"`
	ZoneInfoDir   string              `env:"INTL_ZONEINFO_DIR" yaml:"zoneinfo_dir"`
	LocaleDataDir string              `env:"INTL_LOCALEDATA_DIR" yaml:"localedata_dir"`
	LogLevel      string              `env:"INTL_LOG_LEVEL" yaml:"log_level"`
	LogFormat     string              `env:"INTL_LOG_FORMAT" yaml:"log_format"`
	Sentry        logger.SentryConfig `envPrefix:"INTL_" yaml:"sentry"`
	// CacheTTL below zero disables expiry.
	CacheTTL time.Duration `env:"INTL_CACHE_TTL" yaml:"cache_ttl"`
}

// LoadConfig reads the YAML file at path, when path is not empty, then
// applies INTL_* environment variables over it. Unset values get defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrConfigFile, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

func (c Config) loggerConfig() logger.Config {
	return logger.Config{Format: c.LogFormat, Level: logger.ParseLevel(c.LogLevel)}
}
