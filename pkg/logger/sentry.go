package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN string `env:"SENTRY_DSN" yaml:"dsn"`
	// Environment defaults to "production".
	Environment string `env:"SENTRY_ENVIRONMENT" yaml:"environment"`
	// MinLevel is the lowest level forwarded to Sentry as a log entry.
	// Errors always create events.
	MinLevel slog.Level `env:"-" yaml:"-"`
}

// NewWithSentry creates a logger writing to cfg's output and, when a DSN is
// set, to Sentry. Extractors apply to both destinations.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	local := cfg.handler()
	if sc.DSN == "" {
		return slog.New(NewContextHandler(local, extractors...))
	}

	if sc.Environment == "" {
		sc.Environment = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(local, extractors...))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sc.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{local, remote}, extractors...))
}
