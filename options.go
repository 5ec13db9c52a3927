package intl

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/intl/pkg/logger"
)

// Option configures the runtime.
type Option func(*Runtime)

// WithConfig sets the configuration. Unset values get defaults.
// Defaults to the zero Config.
func WithConfig(cfg Config) Option {
	return func(r *Runtime) {
		r.cfg = cfg.withDefaults()
	}
}

// WithLogger sets the logger used by library internals, replacing the one
// built from the configuration.
// If nil, the configured logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExtractors adds context extractors to the configured logger. The
// result extractor is always present.
func WithExtractors(extractors ...logger.ContextExtractor) Option {
	return func(r *Runtime) {
		r.extractors = append(r.extractors, extractors...)
	}
}

// WithZoneInfo serves time zones from a zoneinfo tree in fsys instead of
// the configured directory.
func WithZoneInfo(fsys fs.FS) Option {
	return func(r *Runtime) {
		if fsys != nil {
			r.zoneinfo = fsys
		}
	}
}

// WithLocaleData loads the locale data YAML files of fsys over the
// predefined data.
func WithLocaleData(fsys fs.FS) Option {
	return func(r *Runtime) {
		if fsys != nil {
			r.localedata = fsys
		}
	}
}
