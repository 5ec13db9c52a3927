package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// Format is "json" (default) or "text".
	Format string
	Level  slog.Level
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) handler() slog.Handler {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: c.Level}
	if strings.EqualFold(c.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

// New creates a logger for cfg with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(cfg.handler(), extractors...))
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
