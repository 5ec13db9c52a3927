package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/logger"
)

type traceKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(traceKey{}).(string); ok {
		return slog.String("trace", v), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: slog.LevelDebug}, traceExtractor, nil)

		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.DebugContext(ctx, "handle created", slog.String("kind", "collator"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "handle created", rec["msg"])
		assert.Equal(t, "collator", rec["kind"])
		assert.Equal(t, "abc", rec["trace"])
	})

	t.Run("text output respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Format: "text", Level: slog.LevelWarn})
		log.Info("hidden")
		log.With(slog.String("pkg", "timezone")).Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "pkg=timezone")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.Config{Output: &buf}, logger.SentryConfig{}, traceExtractor)
	log.InfoContext(context.WithValue(context.Background(), traceKey{}, "x"), "local only")
	assert.Contains(t, buf.String(), `"trace":"x"`)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
