package diag_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/internal/diag"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	diag.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { diag.SetLogger(nil) })

	diag.Debug(context.Background(), "handle created", slog.String("kind", "collator"))
	diag.Warn(context.Background(), "leak")
	require.Contains(t, buf.String(), "handle created")
	require.Contains(t, buf.String(), "kind=collator")
	require.Contains(t, buf.String(), "leak")

	diag.SetLogger(nil)
	buf.Reset()
	diag.Info(context.Background(), "dropped")
	require.Empty(t, buf.String())
}
