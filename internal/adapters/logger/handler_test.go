package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info level",
			level:      slog.LevelInfo,
			msg:        "composing stage",
			goldenName: "handler_info",
		},
		{
			name:       "warn level",
			level:      slog.LevelWarn,
			msg:        "stage directory missing",
			goldenName: "handler_warn",
		},
		{
			name:       "error level",
			level:      slog.LevelError,
			msg:        "build failed",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			level:      slog.LevelDebug,
			msg:        "cache key computed",
			goldenName: "handler_debug_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, nil)
	l := slog.New(h)

	l.Info("stage cached", "stage", "base", "deltas", 2)

	out := buf.String()
	assert.Contains(t, out, "stage cached")
	assert.Contains(t, out, "stage=base")
	assert.Contains(t, out, "deltas=2")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, nil)
	l := slog.New(h).With("target", "dev").WithGroup("build")

	l.Info("composing", "stage", "prod")

	out := buf.String()
	require.Contains(t, out, "composing")
	assert.Contains(t, out, "target=dev")
	assert.Contains(t, out, "build.stage=prod")
}
