// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/strata/internal/ui/output"
	"go.trai.ch/strata/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing single-line, colored output
// through the shared UI palette. Warnings and errors carry a leading marker.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
// A nil writer falls back to stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.LevelInfo)
	if opts != nil && opts.Level != nil {
		levelVar.Set(opts.Level.Level())
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders the record as marker, message, then space-separated
// key=value attributes, colored by level.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := levelDecoration(r.Level)

	var line strings.Builder
	if marker != "" {
		line.WriteString(marker)
		line.WriteString(" ")
	}
	line.WriteString(r.Message)

	appendAttr := func(attr slog.Attr) {
		line.WriteString(" ")
		if h.group != "" {
			line.WriteString(h.group)
			line.WriteString(".")
		}
		line.WriteString(attr.Key)
		line.WriteString("=")
		line.WriteString(attr.Value.String())
	}

	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a handler that prepends the given attributes to
// every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: merged,
		group: h.group,
	}
}

// WithGroup returns a handler that prefixes attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func levelDecoration(level slog.Level) (string, termenv.Color) {
	switch level {
	case slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}
