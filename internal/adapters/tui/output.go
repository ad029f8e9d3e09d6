package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the profile for the full-screen renderer.
// NO_COLOR forces Ascii; otherwise TrueColor is assumed, since this
// renderer only runs on interactive terminals.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.TrueColor
}

// NewOutput creates a termenv.Output for w using ColorProfile.
// A nil writer falls back to stderr.
func NewOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
