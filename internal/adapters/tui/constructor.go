// Package tui provides a terminal user interface for the build orchestrator.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := NewOutput(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Deltas:     make([]*DeltaNode, 0),
		DeltaMap:   make(map[string]*DeltaNode),
		SpanMap:    make(map[string]*DeltaNode),
		FollowMode: true,
	}
}
