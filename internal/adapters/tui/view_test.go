package tui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/adapters/tui"
)

func TestView_BeforeFirstResize(t *testing.T) {
	m := tui.NewModel(nil)
	assert.Equal(t, "Initializing...", m.View())
}

func TestView_ListsDeltasWithStatusIcons(t *testing.T) {
	m := newTestModel(t)

	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "base:packages", StartTime: time.Now()})
	m.Update(tui.MsgDeltaComplete{SpanID: "s1", EndTime: time.Now()})
	m.Update(tui.MsgDeltaStart{SpanID: "s2", Name: "base:env", StartTime: time.Now()})

	view := m.View()
	assert.Contains(t, view, "DELTAS · dev")
	assert.Contains(t, view, "✓ base:packages")
	assert.Contains(t, view, "● base:env")
	assert.Contains(t, view, "○ prod:config-copy")
}

func TestView_LogHeaderShowsFollowState(t *testing.T) {
	m := newTestModel(t)

	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "base:packages", StartTime: time.Now()})
	assert.Contains(t, m.View(), "LOGS: base:packages (Following)")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "(Manual)")
}

func TestView_WaitingBeforePlan(t *testing.T) {
	m := tui.NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Contains(t, m.View(), "LOGS (Waiting...)")
}
