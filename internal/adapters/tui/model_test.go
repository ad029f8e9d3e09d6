package tui_test

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/tui"
)

var devPlan = tui.MsgInitPlan{
	Deltas: []string{
		"base:packages", "base:env",
		"prod:config-copy", "prod:sync-deps",
	},
	Stages: map[string][]string{
		"base": {"base:packages", "base:env"},
		"prod": {"prod:config-copy", "prod:sync-deps"},
	},
	Target: "dev",
}

func newTestModel(t *testing.T) *tui.Model {
	t.Helper()
	m := tui.NewModel(io.Discard)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(devPlan)
	return &m
}

func TestModel_InitPlan(t *testing.T) {
	m := newTestModel(t)

	require.Len(t, m.Deltas, 4)
	assert.Equal(t, "dev", m.Target)
	assert.Equal(t, "base:packages", m.Deltas[0].Name)
	assert.Equal(t, "base", m.Deltas[0].Stage)
	assert.Equal(t, "prod", m.Deltas[3].Stage)
	for _, node := range m.Deltas {
		assert.Equal(t, tui.StatusPending, node.Status)
		assert.NotNil(t, node.Pane)
	}
}

func TestModel_DeltaLifecycle(t *testing.T) {
	m := newTestModel(t)

	start := time.Now()
	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "base:packages", StartTime: start})
	assert.Equal(t, tui.StatusRunning, m.DeltaMap["base:packages"].Status)

	m.Update(tui.MsgDeltaLog{SpanID: "s1", Data: []byte("Setting up libpq5\n")})
	assert.Equal(t, 1, m.DeltaMap["base:packages"].Pane.UsedHeight())

	m.Update(tui.MsgDeltaComplete{SpanID: "s1", EndTime: start.Add(time.Second)})
	assert.Equal(t, tui.StatusDone, m.DeltaMap["base:packages"].Status)
}

func TestModel_DeltaFailure(t *testing.T) {
	m := newTestModel(t)

	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "prod:sync-deps", StartTime: time.Now()})
	m.Update(tui.MsgDeltaComplete{SpanID: "s1", EndTime: time.Now(), Err: errors.New("sync failed")})

	assert.Equal(t, tui.StatusError, m.DeltaMap["prod:sync-deps"].Status)
}

func TestModel_FollowModeTracksActiveDelta(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.FollowMode)

	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "base:env", StartTime: time.Now()})
	assert.Equal(t, "base:env", m.ActiveDeltaName)
	assert.Equal(t, 1, m.SelectedIdx)
}

func TestModel_ManualSelectionDisablesFollow(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, m.FollowMode)
	assert.Equal(t, 1, m.SelectedIdx)

	// New delta activity no longer steals focus.
	m.Update(tui.MsgDeltaStart{SpanID: "s1", Name: "prod:sync-deps", StartTime: time.Now()})
	assert.Equal(t, 1, m.SelectedIdx)

	// Escape returns to follow mode and jumps to the running delta.
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.FollowMode)
	assert.Equal(t, 3, m.SelectedIdx)
}

func TestModel_SelectionClampedToList(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.SelectedIdx)

	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.SelectedIdx)
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_UnknownSpanIgnored(t *testing.T) {
	m := newTestModel(t)

	m.Update(tui.MsgDeltaLog{SpanID: "ghost", Data: []byte("noise\n")})
	m.Update(tui.MsgDeltaComplete{SpanID: "ghost", EndTime: time.Now()})

	for _, node := range m.Deltas {
		assert.Equal(t, tui.StatusPending, node.Status)
	}
}
