package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.deltaList(),
		m.logPane(),
	)
}

//nolint:gocritic // hugeParam ignored
func (m *Model) deltaList() string {
	var s strings.Builder

	title := "DELTAS"
	if m.Target != "" {
		title = "DELTAS · " + m.Target
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")

	start := m.ListOffset
	end := m.ListOffset + m.ListHeight
	if end > len(m.Deltas) {
		end = len(m.Deltas)
	}
	if start > end {
		start = end
	}

	for i := start; i < end; i++ {
		delta := m.Deltas[i]
		s.WriteString(m.renderDeltaRow(i, delta) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderDeltaRow(index int, delta *DeltaNode) string {
	icon := m.getDeltaIcon(delta)
	style := m.getDeltaStyle(delta)

	// Highlight selected delta
	var cursor string
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if delta.Status != StatusDone && delta.Status != StatusError {
			style = selectedStyle
		}
	} else {
		cursor = "  "
	}

	content := fmt.Sprintf("%s %s", icon, delta.Name)
	return cursor + style.Render(content)
}

func (m *Model) getDeltaIcon(delta *DeltaNode) string {
	switch delta.Status {
	case StatusRunning:
		return "●"
	case StatusDone:
		return "✓"
	case StatusError:
		return "✗"
	default: // Pending
		return "○"
	}
}

func (m *Model) getDeltaStyle(delta *DeltaNode) lipgloss.Style {
	switch delta.Status {
	case StatusRunning:
		return deltaRunningStyle
	case StatusDone:
		return deltaDoneStyle
	case StatusError:
		return deltaErrorStyle
	default: // Pending
		return deltaPendingStyle
	}
}

//nolint:gocritic // hugeParam ignored
func (m *Model) logPane() string {
	var header string
	var content string

	if m.ActiveDeltaName != "" {
		status := " (Manual)"
		if m.FollowMode {
			status = " (Following)"
		}
		header = titleStyle.Render("LOGS: " + m.ActiveDeltaName + status)

		if node, ok := m.DeltaMap[m.ActiveDeltaName]; ok {
			content = node.Pane.View()
		}
	} else {
		header = titleStyle.Render("LOGS (Waiting...)")
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
		),
	)
}
