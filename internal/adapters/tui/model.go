package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	deltaListWidthRatio = 0.3
	logPaneBorderWidth  = 4
)

// DeltaStatus represents the current state of a delta.
type DeltaStatus string

const (
	// StatusPending indicates the delta is waiting to apply.
	StatusPending DeltaStatus = "Pending"
	// StatusRunning indicates the delta is currently applying.
	StatusRunning DeltaStatus = "Running"
	// StatusDone indicates the delta applied successfully.
	StatusDone DeltaStatus = "Done"
	// StatusError indicates the delta failed.
	StatusError DeltaStatus = "Error"
)

// DeltaNode represents a single delta in the UI list.
type DeltaNode struct {
	Name   string
	Stage  string
	Status DeltaStatus
	Pane   *LogPane
}

// Model represents the main TUI state.
type Model struct {
	Deltas          []*DeltaNode
	DeltaMap        map[string]*DeltaNode
	SpanMap         map[string]*DeltaNode
	Target          string
	ActiveDeltaName string
	SelectedIdx     int
	ListOffset      int
	ListHeight      int
	LogWidth        int
	LogHeight       int
	FollowMode      bool
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) getSelectedDelta() *DeltaNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Deltas) {
		return m.Deltas[m.SelectedIdx]
	}
	return nil
}

func (m *Model) updateActiveView() {
	if node := m.getSelectedDelta(); node != nil {
		m.ActiveDeltaName = node.Name

		if m.FollowMode {
			node.Pane.ScrollToBottom()
		}
	}
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop,gocritic // hugeParam ignored, cyclop ignored
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
				m.ensureVisible()
				m.updateActiveView()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Deltas)-1 {
				m.SelectedIdx++
				m.FollowMode = false
				m.ensureVisible()
				m.updateActiveView()
			}
		case "esc":
			m.FollowMode = true
			// Jump to the currently running delta if any.
			for i, d := range m.Deltas {
				if d.Status == StatusRunning {
					m.SelectedIdx = i
					break
				}
			}
			m.ensureVisible()
			m.updateActiveView()

		default:
			// Forward keys to the active delta's log pane if applicable
			if m.ActiveDeltaName != "" {
				if node, ok := m.DeltaMap[m.ActiveDeltaName]; ok {
					node.Pane.Update(msg)
				}
			}
		}

	case tea.WindowSizeMsg:
		// Split screen: 30% for delta list, 70% for logs
		listWidth := int(float64(msg.Width) * deltaListWidthRatio)
		logWidth := msg.Width - listWidth - logPaneBorderWidth // minus margins/borders

		headerHeight := lipgloss.Height(titleStyle.Render("TEST"))
		logHeight := msg.Height - headerHeight

		m.LogWidth = logWidth
		m.LogHeight = logHeight

		fullHeader := titleStyle.Render("DELTAS") + "\n\n"
		listInfoHeight := lipgloss.Height(fullHeader)
		m.ListHeight = msg.Height - listInfoHeight
		m.ensureVisible()

		for _, node := range m.Deltas {
			node.Pane.SetWidth(logWidth)
			node.Pane.SetHeight(logHeight)
		}

	case MsgInitPlan:
		m.Target = msg.Target
		m.Deltas = make([]*DeltaNode, len(msg.Deltas))
		m.DeltaMap = make(map[string]*DeltaNode, len(msg.Deltas))
		m.SpanMap = make(map[string]*DeltaNode)

		stageOf := make(map[string]string)
		for stage, names := range msg.Stages {
			for _, name := range names {
				stageOf[name] = stage
			}
		}

		for i, name := range msg.Deltas {
			pane := NewLogPane()
			if m.LogWidth > 0 && m.LogHeight > 0 {
				pane.SetWidth(m.LogWidth)
				pane.SetHeight(m.LogHeight)
			}

			m.Deltas[i] = &DeltaNode{
				Name:   name,
				Stage:  stageOf[name],
				Status: StatusPending,
				Pane:   pane,
			}
			m.DeltaMap[name] = m.Deltas[i]
		}

	case MsgDeltaStart:
		if node, ok := m.DeltaMap[msg.Name]; ok {
			node.Status = StatusRunning
			m.SpanMap[msg.SpanID] = node

			// Focus follows activity ONLY if FollowMode is true
			if m.FollowMode {
				m.ActiveDeltaName = msg.Name
				for i, d := range m.Deltas {
					if d.Name == msg.Name {
						m.SelectedIdx = i
						break
					}
				}
				m.ensureVisible()
				m.updateActiveView()
			}
		}

	case MsgDeltaLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Pane.Write(msg.Data)
		}

	case MsgDeltaComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}
	}

	return m, cmd
}
