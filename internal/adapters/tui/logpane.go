package tui

import (
	"bytes"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// maxScrollback caps the number of retained log lines per delta.
const maxScrollback = 2000

// LogPane holds the scrollback buffer for one delta's process output.
// It keeps complete lines only; a trailing partial line is buffered until
// its newline arrives.
type LogPane struct {
	Offset int
	Height int
	Width  int

	lines   []string
	partial bytes.Buffer
	mu      sync.Mutex
}

// NewLogPane creates an empty LogPane.
func NewLogPane() *LogPane {
	return &LogPane{}
}

// Write implements io.Writer. Carriage returns are treated as line
// terminators so progress-style output does not accumulate.
func (p *LogPane) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stickToBottom := p.Offset >= p.maxOffsetLocked()

	p.partial.Write(b)
	for {
		data := p.partial.Bytes()
		idx := bytes.IndexAny(data, "\r\n")
		if idx < 0 {
			break
		}
		line := string(data[:idx])
		p.partial.Next(idx + 1)
		p.appendLocked(line)
	}

	if stickToBottom {
		p.Offset = p.maxOffsetLocked()
	}

	return len(b), nil
}

func (p *LogPane) appendLocked(line string) {
	p.lines = append(p.lines, line)
	if len(p.lines) > maxScrollback {
		// Drop the oldest lines in one slice move.
		n := copy(p.lines, p.lines[len(p.lines)-maxScrollback:])
		p.lines = p.lines[:n]
		if p.Offset > 0 {
			p.Offset--
		}
	}
}

// SetHeight updates the view height and adjusts scrolling.
func (p *LogPane) SetHeight(h int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h < 1 {
		h = 1
	}

	stickToBottom := p.Offset >= p.maxOffsetLocked()
	p.Height = h

	if stickToBottom {
		p.Offset = p.maxOffsetLocked()
	} else if limit := p.maxOffsetLocked(); p.Offset > limit {
		p.Offset = limit
	}
}

// SetWidth updates the pane width used for line truncation.
func (p *LogPane) SetWidth(w int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w < 1 {
		w = 1
	}
	p.Width = w
}

// UsedHeight returns the number of complete lines in the buffer.
func (p *LogPane) UsedHeight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lines)
}

// ScrollToBottom moves the view to the newest output.
func (p *LogPane) ScrollToBottom() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Offset = p.maxOffsetLocked()
}

// View renders the visible window of the scrollback.
func (p *LogPane) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Offset < 0 {
		p.Offset = 0
	}
	if limit := p.maxOffsetLocked(); p.Offset > limit {
		p.Offset = limit
	}

	var s strings.Builder
	for i := 0; i < p.Height; i++ {
		row := p.Offset + i
		if row >= len(p.lines) {
			break
		}
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(p.truncateLocked(p.lines[row]))
	}
	return s.String()
}

func (p *LogPane) truncateLocked(line string) string {
	if p.Width <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= p.Width {
		return line
	}
	return string(runes[:p.Width])
}

// Update handles incoming events, specifically for scrolling.
func (p *LogPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			p.Offset--
		case "down", "j":
			p.Offset++
		case "pgup":
			p.Offset -= p.Height
		case "pgdown":
			p.Offset += p.Height
		case "home":
			p.Offset = 0
		case "end":
			p.Offset = p.maxOffsetLocked()
		}
	}

	if p.Offset < 0 {
		p.Offset = 0
	}
	if limit := p.maxOffsetLocked(); p.Offset > limit {
		p.Offset = limit
	}

	return nil, nil
}

func (p *LogPane) maxOffsetLocked() int {
	maxOff := len(p.lines) - p.Height
	if maxOff < 0 {
		return 0
	}
	return maxOff
}
