package tui_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/tui"
)

func TestLogPane_CompleteLinesOnly(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(10)

	_, err := p.Write([]byte("first line\nsecond"))
	require.NoError(t, err)

	assert.Equal(t, 1, p.UsedHeight())
	assert.Equal(t, "first line", p.View())

	_, err = p.Write([]byte(" half\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, p.UsedHeight())
	assert.Equal(t, "first line\nsecond half", p.View())
}

// Progress bars redraw via carriage returns; each redraw becomes its own line
// instead of concatenating into one.
func TestLogPane_CarriageReturnsTerminateLines(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(10)

	_, err := p.Write([]byte("10%\r50%\r100%\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, p.UsedHeight())
}

func TestLogPane_ViewWindowsScrollback(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(2)

	for i := 1; i <= 5; i++ {
		_, err := fmt.Fprintf(p, "line %d\n", i)
		require.NoError(t, err)
	}

	// Sticks to the bottom while new output arrives.
	assert.Equal(t, "line 4\nline 5", p.View())

	p.Offset = 0
	assert.Equal(t, "line 1\nline 2", p.View())
}

func TestLogPane_ScrollKeys(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(2)

	for i := 1; i <= 6; i++ {
		_, err := fmt.Fprintf(p, "line %d\n", i)
		require.NoError(t, err)
	}
	require.Equal(t, 4, p.Offset)

	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3, p.Offset)

	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, p.Offset)

	// Scrolling above the top clamps.
	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, p.Offset)

	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 4, p.Offset)
}

func TestLogPane_TruncatesToWidth(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(1)
	p.SetWidth(5)

	_, err := p.Write([]byte("abcdefghij\n"))
	require.NoError(t, err)

	assert.Equal(t, "abcde", p.View())
}

func TestLogPane_ScrollbackCapped(t *testing.T) {
	p := tui.NewLogPane()
	p.SetHeight(10)

	var b strings.Builder
	for i := 0; i < 2500; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	_, err := p.Write([]byte(b.String()))
	require.NoError(t, err)

	assert.Equal(t, 2000, p.UsedHeight())
	// The oldest lines were dropped.
	p.Offset = 0
	assert.True(t, strings.HasPrefix(p.View(), "line 500"))
}
