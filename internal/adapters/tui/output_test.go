package tui_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/adapters/tui"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.TrueColor, tui.ColorProfile())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, tui.ColorProfile())
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	out := tui.NewOutput(&buf)
	assert.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNewOutput_Nil(t *testing.T) {
	out := tui.NewOutput(nil)
	assert.NotNil(t, out)
}
