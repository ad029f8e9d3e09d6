package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/strata/internal/ui/style"
)

var (
	deltaPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	deltaRunningStyle = lipgloss.NewStyle().
				Foreground(style.Copper).
				Bold(true)

	deltaDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	deltaErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Copper).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Copper).
			Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(style.Slate)
)
