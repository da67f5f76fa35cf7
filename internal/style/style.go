// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss colors are configured.
// All styling is semantic (Success, Error, Prompt, etc.) rather than
// visual (RedBold, etc.). When disabled, all helpers return the input
// string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	// Pre-created styles, only used when enabled is true.
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	promptStyle  lipgloss.Style
)

// Init initializes the style package with the given enabled state. It
// also respects the NO_COLOR and STANZA_NO_COLOR environment variables;
// if either is set (to any non-empty value), styling is disabled
// regardless of the enable parameter.
//
// This function should be called once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("STANZA_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		initStyles()
	}
}

// initStyles creates the lipgloss styles. Uses the ANSI 256-color
// palette regardless of TTY detection so output is stable under test.
func initStyles() {
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string {
	if !enabled {
		return text
	}
	return successStyle.Render(text)
}

// Error styles text for error messages.
func Error(text string) string {
	if !enabled {
		return text
	}
	return errorStyle.Render(text)
}

// Info styles text for informational messages.
func Info(text string) string {
	if !enabled {
		return text
	}
	return infoStyle.Render(text)
}

// Muted styles text for less important or secondary information.
func Muted(text string) string {
	if !enabled {
		return text
	}
	return mutedStyle.Render(text)
}

// Header styles text for section headers or titles.
func Header(text string) string {
	if !enabled {
		return text
	}
	return headerStyle.Render(text)
}

// Prompt styles the interactive shell prompt.
func Prompt(text string) string {
	if !enabled {
		return text
	}
	return promptStyle.Render(text)
}
