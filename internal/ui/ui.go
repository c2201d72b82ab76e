// Package ui provides shared terminal output helpers for the commands
// that print to stdout rather than running the dashboard.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarn    = "!"
)

// Semantic colors using ANSI color codes for terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Success renders a green check followed by the message.
func Success(msg string) string {
	return successStyle.Render(SymbolSuccess) + " " + msg
}

// Fail renders a red cross followed by the message.
func Fail(msg string) string {
	return errorStyle.Render(SymbolFail) + " " + msg
}

// Warn renders a yellow marker followed by the message.
func Warn(msg string) string {
	return warningStyle.Render(SymbolWarn) + " " + msg
}

// Field renders an aligned "name: value" report row with a muted label.
func Field(name, value string) string {
	return mutedStyle.Render(fmt.Sprintf("%-12s", name+":")) + " " + value
}
