package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary = lipgloss.Color("#7f57b4") // purple
	ColorMuted   = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess = lipgloss.Color("#3f866b") // green
	ColorWarning = lipgloss.Color("#c78854") // warning
	ColorBorder  = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
