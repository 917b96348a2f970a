package components

import "github.com/charmbracelet/lipgloss"

// Palette shared by every component. Keep in step with ui/styles.go.
var (
	colorAccent     = lipgloss.Color("#7f57b4")
	colorLabel      = lipgloss.Color("#436b77")
	colorBorder     = lipgloss.Color("#273540")
	colorText       = lipgloss.Color("#d7d9da")
	colorMuted      = lipgloss.Color("#9ba0bf")
	colorKeyCap     = lipgloss.Color("#888ba4")
	colorInk        = lipgloss.Color("#16161d")
	colorRowActive  = lipgloss.Color("#1f2530")
	colorDanger     = lipgloss.Color("#7a2f3a")
	colorDangerText = lipgloss.Color("#e06c75")
	colorDangerBody = lipgloss.Color("#d6b5b5")
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	labelStyle  = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	dangerStyle = lipgloss.NewStyle().Foreground(colorDangerText).Bold(true)
)
