package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	minBoxWidth = 40
	maxBoxWidth = 80
	// boxChrome is the rounded border (1 each side) plus horizontal padding (2 each side).
	boxChrome = 6
)

// frame is a rounded, padded box. Its title, when set, sits in the top border.
type frame struct {
	border lipgloss.Color
	title  lipgloss.Style
}

var (
	plainFrame = frame{border: colorBorder, title: accentStyle}
	errorFrame = frame{border: colorDanger, title: dangerStyle}

	errorBodyStyle = lipgloss.NewStyle().Foreground(colorDangerBody)
)

// boxWidth is the outer width of a box on a terminal termWidth columns wide:
// 70% of the terminal, kept within [minBoxWidth, maxBoxWidth] and never
// wider than the terminal itself. Zero means unknown.
func boxWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	w := min(max(termWidth*70/100, minBoxWidth), maxBoxWidth)
	return min(w, termWidth)
}

// BoxContentWidth returns the inner content width of a box on a terminal
// termWidth columns wide.
func BoxContentWidth(termWidth int) int {
	return max(boxWidth(termWidth)-boxChrome, 0)
}

func (f frame) style(termWidth int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.border).
		Padding(1, 2)
	// lipgloss widths exclude the border.
	if w := boxWidth(termWidth); w > 2 {
		s = s.Width(w - 2)
	}
	return s
}

func (f frame) render(title, content string, termWidth int) string {
	if title == "" {
		return f.style(termWidth).Render(content)
	}
	body := f.style(termWidth).BorderTop(false).Render(content)
	width := lipgloss.Width(firstLine(body))
	if width < 6 {
		return f.style(termWidth).Render(content)
	}

	// ╭─ Title ───────╮
	inner := width - 2
	label := " " + truncateRunes(SanitizeOneLine(title), inner-4) + " "
	fill := max(inner-1-lipgloss.Width(label), 0)
	edge := lipgloss.NewStyle().Foreground(f.border)
	b := lipgloss.RoundedBorder()
	top := edge.Render(b.TopLeft+b.Top) +
		f.title.Render(label) +
		edge.Render(strings.Repeat(b.Top, fill)+b.TopRight)
	return top + "\n" + body
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return plainFrame.render("", content, width)
}

// TitledBox renders a box with title set into its top border.
func TitledBox(title, content string, width int) string {
	return plainFrame.render(title, content, width)
}

// ErrorBox renders a red box with a bold heading above message.
func ErrorBox(title, message string, width int) string {
	body := errorBodyStyle.Render(message)
	if title != "" {
		body = dangerStyle.Render(title) + "\n\n" + body
	}
	return errorFrame.render("", body, width)
}

// InfoRow renders a "label: value" line. Both parts are reduced to one line.
func InfoRow(label, value string) string {
	return mutedStyle.Render(SanitizeOneLine(label)+": ") + textStyle.Render(SanitizeOneLine(value))
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// ClampTextWidth reduces text to one line no wider than width columns.
// A width of zero or less only sanitizes.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
