package components

import "github.com/charmbracelet/lipgloss"

// statusIndent is the left margin of the status bar.
const statusIndent = 2

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(colorInk).
			Background(colorKeyCap).
			Bold(true).
			Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginRight(1)
)

// Hint formats one key hint, e.g. Hint("r", "Retry") renders "Retry [r]".
func Hint(key, desc string) string {
	return mutedStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar lays hints out as boxed segments. With a known width the
// segments wrap into rows and each row is centered.
func StatusBar(hints []string, width int) string {
	if len(hints) == 0 {
		return ""
	}
	segments := make([]string, len(hints))
	for i, h := range hints {
		segments[i] = segmentStyle.Render(h)
	}

	avail := width - statusIndent
	rows := wrapSegments(segments, avail)
	if avail > 0 {
		for i, row := range rows {
			rows[i] = lipgloss.PlaceHorizontal(avail, lipgloss.Center, row)
		}
	}
	return Indent(lipgloss.JoinVertical(lipgloss.Left, rows...), statusIndent)
}

// wrapSegments packs segments greedily into rows no wider than width.
// A segment wider than width gets a row of its own.
func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	var rows []string
	var row []string
	used := 0
	flush := func() {
		if len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
		row, used = nil, 0
	}
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if used > 0 && used+w > width {
			flush()
		}
		row = append(row, seg)
		used += w
	}
	flush()
	return rows
}

