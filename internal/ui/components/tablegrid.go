package components

import (
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a single column for TableGrid.
//
// Width is the visual width of the column content (excluding separators).
// Align controls how cell text is aligned within the column.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const gridIndent = 2

var gridGlyphs = lipgloss.RoundedBorder()

var (
	gridLineStyle = lipgloss.NewStyle().Foreground(colorBorder)

	gridHeaderStyle = labelStyle.Inline(true)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorRowActive).
				Bold(true).
				Inline(true)

	gridActiveSepStyle = gridLineStyle.Background(colorRowActive)

	gridActionKeyStyle = accentStyle
)

// Action hints in cells look like "[e] Edit".
var actionKeyPattern = regexp.MustCompile(`\[[a-z]\]`)

// TableGrid renders rows under a header and a rule, with columns separated
// by the box border glyphs. Every line is exactly tableWidth wide; the last
// column grows or shrinks to make it so. Callers size tableWidth with
// BoxContentWidth when the grid goes inside a box.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int) string {
	return TableGridWithActiveRow(columns, rows, tableWidth, -1)
}

// TableGridWithActiveRow is TableGrid with the data row at index activeRow
// highlighted. Pass -1 for no highlight.
func TableGridWithActiveRow(columns []TableColumn, rows [][]string, tableWidth int, activeRow int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", tableWidth)
	}

	g := newGrid(columns, tableWidth)
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, g.header(), g.rule())
	for i, cells := range rows {
		lines = append(lines, g.row(cells, i == activeRow))
	}
	return strings.Join(lines, "\n")
}

// grid is a column layout fitted to a fixed line width.
type grid struct {
	cols  []TableColumn
	width int
}

func newGrid(columns []TableColumn, width int) grid {
	cols := slices.Clone(columns)
	used := gridIndent + len(cols) - 1
	for i := range cols {
		cols[i].Width = max(cols[i].Width, 1)
		used += cols[i].Width
	}
	last := &cols[len(cols)-1]
	last.Width = max(last.Width+width-used, 1)
	return grid{cols: cols, width: width}
}

func (g grid) header() string {
	cells := make([]string, len(g.cols))
	for i, c := range g.cols {
		cells[i] = gridHeaderStyle.Render(fitCell(c.Header, c.Width, c.Align))
	}
	return g.line(cells, gridLineStyle.Render(gridGlyphs.Left))
}

func (g grid) rule() string {
	parts := make([]string, len(g.cols))
	for i, c := range g.cols {
		parts[i] = strings.Repeat(gridGlyphs.Top, c.Width)
	}
	return gridLineStyle.Render(g.line(parts, gridGlyphs.Middle))
}

func (g grid) row(cells []string, active bool) string {
	sep := gridLineStyle
	if active {
		sep = gridActiveSepStyle
	}
	parts := make([]string, len(g.cols))
	for i, c := range g.cols {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		cell := fitCell(text, c.Width, c.Align)
		if active {
			cell = gridActiveRowStyle.Render(cell)
		}
		parts[i] = highlightActionKeys(cell)
	}
	return g.line(parts, sep.Render(gridGlyphs.Left))
}

func (g grid) line(parts []string, sep string) string {
	return padRight(strings.Repeat(" ", gridIndent)+strings.Join(parts, sep), g.width)
}

// fitCell reduces text to one line and pads or truncates it to width.
func fitCell(text string, width int, align lipgloss.Position) string {
	s := ClampTextWidth(text, width)
	if lipgloss.Width(s) >= width {
		return truncateRunes(s, width)
	}
	return lipgloss.PlaceHorizontal(width, align, s)
}

func highlightActionKeys(value string) string {
	return actionKeyPattern.ReplaceAllStringFunc(value, func(m string) string {
		return gridActionKeyStyle.Render(m)
	})
}
