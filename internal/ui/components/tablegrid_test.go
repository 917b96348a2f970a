package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGridColumns() []TableColumn {
	return []TableColumn{
		{Header: "ID", Width: 6},
		{Header: "Name", Width: 16},
		{Header: "Country", Width: 14},
		{Header: "Actions", Width: 10},
	}
}

func TestTableGridRendersHeaderRuleAndRows(t *testing.T) {
	rows := [][]string{
		{"#1", "Harriet Ross", "United States", "[e] Edit"},
		{"#2", "Omar Haddad", "Canada", "[e] Edit"},
	}
	out := SanitizeText(TableGrid(testGridColumns(), rows, 60))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "Harriet Ross")
	assert.Contains(t, lines[3], "Omar Haddad")
}

func TestTableGridLinesMatchWidth(t *testing.T) {
	rows := [][]string{{"#1", strings.Repeat("long name ", 10), "Canada", "[e] Edit"}}
	out := TableGrid(testGridColumns(), rows, 60)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestTableGridZeroWidthIsEmpty(t *testing.T) {
	assert.Equal(t, "", TableGrid(testGridColumns(), nil, 0))
}

func TestTableGridWithActiveRowKeepsText(t *testing.T) {
	rows := [][]string{{"#1", "A", "B", ""}, {"#2", "C", "D", ""}}
	out := SanitizeText(TableGridWithActiveRow(testGridColumns(), rows, 60, 1))
	assert.Contains(t, out, "#2")
}

func TestHighlightActionKeysKeepsLabel(t *testing.T) {
	out := SanitizeText(highlightActionKeys("[e] Edit"))
	assert.Equal(t, "[e] Edit", out)
}

func TestFitCellAlignment(t *testing.T) {
	assert.Equal(t, "ab  ", fitCell("ab", 4, lipgloss.Left))
	assert.Equal(t, "  ab", fitCell("ab", 4, lipgloss.Right))
	assert.Equal(t, " ab ", fitCell("ab", 4, lipgloss.Center))
	assert.Equal(t, "abc", fitCell("abcdef", 3, lipgloss.Left))
	assert.Equal(t, "a b ", fitCell("a\nb", 4, lipgloss.Left))
}

func TestNewGridLastColumnAbsorbsWidth(t *testing.T) {
	g := newGrid(testGridColumns(), 60)
	// indent 2 + separators 3 + 6 + 16 + 14
	assert.Equal(t, 60-2-3-6-16-14, g.cols[3].Width)

	g = newGrid(testGridColumns(), 10)
	assert.Equal(t, 1, g.cols[3].Width)

	cols := testGridColumns()
	newGrid(cols, 60)
	assert.Equal(t, 10, cols[3].Width, "input columns are not modified")
}

func TestTableGridNoColumnsIsBlankLine(t *testing.T) {
	assert.Equal(t, "    ", TableGrid(nil, nil, 4))
}

func TestTableGridRuleUsesCrossings(t *testing.T) {
	out := SanitizeText(TableGrid(testGridColumns(), nil, 60))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 3, strings.Count(lines[1], "┼"))
	assert.Equal(t, 3, strings.Count(lines[0], "│"))
}
