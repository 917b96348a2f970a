package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := SanitizeText(Hint("r", "Retry"))
	assert.Equal(t, "Retry  r ", out)
}

func TestStatusBarEmpty(t *testing.T) {
	assert.Equal(t, "", StatusBar(nil, 80))
}

func TestStatusBarRendersHints(t *testing.T) {
	out := SanitizeText(StatusBar([]string{Hint("q", "Quit"), Hint("e", "Edit")}, 0))
	assert.Contains(t, out, "Quit")
	assert.Contains(t, out, "Edit")
	for _, line := range strings.Split(out, "\n") {
		assert.True(t, strings.HasPrefix(line, "  "), "line %q", line)
	}
}

func TestStatusBarWrapsWithinWidth(t *testing.T) {
	hints := []string{
		Hint("↑/↓", "Select"),
		Hint("e", "Edit"),
		Hint("?", "Help"),
		Hint("q", "Quit"),
	}
	out := StatusBar(hints, 30)
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 3)
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	rows := wrapSegments([]string{"123456", "abcdef", "ghijkl"}, 10)
	assert.Equal(t, []string{"123456", "abcdef", "ghijkl"}, rows)

	rows = wrapSegments([]string{"ab", "cd", "ef"}, 4)
	assert.Equal(t, []string{"abcd", "ef"}, rows)
}

func TestWrapSegmentsOversizedSegmentGetsOwnRow(t *testing.T) {
	rows := wrapSegments([]string{"a", "0123456789", "b"}, 4)
	assert.Equal(t, []string{"a", "0123456789", "b"}, rows)
}

func TestWrapSegmentsUnknownWidthIsOneRow(t *testing.T) {
	rows := wrapSegments([]string{"ab", "cd"}, 0)
	assert.Equal(t, []string{"abcd"}, rows)
}
