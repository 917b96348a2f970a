package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const confirmDialogWidth = 40

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(1, 2).
	Width(confirmDialogWidth)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := accentStyle.Render(title)
	body := mutedStyle.Render(message)
	hint := mutedStyle.Render("\ny: confirm | n: cancel")

	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// FormField is one labeled row of a FormDialog. Value is rendered as given,
// so it may carry a live input view with its cursor.
type FormField struct {
	Label   string
	Value   string
	Focused bool
}

// FormDialog renders a titled form: an optional error line, the fields in
// order with the focused one marked, and a footer line.
func FormDialog(title string, fields []FormField, errText, footer string, width int) string {
	var b strings.Builder
	if errText != "" {
		b.WriteString(dangerStyle.Render(SanitizeOneLine(errText)))
		b.WriteString("\n\n")
	}
	for i, f := range fields {
		label := SanitizeOneLine(f.Label) + ":"
		if f.Focused {
			b.WriteString(accentStyle.Render("> " + label))
		} else {
			b.WriteString(mutedStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(f.Value)
		if i < len(fields)-1 {
			b.WriteString("\n\n")
		}
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(footer))
	}
	return TitledBox(title, b.String(), width)
}
