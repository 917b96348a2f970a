package components

import (
	"regexp"
	"strings"
	"unicode"
)

// escapePattern matches CSI sequences (ESC [ ... final byte) and OSC
// sequences (ESC ] ... terminated by BEL or ST).
var escapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// SanitizeText makes server-provided text safe to print: escape sequences,
// bidi overrides and control characters are removed. Newlines and tabs stay.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		return dropUnprintable(r)
	}, escapePattern.ReplaceAllString(input, ""))
}

// SanitizeOneLine is SanitizeText for table cells and labels: line breaks
// and tabs become spaces and the result is trimmed.
func SanitizeOneLine(input string) string {
	if input == "" {
		return input
	}
	input = strings.ReplaceAll(input, "\r\n", " ")
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return dropUnprintable(r)
	}, escapePattern.ReplaceAllString(input, ""))
	return strings.TrimSpace(cleaned)
}

func dropUnprintable(r rune) rune {
	if unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r) {
		return -1
	}
	return r
}
