package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLine returns text in NFC form on a single line: line breaks and
// other control characters become spaces and surrounding whitespace is
// trimmed. A CRLF pair becomes one space; other interior spacing is kept.
func NormalizeLine(text string) string {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// NormalizeBlock normalizes a multi-line paste while keeping its line
// breaks so the staging buffer can still split it.
func NormalizeBlock(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = NormalizeLine(line)
	}
	return strings.Join(lines, "\n")
}
