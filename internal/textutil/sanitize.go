package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(NormalizeLine(name))
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// ExportFileName builds "Artist - Title.ext" from LRC header fields.
// Missing parts are skipped; with neither present the base is "lyrics".
// The extension is lowercased and may be given with or without a dot.
func ExportFileName(title, artist, ext string) string {
	parts := make([]string, 0, 2)
	if a := SanitizeFileName(artist); a != "" {
		parts = append(parts, a)
	}
	if t := SanitizeFileName(title); t != "" {
		parts = append(parts, t)
	}
	base := strings.Join(parts, " - ")
	if base == "" {
		base = "lyrics"
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return base
	}
	return base + "." + cases.Lower(language.Und).String(ext)
}
