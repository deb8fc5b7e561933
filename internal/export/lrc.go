package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lyricsync/internal/lyrics"
)

// LRC renders entries as a line-timed lyric file with [ti:] and [ar:] tags.
// Blank header fields fall back to placeholder values.
func LRC(entries []lyrics.Entry, header LRCHeader) (string, error) {
	if len(entries) == 0 {
		return "", lyrics.ErrEmptyExportSet
	}
	title := strings.TrimSpace(header.Title)
	if title == "" {
		title = defaultLRCTitle
	}
	artist := strings.TrimSpace(header.Artist)
	if artist == "" {
		artist = defaultLRCArtist
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[ti:%s]\n[ar:%s]\n\n", title, artist)
	for _, entry := range entries {
		b.WriteByte('[')
		b.WriteString(FormatLRCTime(entry.Time))
		b.WriteByte(']')
		b.WriteString(entry.Text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FormatLRCTime formats seconds as M:SS.ss. Minutes are not padded.
func FormatLRCTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(math.Floor(seconds / 60))
	secs := strconv.FormatFloat(math.Mod(seconds, 60), 'f', 2, 64)
	if len(secs) < 5 {
		secs = strings.Repeat("0", 5-len(secs)) + secs
	}
	return strconv.Itoa(minutes) + ":" + secs
}
