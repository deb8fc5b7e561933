package player

import (
	"sort"

	"lyricsync/internal/export"
	"lyricsync/internal/lyrics"
)

// Line is one lyric line as positioned in a window.
type Line struct {
	Index  int     `json:"index"`
	Time   float64 `json:"time"`
	Text   string  `json:"text"`
	Active bool    `json:"active"`
}

// Track is an immutable, time-sorted list of lyric lines.
type Track struct {
	entries []lyrics.Entry
}

// Load parses JSON export data into a track.
func Load(data []byte) (*Track, error) {
	entries, err := export.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return &Track{entries: entries}, nil
}

// NewTrack wraps already-sorted entries.
func NewTrack(entries []lyrics.Entry) *Track {
	copied := make([]lyrics.Entry, len(entries))
	copy(copied, entries)
	return &Track{entries: copied}
}

// Len returns the number of lines.
func (t *Track) Len() int { return len(t.entries) }

// Entries returns a copy of the track's lines.
func (t *Track) Entries() []lyrics.Entry {
	out := make([]lyrics.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Duration returns the start time of the last line.
func (t *Track) Duration() float64 {
	if len(t.entries) == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Time
}

// ActiveIndex returns the last line whose time is at or before position,
// or -1 before the first line.
func (t *Track) ActiveIndex(position float64) int {
	next := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Time > position
	})
	return next - 1
}

// Window returns up to before lines preceding and after lines following
// the active one. Before the first line the window starts at index 0.
func (t *Track) Window(position float64, before, after int) []Line {
	if len(t.entries) == 0 {
		return nil
	}
	before = max(before, 0)
	after = max(after, 0)

	active := t.ActiveIndex(position)
	anchor := max(active, 0)
	start := max(anchor-before, 0)
	end := min(anchor+after+1, len(t.entries))

	lines := make([]Line, 0, end-start)
	for i := start; i < end; i++ {
		entry := t.entries[i]
		lines = append(lines, Line{
			Index:  i,
			Time:   entry.Time,
			Text:   entry.Text,
			Active: i == active,
		})
	}
	return lines
}
