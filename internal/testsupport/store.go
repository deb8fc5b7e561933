package testsupport

import (
	"testing"

	"lyricsync/internal/lyrics"
)

// Line is a text/time pair used to seed stores.
type Line struct {
	Text string
	Time float64
}

// SeedStore returns a store with the provided lines captured in order.
func SeedStore(t testing.TB, lines ...Line) *lyrics.Store {
	t.Helper()

	store := lyrics.NewStore()
	for _, line := range lines {
		if _, err := store.Append(line.Text, line.Time); err != nil {
			t.Fatalf("seed %q at %v: %v", line.Text, line.Time, err)
		}
	}
	return store
}

// SampleEntries returns a small sorted track for exporter and player tests.
func SampleEntries() []lyrics.Entry {
	return []lyrics.Entry{
		{ID: 1, Time: 1.0, Text: "first line"},
		{ID: 2, Time: 4.0, Text: "second line"},
		{ID: 3, Time: 10.0, Text: "third line"},
	}
}
