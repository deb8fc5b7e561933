package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"lyricsync/internal/export"
	"lyricsync/internal/lyrics"
)

// WriteTrack writes entries to path in the JSON export format.
func WriteTrack(t testing.TB, path string, entries []lyrics.Entry) {
	t.Helper()

	data, err := export.JSON(entries)
	if err != nil {
		t.Fatalf("render track: %v", err)
	}
	WriteFile(t, path, data)
}

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
