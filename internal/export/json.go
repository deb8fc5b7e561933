package export

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"lyricsync/internal/lyrics"
)

type jsonEntry struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

// JSON encodes entries as an indented array of {"time","text"} objects.
func JSON(entries []lyrics.Entry) (string, error) {
	if len(entries) == 0 {
		return "", lyrics.ErrEmptyExportSet
	}
	payload := make([]jsonEntry, len(entries))
	for i, entry := range entries {
		payload[i] = jsonEntry{Time: entry.Time, Text: entry.Text}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encode lyrics json: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ParseJSON loads the player-mode JSON shape. Unparseable input yields
// lyrics.ErrMalformedJSON; anything other than a non-empty array of entries
// yields lyrics.ErrInvalidImport. The result is sorted by time with file
// order kept for equal times, and IDs follow file order.
func ParseJSON(data []byte) ([]lyrics.Entry, error) {
	if !json.Valid(data) {
		return nil, &lyrics.Error{Kind: lyrics.KindMalformedJSON, Message: malformedDetail(data)}
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, lyrics.ErrInvalidImport
	}

	var raw []jsonEntry
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &lyrics.Error{
			Kind:    lyrics.KindInvalidImport,
			Message: fmt.Sprintf("%s: %v", lyrics.ErrInvalidImport.Message, err),
		}
	}
	if len(raw) == 0 {
		return nil, lyrics.ErrInvalidImport
	}

	entries := make([]lyrics.Entry, len(raw))
	for i, item := range raw {
		entries[i] = lyrics.Entry{ID: uint64(i + 1), Time: item.Time, Text: item.Text}
	}
	slices.SortStableFunc(entries, func(a, b lyrics.Entry) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return entries, nil
}

func malformedDetail(data []byte) string {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Sprintf("%s: %v", lyrics.ErrMalformedJSON.Message, err)
	}
	return lyrics.ErrMalformedJSON.Message
}
