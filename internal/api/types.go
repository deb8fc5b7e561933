package api

import (
	"lyricsync/internal/lyrics"
	"lyricsync/internal/session"
)

// StatusResponse describes session counters and playback state.
type StatusResponse struct {
	SessionID    string   `json:"sessionId"`
	Entries      int      `json:"entries"`
	Staged       int      `json:"staged"`
	EditingIndex *int     `json:"editingIndex"`
	LastCapture  *float64 `json:"lastCapture"`
	Position     float64  `json:"position"`
	Paused       bool     `json:"paused"`
	BlindMode    bool     `json:"blindMode"`
}

// EntryRow is one captured entry. Text is empty when Hidden is set.
type EntryRow struct {
	Index   int     `json:"index"`
	Time    float64 `json:"time"`
	Text    string  `json:"text"`
	Editing bool    `json:"editing"`
	Hidden  bool    `json:"hidden"`
}

// EntriesResponse wraps the entry rows.
type EntriesResponse struct {
	Entries []EntryRow `json:"entries"`
}

// Entry is a bare time/text pair.
type Entry struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

// CaptureRequest carries typed text.
type CaptureRequest struct {
	Text string `json:"text"`
}

// CaptureResponse reports a committed capture or edit.
type CaptureResponse struct {
	Entry  Entry    `json:"entry"`
	Index  int      `json:"index"`
	Edited bool     `json:"edited"`
	Delta  *float64 `json:"delta,omitempty"`
}

// PasteRequest carries pasted text.
type PasteRequest struct {
	Text string `json:"text"`
}

// StagedResponse lists staged lines.
type StagedResponse struct {
	Staged bool     `json:"staged"`
	Lines  []string `json:"lines"`
}

// NudgeRequest shifts the edited entry by Delta seconds, or by Steps
// multiples of the configured step when Delta is absent.
type NudgeRequest struct {
	Delta *float64 `json:"delta,omitempty"`
	Steps int      `json:"steps,omitempty"`
}

// NudgeResponse reports the nudged entry.
type NudgeResponse struct {
	Entry    Entry   `json:"entry"`
	Index    int     `json:"index"`
	Previous float64 `json:"previous"`
}

// CancelResponse reports whether an edit was open.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// RemovedResponse reports removed entries.
type RemovedResponse struct {
	Removed int    `json:"removed"`
	Entry   *Entry `json:"entry,omitempty"`
}

// TransportRequest drives playback. Action is play, pause, toggle, or seek.
// A seek takes either Position in seconds or an entry Index; seeking to an
// entry also starts playback.
type TransportRequest struct {
	Action   string   `json:"action"`
	Position *float64 `json:"position,omitempty"`
	Index    *int     `json:"index,omitempty"`
}

// TransportResponse reports playback state after a transport action.
type TransportResponse struct {
	Position float64 `json:"position"`
	Paused   bool    `json:"paused"`
}

// BlindRequest toggles blind mode.
type BlindRequest struct {
	Enabled bool `json:"enabled"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// FromStatus converts a session status.
func FromStatus(status session.Status) StatusResponse {
	return StatusResponse{
		SessionID:    status.SessionID,
		Entries:      status.Entries,
		Staged:       status.Staged,
		EditingIndex: status.EditingIndex,
		LastCapture:  status.LastCapture,
		Position:     status.Position,
		Paused:       status.Paused,
		BlindMode:    status.BlindMode,
	}
}

// FromRows converts session rows.
func FromRows(rows []session.Row) []EntryRow {
	out := make([]EntryRow, len(rows))
	for i, row := range rows {
		out[i] = EntryRow{
			Index:   row.Index,
			Time:    row.Time,
			Text:    row.Text,
			Editing: row.Editing,
			Hidden:  row.Hidden,
		}
	}
	return out
}

// FromEntry converts a lyric entry.
func FromEntry(entry lyrics.Entry) Entry {
	return Entry{Time: entry.Time, Text: entry.Text}
}

// FromCapture converts a capture result.
func FromCapture(result lyrics.CaptureResult) CaptureResponse {
	resp := CaptureResponse{
		Entry:  FromEntry(result.Entry),
		Index:  result.Index,
		Edited: result.Edited,
	}
	if result.HasDelta {
		delta := result.Delta
		resp.Delta = &delta
	}
	return resp
}

// FromStaged converts staged lines.
func FromStaged(lines []lyrics.StagedLine, staged bool) StagedResponse {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text
	}
	return StagedResponse{Staged: staged, Lines: out}
}
