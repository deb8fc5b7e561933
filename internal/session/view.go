package session

import (
	"lyricsync/internal/export"
	"lyricsync/internal/logging"
	"lyricsync/internal/lyrics"
)

// Row is one entry as presented to a user.
type Row struct {
	Index   int
	Time    float64
	Text    string
	Editing bool
	Hidden  bool
}

// Status summarizes a session for status lines and /api/status.
type Status struct {
	SessionID    string
	Entries      int
	Staged       int
	EditingIndex *int
	LastCapture  *float64
	Position     float64
	Paused       bool
	BlindMode    bool
}

// Rows returns the entries in order. In blind mode the text of every row is
// withheld; timing and editing state remain visible.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	editing, isEditing := s.store.EditingIndex()
	entries := s.store.Snapshot()
	rows := make([]Row, len(entries))
	for i, entry := range entries {
		rows[i] = Row{
			Index:   i,
			Time:    entry.Time,
			Text:    entry.Text,
			Editing: isEditing && editing == i,
			Hidden:  s.blind,
		}
		if s.blind {
			rows[i].Text = ""
		}
	}
	return rows
}

// Status returns the current counters and playback state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		SessionID: s.id,
		Entries:   s.store.Len(),
		Staged:    s.staging.Len(),
		Position:  s.transport.Position(),
		Paused:    s.transport.Paused(),
		BlindMode: s.blind,
	}
	if idx, ok := s.store.EditingIndex(); ok {
		status.EditingIndex = &idx
	}
	if last, ok := s.store.LastCaptureTime(); ok {
		status.LastCapture = &last
	}
	return status
}

// Export renders the captured entries in format using the session's export
// options. Blind mode does not affect exports.
func (s *Session) Export(format export.Format) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.Snapshot()
	out, err := export.Render(format, entries, s.exportOpt)
	if err != nil {
		s.rejected("export", err)
		return "", err
	}
	s.logger.Info("entries exported",
		logging.String(logging.FieldEventType, "export_rendered"),
		logging.String("format", string(format)),
		logging.Int("entries", len(entries)),
	)
	return out, nil
}

// ExportHeader returns the LRC header exports use.
func (s *Session) ExportHeader() export.LRCHeader {
	return s.exportOpt.Header
}

// Entry returns entry index.
func (s *Session) Entry(index int) (lyrics.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.At(index)
}
