package lyrics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Store manages the ordered collection of captured entries for one session.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	entries []Entry
	nextID  uint64

	// editingID is the id of the entry open for editing, zero when none.
	editingID uint64

	lastCapture    float64
	hasLastCapture bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Len reports the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot returns a copy of the entries in time order.
func (s *Store) Snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the entry at the sorted position index.
func (s *Store) At(index int) (Entry, error) {
	if err := s.checkIndex(index); err != nil {
		return Entry{}, err
	}
	return s.entries[index], nil
}

// EditingIndex returns the sorted position of the entry open for editing.
func (s *Store) EditingIndex() (int, bool) {
	if s.editingID == 0 {
		return -1, false
	}
	idx := s.indexOf(s.editingID)
	if idx < 0 {
		return -1, false
	}
	return idx, true
}

// LastCaptureTime returns the time of the most recently captured entry.
// Edits and nudges do not move it.
func (s *Store) LastCaptureTime() (float64, bool) {
	return s.lastCapture, s.hasLastCapture
}

// Capture records text at currentTime, or commits the open edit when one
// exists. Blank text is rejected on both paths with ErrEmptyInput; a
// rejected edit commit leaves the edit open.
func (s *Store) Capture(text string, currentTime float64) (CaptureResult, error) {
	if s.editingID != 0 {
		return s.commitEdit(text)
	}
	return s.Append(text, currentTime)
}

// Append always creates a new entry, even while an edit is open.
func (s *Store) Append(text string, currentTime float64) (CaptureResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CaptureResult{}, ErrEmptyInput
	}

	entry := Entry{ID: s.nextID, Time: RoundTime(currentTime), Text: trimmed}
	s.nextID++

	result := CaptureResult{Entry: entry}
	if s.hasLastCapture {
		result.Delta = roundDelta(entry.Time - s.lastCapture)
		result.HasDelta = true
	}

	s.entries = append(s.entries, entry)
	s.lastCapture = entry.Time
	s.hasLastCapture = true
	s.sort()

	result.Index = s.indexOf(entry.ID)
	return result, nil
}

func (s *Store) commitEdit(text string) (CaptureResult, error) {
	idx := s.indexOf(s.editingID)
	if idx < 0 {
		s.editingID = 0
		return CaptureResult{}, ErrNoActiveEdit
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CaptureResult{}, ErrEmptyInput
	}
	s.entries[idx].Text = trimmed
	s.editingID = 0
	return CaptureResult{Entry: s.entries[idx], Index: idx, Edited: true}, nil
}

// StartEdit opens the entry at index for editing. Any other open edit is
// abandoned without saving. The returned entry pre-fills the caller's input.
func (s *Store) StartEdit(index int) (Entry, error) {
	if err := s.checkIndex(index); err != nil {
		return Entry{}, err
	}
	entry := s.entries[index]
	s.editingID = entry.ID
	return entry, nil
}

// CancelEdit closes the open edit without saving. It reports whether an
// edit was open.
func (s *Store) CancelEdit() bool {
	open := s.editingID != 0
	s.editingID = 0
	return open
}

// Nudge shifts the time of the entry open for editing by delta seconds and
// re-sorts. The edit stays on the same entry wherever it lands.
func (s *Store) Nudge(delta float64) (NudgeResult, error) {
	idx, ok := s.EditingIndex()
	if !ok {
		s.editingID = 0
		return NudgeResult{}, ErrNoActiveEdit
	}
	previous := s.entries[idx].Time
	s.entries[idx].Time = RoundTime(previous + delta)
	s.sort()

	idx = s.indexOf(s.editingID)
	return NudgeResult{Entry: s.entries[idx], Index: idx, Previous: previous}, nil
}

// Delete removes the entry at index once confirmed. Deleting the entry open
// for editing closes the edit; an edit on any other entry is kept.
func (s *Store) Delete(index int, confirmed bool) (Entry, error) {
	if err := s.checkIndex(index); err != nil {
		return Entry{}, err
	}
	if !confirmed {
		return Entry{}, ErrNotConfirmed
	}
	removed := s.entries[index]
	s.entries = slices.Delete(s.entries, index, index+1)
	if removed.ID == s.editingID {
		s.editingID = 0
	}
	return removed, nil
}

// Undo removes the most recently created entry regardless of where it sits
// in time order, and closes any open edit.
func (s *Store) Undo() (Entry, error) {
	if len(s.entries) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	newest := 0
	for i, entry := range s.entries {
		if entry.ID > s.entries[newest].ID {
			newest = i
		}
	}
	removed := s.entries[newest]
	s.entries = slices.Delete(s.entries, newest, newest+1)
	s.editingID = 0
	return removed, nil
}

// Clear removes every entry once confirmed and resets the capture cursor
// and edit state. It returns the number of entries removed.
func (s *Store) Clear(confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrNotConfirmed
	}
	removed := len(s.entries)
	s.entries = nil
	s.editingID = 0
	s.lastCapture = 0
	s.hasLastCapture = false
	return removed, nil
}

// sort orders entries by time. Equal times keep their prior relative order.
func (s *Store) sort() {
	slices.SortStableFunc(s.entries, func(a, b Entry) int {
		return cmp.Compare(a.Time, b.Time)
	})
}

func (s *Store) indexOf(id uint64) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("entry %d of %d: %w", index+1, len(s.entries), ErrIndexOutOfRange)
	}
	return nil
}

func roundDelta(delta float64) float64 {
	if delta < 0 {
		return -RoundTime(-delta)
	}
	return RoundTime(delta)
}
