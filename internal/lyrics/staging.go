package lyrics

import (
	"fmt"
	"slices"
	"strings"
)

// Staging holds pasted lines until each is promoted into a Store.
type Staging struct {
	lines []StagedLine
}

// NewStaging returns an empty staging buffer.
func NewStaging() *Staging {
	return &Staging{}
}

// SplitLines breaks raw pasted text into trimmed, non-blank lines in their
// original order.
func SplitLines(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Stage appends the lines of a multi-line paste to the buffer. A paste that
// yields fewer than two lines is not staged and ok is false; callers treat
// a single line as ordinary input.
func (b *Staging) Stage(raw string) (staged []StagedLine, ok bool) {
	lines := SplitLines(raw)
	if len(lines) <= 1 {
		return nil, false
	}
	staged = make([]StagedLine, 0, len(lines))
	for _, line := range lines {
		staged = append(staged, StagedLine{Text: line})
	}
	b.lines = append(b.lines, staged...)
	return staged, true
}

// Lines returns a copy of the staged lines.
func (b *Staging) Lines() []StagedLine {
	out := make([]StagedLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len reports the number of staged lines.
func (b *Staging) Len() int {
	return len(b.lines)
}

// Promote removes the staged line at index and captures it into store at
// currentTime as a new entry. Other staged lines are untouched. If the
// store rejects the line, the buffer is left unchanged.
func (b *Staging) Promote(index int, store *Store, currentTime float64) (CaptureResult, error) {
	if err := b.checkIndex(index); err != nil {
		return CaptureResult{}, err
	}
	result, err := store.Append(b.lines[index].Text, currentTime)
	if err != nil {
		return CaptureResult{}, err
	}
	b.lines = slices.Delete(b.lines, index, index+1)
	return result, nil
}

// Discard removes the staged line at index without promoting it.
func (b *Staging) Discard(index int) (StagedLine, error) {
	if err := b.checkIndex(index); err != nil {
		return StagedLine{}, err
	}
	removed := b.lines[index]
	b.lines = slices.Delete(b.lines, index, index+1)
	return removed, nil
}

// Clear drops every staged line and returns how many were dropped.
func (b *Staging) Clear() int {
	n := len(b.lines)
	b.lines = nil
	return n
}

func (b *Staging) checkIndex(index int) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("staged line %d of %d: %w", index+1, len(b.lines), ErrIndexOutOfRange)
	}
	return nil
}
