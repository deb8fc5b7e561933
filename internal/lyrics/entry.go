package lyrics

import "math"

// Entry is one lyric line anchored to a playback instant.
type Entry struct {
	// ID is the creation order of the entry within its Store. It is never
	// serialized and never reused.
	ID   uint64  `json:"-"`
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

// StagedLine is a pasted line that has not been given a timestamp yet.
type StagedLine struct {
	Text string `json:"text"`
}

// CaptureResult describes the outcome of Capture, Append, or a staged
// line promotion.
type CaptureResult struct {
	Entry Entry
	// Index is the position of Entry in the sorted sequence after the call.
	Index int
	// Edited is true when the call committed an open edit instead of
	// creating an entry.
	Edited bool
	// Delta is the time since the previous capture, valid when HasDelta.
	Delta    float64
	HasDelta bool
}

// NudgeResult describes the outcome of Nudge.
type NudgeResult struct {
	Entry    Entry
	Index    int
	Previous float64
}

// MaxTime is the largest entry time, just under 100 hours.
const MaxTime = 359999.9

// RoundTime rounds seconds to the 0.1s capture precision and clamps the
// result to [0, MaxTime].
func RoundTime(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	if seconds >= MaxTime {
		return MaxTime
	}
	rounded := math.Round(seconds*10) / 10
	if rounded <= 0 {
		return 0
	}
	return rounded
}
