package transport

// Transport is the playback surface the lyric core depends on.
type Transport interface {
	// Position returns the current playback position in seconds.
	Position() float64
	Seek(seconds float64)
	Play()
	Pause()
	Paused() bool
	// OnPositionChanged registers a display-only position listener.
	OnPositionChanged(fn func(seconds float64))
}

// Toggle flips t between playing and paused and reports whether it is now
// playing.
func Toggle(t Transport) bool {
	if t.Paused() {
		t.Play()
		return true
	}
	t.Pause()
	return false
}
