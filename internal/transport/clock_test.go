package transport_test

import (
	"math"
	"testing"
	"time"

	"lyricsync/internal/transport"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestClockAdvancesOnlyWhilePlaying(t *testing.T) {
	fc := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	clock := transport.NewClock(transport.WithNow(fc.Now))

	if !clock.Paused() {
		t.Fatal("expected new clock to be paused")
	}
	fc.Advance(5 * time.Second)
	if got := clock.Position(); got != 0 {
		t.Fatalf("paused clock moved to %v", got)
	}

	clock.Play()
	fc.Advance(1500 * time.Millisecond)
	if got := clock.Position(); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}

	clock.Pause()
	fc.Advance(10 * time.Second)
	if got := clock.Position(); got != 1.5 {
		t.Fatalf("expected position frozen at 1.5, got %v", got)
	}
}

func TestClockSeekNotifiesListeners(t *testing.T) {
	fc := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	clock := transport.NewClock(transport.WithNow(fc.Now), transport.WithStart(3))

	var seen []float64
	clock.OnPositionChanged(func(pos float64) { seen = append(seen, pos) })

	clock.Seek(-4)
	clock.Seek(12.5)
	clock.Play()
	fc.Advance(2 * time.Second)
	clock.Tick()

	want := []float64{0, 12.5, 14.5}
	if len(seen) != len(want) {
		t.Fatalf("got %v want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v want %v", seen, want)
		}
	}
}

func TestClockSeekClampsToFiniteRange(t *testing.T) {
	clock := transport.NewClock()
	clock.Seek(1e308)
	if got := clock.Position(); got != transport.MaxPosition {
		t.Fatalf("expected %v, got %v", transport.MaxPosition, got)
	}
	clock.Seek(math.NaN())
	if got := clock.Position(); got != 0 {
		t.Fatalf("expected NaN seek to land at 0, got %v", got)
	}
	clock = transport.NewClock(transport.WithStart(math.Inf(1)))
	if got := clock.Position(); math.IsInf(got, 0) || got != transport.MaxPosition {
		t.Fatalf("expected start clamp, got %v", got)
	}
}

func TestToggle(t *testing.T) {
	clock := transport.NewClock()
	if playing := transport.Toggle(clock); !playing || clock.Paused() {
		t.Fatal("expected toggle to start playback")
	}
	if playing := transport.Toggle(clock); playing || !clock.Paused() {
		t.Fatal("expected toggle to pause playback")
	}
}
