package transport

import (
	"context"
	"math"
	"sync"
	"time"
)

// MaxPosition bounds seek targets so positions stay finite.
const MaxPosition = 359999.9

// Clock advances its position with wall time while playing.
//
// Clock is safe for concurrent use.
type Clock struct {
	mu        sync.Mutex
	now       func() time.Time
	base      float64
	startedAt time.Time
	playing   bool
	listeners []func(float64)
}

// ClockOption customizes a Clock.
type ClockOption func(*Clock)

// WithNow overrides the time source.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// WithStart sets the initial position in seconds.
func WithStart(seconds float64) ClockOption {
	return func(c *Clock) {
		c.base = clampPosition(seconds)
	}
}

// NewClock returns a paused clock at position zero.
func NewClock(opts ...ClockOption) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Position implements Transport.
func (c *Clock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Clock) positionLocked() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.startedAt).Seconds()
}

// Seek implements Transport. Negative positions clamp to zero.
func (c *Clock) Seek(seconds float64) {
	c.mu.Lock()
	c.base = clampPosition(seconds)
	c.startedAt = c.now()
	pos := c.base
	listeners := c.listenersLocked()
	c.mu.Unlock()
	notify(listeners, pos)
}

// Play implements Transport.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.startedAt = c.now()
	c.playing = true
}

// Pause implements Transport.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.base = c.positionLocked()
	c.playing = false
}

// Paused implements Transport.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.playing
}

// OnPositionChanged implements Transport.
func (c *Clock) OnPositionChanged(fn func(seconds float64)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Run emits the position to listeners every interval while playing, until
// ctx is done.
func (c *Clock) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick notifies listeners of the current position once if playing.
func (c *Clock) Tick() {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	pos := c.positionLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()
	notify(listeners, pos)
}

func (c *Clock) listenersLocked() []func(float64) {
	out := make([]func(float64), len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []func(float64), pos float64) {
	for _, fn := range listeners {
		fn(pos)
	}
}

func clampPosition(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	if seconds > MaxPosition {
		return MaxPosition
	}
	return seconds
}
