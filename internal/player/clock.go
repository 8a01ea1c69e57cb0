package player

import (
	"sync"
	"time"
)

// Clock simulates a playback position for a track.
// It is safe for concurrent use: the poller reads it while the UI seeks.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	started  time.Time // wall time the current run began
	base     int64     // position in ms when the current run began
	paused   bool
	duration int64 // position is clamped to this when > 0
}

// NewClock creates a paused clock at position 0
func NewClock() *Clock {
	return newClockWithNow(time.Now)
}

func newClockWithNow(now func() time.Time) *Clock {
	return &Clock{
		now:    now,
		paused: true,
	}
}

// SetDuration sets the track length; 0 means unbounded
func (c *Clock) SetDuration(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = ms
}

// PositionMS returns the current playback position in milliseconds
func (c *Clock) PositionMS() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *Clock) position() int64 {
	pos := c.base
	if !c.paused {
		pos += c.now().Sub(c.started).Milliseconds()
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}

// Play starts or resumes playback
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.started = c.now()
	c.paused = false
}

// Pause freezes the position
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.base = c.position()
	c.paused = true
}

// Toggle switches between playing and paused, returning true if now playing
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()

	if paused {
		c.Play()
	} else {
		c.Pause()
	}
	return paused
}

// Paused reports whether the clock is paused
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Ended reports whether a bounded clock has reached its duration
func (c *Clock) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration > 0 && c.position() >= c.duration
}

// SeekTo jumps to an absolute position, clamped at 0
func (c *Clock) SeekTo(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms < 0 {
		ms = 0
	}
	if c.duration > 0 && ms > c.duration {
		ms = c.duration
	}
	c.base = ms
	c.started = c.now()
}

// SeekBy moves the position relative to where it is now
func (c *Clock) SeekBy(deltaMS int64) {
	c.mu.Lock()
	pos := c.position()
	c.mu.Unlock()

	c.SeekTo(pos + deltaMS)
}
