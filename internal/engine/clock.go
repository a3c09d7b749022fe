package engine

import (
	"math"
	"time"
)

// Clock is the engine's source of wall-clock time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// phaseClock derives elapsed time in the current phase from absolute
// timestamps. Nothing is accumulated per tick, so missed ticks (suspension,
// a starved goroutine) cost nothing: the next read is exact.
type phaseClock struct {
	phaseStart       time.Time
	pausedAt         *time.Time
	accumulatedPause time.Duration
}

// restart marks entry into a new phase. A clock that is paused stays paused,
// with the pause now counted from the phase start.
func (c *phaseClock) restart(now time.Time) {
	c.phaseStart = now
	c.accumulatedPause = 0
	if c.pausedAt != nil {
		c.pausedAt = &now
	}
}

func (c *phaseClock) isPaused() bool {
	return c.pausedAt != nil
}

// pause freezes the clock. Returns false if it was already paused.
func (c *phaseClock) pause(now time.Time) bool {
	if c.pausedAt != nil {
		return false
	}
	c.pausedAt = &now
	return true
}

// resume unfreezes the clock and returns the length of the pause
func (c *phaseClock) resume(now time.Time) (time.Duration, bool) {
	if c.pausedAt == nil {
		return 0, false
	}
	span := now.Sub(*c.pausedAt)
	if span < 0 {
		span = 0
	}
	c.accumulatedPause += span
	c.pausedAt = nil
	return span, true
}

// pausedFor returns how long the current pause has lasted
func (c *phaseClock) pausedFor(now time.Time) time.Duration {
	if c.pausedAt == nil {
		return 0
	}
	if d := now.Sub(*c.pausedAt); d > 0 {
		return d
	}
	return 0
}

// elapsed = (now - phaseStart) - accumulatedPause, read at the pause instant
// while paused
func (c *phaseClock) elapsed(now time.Time) time.Duration {
	if c.pausedAt != nil {
		now = *c.pausedAt
	}
	e := now.Sub(c.phaseStart) - c.accumulatedPause
	if e < 0 {
		return 0
	}
	return e
}

// remaining = max(0, duration - elapsed)
func (c *phaseClock) remaining(duration time.Duration, now time.Time) time.Duration {
	r := duration - c.elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// ceilSeconds rounds a duration up to whole seconds, so 4.2s reads as 5
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
