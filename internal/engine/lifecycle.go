package engine

import "time"

// OnSuspend is called when the host goes to the background. A running,
// unpaused session is paused and the moment recorded; the pause is undone
// by OnResume.
func (e *Engine) OnSuspend() {
	e.do("suspend", func(now time.Time) bool {
		s := e.s
		if !s.running() || !s.clock.pause(now) {
			return false
		}
		s.backgroundedAt = &now
		s.pausedBySuspend = true
		e.logger.Printf("Engine: Suspended in %s", s.phaseID())
		return true
	})
}

// OnResume is called when the host returns to the foreground. It records
// how long the host was away and resumes the session if the suspension
// paused it. A pause the user made stays in place.
func (e *Engine) OnResume() {
	e.do("foreground", func(now time.Time) bool {
		s := e.s
		changed := false
		if s.backgroundedAt != nil {
			away := now.Sub(*s.backgroundedAt)
			s.backgroundDuration = &away
			s.backgroundedAt = nil
			changed = true
			e.logger.Printf("Engine: Back after %v", away.Round(time.Second))
		}
		if s.pausedBySuspend && s.running() {
			if span, ok := s.clock.resume(now); ok {
				s.sessionPaused += span
			}
			s.pausedBySuspend = false
			changed = true
		}
		if changed {
			// Recompute from the wall clock rather than replaying missed ticks
			e.tickLocked(now)
		}
		return changed
	})
}

// TakeBackgroundDuration returns how long the host was last in the
// background, once. Hosts use it for a "welcome back" message.
func (e *Engine) TakeBackgroundDuration() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.s.backgroundDuration
	e.s.backgroundDuration = nil
	if d == nil {
		return 0, false
	}
	return *d, true
}
