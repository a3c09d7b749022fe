package engine

import (
	"fmt"
	"time"
)

// Increment raises the count (or reps) of a manual exercise by `by`,
// capped at the target. `by` must be positive.
func (e *Engine) Increment(by int) {
	e.do("increment", func(time.Time) bool { return by > 0 && e.adjustProgressLocked(by) })
}

// Decrement lowers the count (or reps) of a manual exercise by `by`,
// floored at zero. `by` must be positive.
func (e *Engine) Decrement(by int) {
	e.do("decrement", func(time.Time) bool { return by > 0 && e.adjustProgressLocked(-by) })
}

// CompleteCurrentSet ends the current set. The last set completes the
// exercise, earlier ones start the rest between sets.
func (e *Engine) CompleteCurrentSet() { e.do("complete set", e.completeSetLocked) }

// CompleteSetRest ends the rest between sets early and starts the next set
func (e *Engine) CompleteSetRest() {
	e.do("complete set rest", func(now time.Time) bool {
		s := e.s
		if s.phase != PhaseExerciseActive || !s.restingBetweenSets {
			return false
		}
		e.finishSetRestLocked(now)
		return true
	})
}

// --- Private Methods (caller must hold mu) ---

func (e *Engine) adjustProgressLocked(delta int) bool {
	s := e.s
	if delta == 0 || s.phase != PhaseExerciseActive || s.restingBetweenSets {
		return false
	}
	ex := s.exercise()
	if ex == nil || !ex.Config.IsManual() {
		return false
	}

	counter := &s.currentCount
	if ex.Config.CountsReps() {
		counter = &s.currentReps
	}
	// The counter stays in [0, target], so comparing against the distance
	// to either bound cannot overflow
	v := *counter
	switch target := ex.Config.Target(); {
	case delta > 0 && delta >= target-v:
		v = target
	case delta < 0 && -delta >= v:
		v = 0
	default:
		v += delta
	}
	if v == *counter {
		return false
	}
	*counter = v
	return true
}

func (e *Engine) completeSetLocked(now time.Time) bool {
	s := e.s
	if s.phase != PhaseExerciseActive || s.restingBetweenSets {
		return false
	}
	ex := s.exercise()
	if ex == nil || !ex.Config.IsSetBased() {
		return false
	}
	if s.currentSet >= ex.Config.Sets() {
		return e.completeExerciseLocked(now)
	}

	s.restingBetweenSets = true
	e.enterPhaseLocked(now, PhaseExerciseActive)

	e.logger.Printf("Engine: Set %d/%d of '%s' done, resting %v", s.currentSet, ex.Config.Sets(), ex.Name, s.setRestDuration)
	e.emit(cue{kind: cueDone})
	e.speakLocked(fmt.Sprintf("Set %d complete. Rest", s.currentSet), PriorityNormal)
	e.hapticLocked(HapticSuccess)
	return true
}

func (e *Engine) finishSetRestLocked(now time.Time) {
	s := e.s
	ex := s.exercise()
	s.restingBetweenSets = false
	s.currentSet++
	s.currentReps = 0
	s.currentCount = 0
	e.enterPhaseLocked(now, PhaseExerciseActive)

	e.emit(cue{kind: cueStart})
	if ex != nil {
		e.speakLocked(announceExercise(ex, s.currentSet), PriorityHigh)
	}
	e.hapticLocked(HapticMedium)
}
