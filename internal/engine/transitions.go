package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/rep-runner/internal/workout"
)

// CompleteCurrentExercise ends the active exercise. The next stop is a rest
// phase, or Completed after the last exercise.
func (e *Engine) CompleteCurrentExercise() {
	e.do("complete exercise", e.completeExerciseLocked)
}

// SkipRest ends the rest phase early and starts the next exercise
func (e *Engine) SkipRest() { e.do("skip rest", e.skipRestLocked) }

// AdjustRestTimer moves the rest target of the running rest phase by
// deltaSeconds, clamped to the rest bounds. Time already rested is kept.
// The new length also becomes the session default for later rests.
func (e *Engine) AdjustRestTimer(deltaSeconds int) {
	// Any step beyond the widest rest lands on a bound anyway
	limit := int(e.settings.MaxRest / time.Second)
	deltaSeconds = min(max(deltaSeconds, -limit), limit)
	e.do("adjust rest", func(now time.Time) bool {
		return e.adjustRestLocked(now, time.Duration(deltaSeconds)*time.Second)
	})
}

// CompleteWorkout finishes the session early with completion cues
func (e *Engine) CompleteWorkout() {
	e.do("complete workout", func(now time.Time) bool {
		if !e.s.running() {
			return false
		}
		e.finishLocked(now, ReasonFinished)
		return true
	})
}

// AbandonWorkout ends the session without cues and drops queued ones
func (e *Engine) AbandonWorkout() {
	e.do("abandon", func(now time.Time) bool {
		if !e.s.running() {
			return false
		}
		e.finishLocked(now, ReasonAbandoned)
		return true
	})
}

// --- Private Methods (caller must hold mu) ---

func (e *Engine) startLocked(now time.Time) bool {
	s := e.s
	if s.phase != PhaseIdle {
		return false
	}
	s.id = uuid.NewString()
	s.sessionStart = now
	e.logger.Printf("Engine: Starting workout '%s' (%d exercises, session %s)",
		s.workout.Name, s.workout.ExerciseCount(), s.id)

	if s.workout.ExerciseCount() == 0 {
		e.finishLocked(now, ReasonFinished)
		return true
	}

	s.exerciseIndex = 0
	e.enterPhaseLocked(now, PhaseGetReady)
	e.speakLocked(fmt.Sprintf("Get ready. First up, %s", s.workout.Exercises[0].Name), PriorityHigh)
	return true
}

// enterPhaseLocked moves to phase and restarts the phase clock. Also used to
// switch between a set and the rest after it. A paused session stays paused.
func (e *Engine) enterPhaseLocked(now time.Time, phase Phase) {
	s := e.s
	s.sessionPaused += s.clock.pausedFor(now)
	s.clock.restart(now)
	s.phase = phase
	s.lastCountdown = 0
}

// advanceLocked handles a countdown reaching zero
func (e *Engine) advanceLocked(now time.Time) {
	s := e.s
	switch s.phase {
	case PhaseGetReady:
		e.startExerciseLocked(now, s.exerciseIndex)
	case PhaseRestBetweenExercises:
		e.startExerciseLocked(now, s.exerciseIndex+1)
	case PhaseExerciseActive:
		ex := s.exercise()
		switch {
		case s.restingBetweenSets:
			e.finishSetRestLocked(now)
		case ex != nil && ex.Config.IsSetBased():
			e.completeSetLocked(now)
		default:
			e.completeExerciseLocked(now)
		}
	}
}

// startExerciseLocked begins exercise i, or completes the workout when i is
// past the end
func (e *Engine) startExerciseLocked(now time.Time, i int) {
	s := e.s
	if i < 0 || i >= s.workout.ExerciseCount() {
		e.finishLocked(now, ReasonFinished)
		return
	}

	s.exerciseIndex = i
	s.restingBetweenSets = false
	s.currentSet = 1
	s.currentCount = 0
	s.currentReps = 0

	ex := &s.workout.Exercises[i]
	s.setRestDuration = ex.Config.SetRest(e.settings.SetRestDuration)
	e.enterPhaseLocked(now, PhaseExerciseActive)

	e.logger.Printf("Engine: Exercise %d/%d '%s' (%s)", i+1, s.workout.ExerciseCount(), ex.Name, ex.Config.Summary())
	e.emit(cue{kind: cueStart})
	e.speakLocked(announceExercise(ex, s.currentSet), PriorityHigh)
	e.hapticLocked(HapticMedium)
}

// startRestLocked begins the rest before exercise `before`, or completes the
// workout when there is no such exercise. The rest length comes from the
// exercise just finished, falling back to the session default.
func (e *Engine) startRestLocked(now time.Time, before int) {
	s := e.s
	if before >= s.workout.ExerciseCount() {
		e.finishLocked(now, ReasonFinished)
		return
	}
	if before > 0 {
		s.exerciseIndex = before - 1
	}

	s.restingBetweenSets = false
	s.phaseRest = s.workout.Exercises[s.exerciseIndex].RestDuration(s.restDuration)
	e.enterPhaseLocked(now, PhaseRestBetweenExercises)

	next := s.workout.Exercises[before].Name
	e.logger.Printf("Engine: Resting %v before '%s'", s.phaseRest, next)
	e.emit(cue{kind: cueDoneAndAnnounce, text: next})
	e.hapticLocked(HapticSuccess)
}

// finishLocked moves to Completed. Only a finished workout is announced.
func (e *Engine) finishLocked(now time.Time, reason CompletionReason) {
	s := e.s
	if span, ok := s.clock.resume(now); ok {
		s.sessionPaused += span
	}
	s.pausedBySuspend = false
	s.restingBetweenSets = false
	s.phase = PhaseCompleted
	s.reason = reason
	s.completedAt = &now
	s.clock.restart(now)
	s.lastCountdown = 0

	e.logger.Printf("Engine: Workout '%s' %s after %v", s.workout.Name, reason, s.totalElapsed(now).Round(time.Second))

	if reason == ReasonAbandoned {
		e.emit(cue{kind: cueCancel})
		return
	}
	e.emit(cue{kind: cueDone})
	e.speakLocked("Workout complete", PriorityHigh)
	e.hapticLocked(HapticSuccess)
}

func (e *Engine) completeExerciseLocked(now time.Time) bool {
	s := e.s
	if s.phase != PhaseExerciseActive {
		return false
	}
	e.startRestLocked(now, s.exerciseIndex+1)
	return true
}

func (e *Engine) skipRestLocked(now time.Time) bool {
	s := e.s
	if s.phase != PhaseRestBetweenExercises {
		return false
	}
	e.startExerciseLocked(now, s.exerciseIndex+1)
	return true
}

func (e *Engine) adjustRestLocked(now time.Time, delta time.Duration) bool {
	s := e.s
	if s.phase != PhaseRestBetweenExercises || s.isPaused() || delta == 0 {
		return false
	}
	rest := e.settings.ClampRest(s.phaseRest + delta)
	if rest == s.phaseRest && rest == s.restDuration {
		return false
	}
	s.phaseRest = rest
	s.restDuration = rest
	// Countdown cues may be due again if the target moved up
	s.lastCountdown = 0
	e.logger.Printf("Engine: Rest adjusted to %v (%v left)", rest, s.clock.remaining(rest, now).Round(time.Second))
	return true
}

// announceExercise is the spoken line at the start of an exercise or set
func announceExercise(ex *workout.Exercise, set int) string {
	parts := []string{ex.Name}
	cfg := ex.Config
	if cfg.IsSetBased() {
		parts = append(parts, fmt.Sprintf("set %d of %d", set, cfg.Sets()))
	}
	switch {
	case cfg.AutoCompletes():
		parts = append(parts, fmt.Sprintf("%d seconds", int(cfg.CountdownDuration().Seconds())))
	case cfg.CountsReps():
		parts = append(parts, fmt.Sprintf("%d reps", cfg.Target()))
	default:
		parts = append(parts, fmt.Sprintf("%d count", cfg.Target()))
	}
	return strings.Join(parts, ", ")
}
