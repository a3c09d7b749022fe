package engine

import (
	"time"

	"github.com/lowaak/rep-runner/internal/workout"
)

// Phase is the top-level state of an execution session
type Phase int

const (
	PhaseIdle Phase = iota // Not started
	PhaseGetReady
	PhaseExerciseActive
	PhaseRestBetweenExercises
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseGetReady:
		return "Get Ready"
	case PhaseExerciseActive:
		return "Exercise"
	case PhaseRestBetweenExercises:
		return "Rest"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// CompletionReason tells a finished workout from an abandoned one
type CompletionReason int

const (
	ReasonNone CompletionReason = iota
	ReasonFinished
	ReasonAbandoned
)

func (r CompletionReason) String() string {
	switch r {
	case ReasonFinished:
		return "finished"
	case ReasonAbandoned:
		return "abandoned"
	default:
		return ""
	}
}

// session is the mutable state of one workout run. Owned by Engine and only
// touched with Engine.mu held.
type session struct {
	id      string
	workout *workout.Workout
	phase   Phase

	exerciseIndex      int
	restingBetweenSets bool
	currentSet         int
	currentCount       int
	currentReps        int

	sessionStart  time.Time
	completedAt   *time.Time
	sessionPaused time.Duration // Pause time of finished phases and resumed pauses
	clock         phaseClock

	backgroundedAt     *time.Time
	backgroundDuration *time.Duration
	pausedBySuspend    bool

	restDuration    time.Duration // Session default, already clamped
	phaseRest       time.Duration // Target of the running rest phase
	setRestDuration time.Duration // Rest between sets of the current exercise

	lastCountdown int // Last second a tick cue went out for in this phase
	reason        CompletionReason
}

// running reports whether the session is between Start and Completed
func (s *session) running() bool {
	switch s.phase {
	case PhaseGetReady, PhaseExerciseActive, PhaseRestBetweenExercises:
		return true
	default:
		return false
	}
}

func (s *session) isPaused() bool {
	return s.clock.isPaused()
}

// exercise returns the exercise at the current index, nil if out of range
func (s *session) exercise() *workout.Exercise {
	if s.exerciseIndex < 0 || s.exerciseIndex >= s.workout.ExerciseCount() {
		return nil
	}
	return &s.workout.Exercises[s.exerciseIndex]
}

func (s *session) nextExercise() *workout.Exercise {
	i := s.exerciseIndex + 1
	if s.phase == PhaseGetReady {
		i = s.exerciseIndex
	}
	if i < 0 || i >= s.workout.ExerciseCount() {
		return nil
	}
	return &s.workout.Exercises[i]
}

// phaseDuration is the countdown target of the current phase, 0 when the
// phase has no countdown
func (s *session) phaseDuration(settings Settings) time.Duration {
	switch s.phase {
	case PhaseGetReady:
		return settings.GetReadyDuration
	case PhaseRestBetweenExercises:
		return s.phaseRest
	case PhaseExerciseActive:
		if s.restingBetweenSets {
			return s.setRestDuration
		}
		if ex := s.exercise(); ex != nil {
			return ex.Config.CountdownDuration()
		}
	}
	return 0
}

// countsDown reports whether the current phase ends on its own when its
// countdown reaches zero
func (s *session) countsDown() bool {
	switch s.phase {
	case PhaseGetReady, PhaseRestBetweenExercises:
		return true
	case PhaseExerciseActive:
		if s.restingBetweenSets {
			return true
		}
		if ex := s.exercise(); ex != nil {
			return ex.Config.AutoCompletes()
		}
	}
	return false
}

func (s *session) phaseKind() PhaseKind {
	switch s.phase {
	case PhaseGetReady:
		return KindGetReady
	case PhaseRestBetweenExercises:
		return KindRest
	case PhaseExerciseActive:
		ex := s.exercise()
		switch {
		case s.restingBetweenSets:
			return KindSetRest
		case ex != nil && ex.Config.IsSetBased():
			return KindSet
		default:
			return KindExercise
		}
	case PhaseCompleted:
		return KindCompleted
	}
	return ""
}

func (s *session) phaseID() string {
	switch s.phaseKind() {
	case KindGetReady:
		return getReadyPhaseID()
	case KindRest:
		return restPhaseID(s.exerciseIndex)
	case KindSetRest:
		return setRestPhaseID(s.exerciseIndex, s.currentSet)
	case KindSet:
		return setPhaseID(s.exerciseIndex, s.currentSet)
	case KindExercise:
		return exercisePhaseID(s.exerciseIndex)
	case KindCompleted:
		return completedPhaseID()
	}
	return ""
}

// totalElapsed is workout time excluding every pause, frozen at completion
func (s *session) totalElapsed(now time.Time) time.Duration {
	if s.phase == PhaseIdle {
		return 0
	}
	end := now
	if s.completedAt != nil {
		end = *s.completedAt
	}
	d := end.Sub(s.sessionStart) - s.sessionPaused - s.clock.pausedFor(end)
	if d < 0 {
		return 0
	}
	return d
}
