package engine

import (
	"fmt"
	"time"

	"github.com/lowaak/rep-runner/internal/workout"
)

// Snapshot is a read-only copy of the session, published after every change
type Snapshot struct {
	SessionID   string
	WorkoutName string
	Phase       Phase
	PhaseID     string

	ExerciseIndex int
	ExerciseCount int
	Exercise      *workout.Exercise // nil when Idle or Completed
	NextExercise  *workout.Exercise

	IsRestingBetweenSets bool
	CurrentSet           int
	TotalSets            int
	CurrentCount         int
	CurrentReps          int
	Target               int

	PhaseDuration time.Duration // 0 for phases without a countdown
	PhaseElapsed  time.Duration
	TimeRemaining time.Duration
	TotalElapsed  time.Duration

	IsPaused           bool
	BackgroundDuration *time.Duration

	RestDuration     time.Duration
	SetRestDuration  time.Duration
	CompletionReason CompletionReason
}

// Progress is the completed fraction of the workout, exerciseIndex / exerciseCount
func (s Snapshot) Progress() float64 {
	if s.Phase == PhaseCompleted {
		return 1
	}
	if s.ExerciseCount == 0 {
		return 0
	}
	return float64(s.ExerciseIndex) / float64(s.ExerciseCount)
}

// HasCountdown reports whether the phase shown runs a countdown
func (s Snapshot) HasCountdown() bool {
	return s.PhaseDuration > 0
}

// RemainingSeconds rounds the remaining time up, so the display reaches 0
// exactly when the phase is due
func (s Snapshot) RemainingSeconds() int {
	return ceilSeconds(s.TimeRemaining)
}

// RemainingMMSS formats the remaining phase time as mm:ss
func (s Snapshot) RemainingMMSS() string {
	return FormatMMSS(time.Duration(s.RemainingSeconds()) * time.Second)
}

// ElapsedMMSS formats the total workout time as mm:ss
func (s Snapshot) ElapsedMMSS() string {
	return FormatMMSS(s.TotalElapsed)
}

// CurrentProgress returns the manual counter that applies to the current
// exercise, reps or count
func (s Snapshot) CurrentProgress() int {
	if s.Exercise != nil && s.Exercise.Config.CountsReps() {
		return s.CurrentReps
	}
	return s.CurrentCount
}

// FormatMMSS formats a duration as MM:SS, truncating to whole seconds
func FormatMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// buildSnapshot MUST be called with mu held
func (e *Engine) buildSnapshot(now time.Time) Snapshot {
	s := e.s
	snap := Snapshot{
		SessionID:            s.id,
		WorkoutName:          s.workout.Name,
		Phase:                s.phase,
		PhaseID:              s.phaseID(),
		ExerciseIndex:        s.exerciseIndex,
		ExerciseCount:        s.workout.ExerciseCount(),
		IsRestingBetweenSets: s.restingBetweenSets,
		CurrentSet:           s.currentSet,
		TotalSets:            1,
		CurrentCount:         s.currentCount,
		CurrentReps:          s.currentReps,
		TotalElapsed:         s.totalElapsed(now),
		IsPaused:             s.isPaused(),
		RestDuration:         s.restDuration,
		SetRestDuration:      s.setRestDuration,
		CompletionReason:     s.reason,
	}
	if s.backgroundDuration != nil {
		d := *s.backgroundDuration
		snap.BackgroundDuration = &d
	}

	if !s.running() {
		return snap
	}

	if ex := s.exercise(); ex != nil && s.phase != PhaseGetReady {
		snap.Exercise = ex
		snap.TotalSets = ex.Config.Sets()
		snap.Target = ex.Config.Target()
	}
	snap.NextExercise = s.nextExercise()
	if s.phase == PhaseRestBetweenExercises {
		snap.RestDuration = s.phaseRest
	}

	snap.PhaseElapsed = s.clock.elapsed(now)
	if s.countsDown() {
		snap.PhaseDuration = s.phaseDuration(e.settings)
		snap.TimeRemaining = s.clock.remaining(snap.PhaseDuration, now)
	}
	return snap
}
