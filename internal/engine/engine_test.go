package engine

import (
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/rep-runner/internal/workout"
)

func TestNew_PanicsOnMissingDependencies(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	assert.Panics(t, func() { New(Options{Logger: logger}) })
	assert.Panics(t, func() { New(Options{Workout: workoutOf()}) })
}

func TestEngine_GetReadyCountdown(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())

	te.Start()
	snap := te.Snapshot()
	assert.Equal(t, PhaseGetReady, snap.Phase)
	assert.Equal(t, 10*time.Second, snap.TimeRemaining)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, []string{"speak getReady:0 Get ready. First up, Plank"}, te.cues.Calls())

	te.advance(9 * time.Second)
	assert.Equal(t, PhaseGetReady, te.Snapshot().Phase)

	te.advance(time.Second)
	snap = te.Snapshot()
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 0, snap.ExerciseIndex)
	assert.Equal(t, 30*time.Second, snap.TimeRemaining)

	assert.Equal(t, []string{
		"tick 5 getReady:0", "haptic light",
		"tick 4 getReady:0", "haptic light",
		"tick 3 getReady:0", "haptic light",
		"tick 2 getReady:0", "haptic light",
		"tick 1 getReady:0", "haptic light",
		"start",
		"speak exercise:0 Plank, 30 seconds",
		"haptic medium",
	}, te.cues.Calls())
}

func TestEngine_TickCuedOncePerSecond(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
	te.Start()
	te.advance(5 * time.Second)

	te.Tick()
	te.clock.Advance(300 * time.Millisecond)
	te.Tick()

	assert.Equal(t, []string{"tick 5 getReady:0"}, te.cues.Filter("tick"))
}

func TestEngine_PauseResumeKeepsRemaining(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
	te.Start()
	te.advance(10 * time.Second)
	te.advance(12 * time.Second)
	require.Equal(t, 18*time.Second, te.Snapshot().TimeRemaining)

	te.Pause()
	te.clock.Advance(100 * time.Second)
	te.Tick()

	snap := te.Snapshot()
	assert.True(t, snap.IsPaused)
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 18*time.Second, snap.TimeRemaining)
	assert.Equal(t, 12*time.Second, snap.PhaseElapsed)

	te.Resume()
	assert.False(t, te.Snapshot().IsPaused)
	assert.Equal(t, 18*time.Second, te.Snapshot().TimeRemaining)

	// A second, shorter pause
	te.advance(3 * time.Second)
	te.TogglePause()
	te.clock.Advance(7 * time.Second)
	te.TogglePause()

	snap = te.Snapshot()
	assert.Equal(t, 15*time.Second, snap.PhaseElapsed)
	assert.Equal(t, 15*time.Second, snap.TimeRemaining)
	assert.Equal(t, 25*time.Second, snap.TotalElapsed)
}

func TestEngine_SuspensionMatchesManualPause(t *testing.T) {
	run := func(suspend bool) (Snapshot, *testEngine) {
		te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
		te.Start()
		te.advance(14 * time.Second)
		if suspend {
			te.OnSuspend()
		} else {
			te.Pause()
		}
		// No ticks happen while suspended
		te.clock.Advance(10 * time.Minute)
		if suspend {
			te.OnResume()
		} else {
			te.Resume()
		}
		return te.Snapshot(), te
	}

	manual, _ := run(false)
	suspended, te := run(true)

	assert.Equal(t, manual.TimeRemaining, suspended.TimeRemaining)
	assert.Equal(t, 26*time.Second, suspended.TimeRemaining)
	assert.False(t, suspended.IsPaused)
	require.NotNil(t, suspended.BackgroundDuration)

	away, ok := te.TakeBackgroundDuration()
	assert.True(t, ok)
	assert.Equal(t, 10*time.Minute, away)
	_, ok = te.TakeBackgroundDuration()
	assert.False(t, ok, "background duration is reported once")
}

func TestEngine_SuspendKeepsUserPause(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
	te.Start()
	te.advance(12 * time.Second)

	te.Pause()
	te.OnSuspend()
	te.clock.Advance(time.Hour)
	te.OnResume()

	snap := te.Snapshot()
	assert.True(t, snap.IsPaused)
	assert.Equal(t, 28*time.Second, snap.TimeRemaining)
	_, ok := te.TakeBackgroundDuration()
	assert.False(t, ok)
}

func TestEngine_SuspendBeforeStartIsIgnored(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
	te.OnSuspend()
	te.OnResume()
	assert.Equal(t, PhaseIdle, te.Snapshot().Phase)
	assert.Empty(t, te.cues.Calls())
}

func TestEngine_CountBasedNeverAutoCompletes(t *testing.T) {
	te := newTestEngine(t, workoutOf(counted("Squats", 10)), testSettings())
	te.Start()
	te.advance(10 * time.Second)
	te.cues.Calls()

	te.clock.Advance(24 * time.Hour)
	te.Tick()

	snap := te.Snapshot()
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.False(t, snap.HasCountdown())
	assert.Equal(t, 24*time.Hour, snap.PhaseElapsed)
	assert.Empty(t, te.cues.Filter("tick"))

	te.Increment(4)
	assert.Equal(t, 4, te.Snapshot().CurrentCount)
	te.Increment(100)
	assert.Equal(t, 10, te.Snapshot().CurrentCount)
	te.Decrement(3)
	assert.Equal(t, 7, te.Snapshot().CurrentCount)
	te.Decrement(100)
	assert.Equal(t, 0, te.Snapshot().CurrentCount)
	assert.Equal(t, 10, te.Snapshot().Target)

	te.CompleteCurrentExercise()
	assert.Equal(t, PhaseCompleted, te.Snapshot().Phase)
}

func TestEngine_CountSaturatesAtBounds(t *testing.T) {
	te := newTestEngine(t, workoutOf(counted("Squats", 10)), testSettings())
	te.Start()
	te.advance(10 * time.Second)

	te.Increment(3)
	te.Increment(math.MaxInt)
	assert.Equal(t, 10, te.Snapshot().CurrentCount)

	te.Decrement(math.MaxInt)
	assert.Equal(t, 0, te.Snapshot().CurrentCount)

	te.Increment(3)
	te.Increment(-2)
	te.Increment(0)
	te.Decrement(-2)
	te.Decrement(0)
	te.Increment(math.MinInt)
	te.Decrement(math.MinInt)
	assert.Equal(t, 3, te.Snapshot().CurrentCount)
}

func TestEngine_RepsUseRepCounter(t *testing.T) {
	te := newTestEngine(t, workoutOf(workout.Exercise{Name: "Dips", Config: workout.RepsOnly(12)}), testSettings())
	te.Start()
	te.advance(10 * time.Second)

	te.Increment(1)
	te.Increment(1)
	snap := te.Snapshot()
	assert.Equal(t, 2, snap.CurrentReps)
	assert.Equal(t, 0, snap.CurrentCount)
	assert.Equal(t, 2, snap.CurrentProgress())
}

func TestEngine_TimeBasedAutoCompletes(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 30), timed("B", 30)), testSettings())
	te.Start()
	te.advance(10 * time.Second)

	te.advance(29 * time.Second)
	assert.Equal(t, PhaseExerciseActive, te.Snapshot().Phase)
	te.cues.Calls()

	te.advance(time.Second)
	snap := te.Snapshot()
	assert.Equal(t, PhaseRestBetweenExercises, snap.Phase)
	assert.Equal(t, 0, snap.ExerciseIndex)
	assert.Equal(t, "B", snap.NextExercise.Name)
	assert.Equal(t, 45*time.Second, snap.TimeRemaining)
	assert.Equal(t, []string{"next B", "haptic success"}, te.cues.Calls())

	// Rest auto-completes into the next exercise
	te.advance(45 * time.Second)
	snap = te.Snapshot()
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 1, snap.ExerciseIndex)
	assert.Contains(t, te.cues.Filter("tick"), "tick 5 rest:0")
}

func TestEngine_IncrementIgnoredOnTimedExercise(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Plank", 30)), testSettings())
	te.Start()
	te.advance(10 * time.Second)

	te.Increment(1)
	te.CompleteCurrentSet()
	te.SkipRest()
	snap := te.Snapshot()
	assert.Equal(t, 0, snap.CurrentCount)
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 30*time.Second, snap.TimeRemaining)
}

func phaseRecorder(te *testEngine) *[]string {
	var ids []string
	te.OnPhaseChange(func(c PhaseChange) { ids = append(ids, c.ToID) })
	return &ids
}

func TestEngine_RepsSetsProgression(t *testing.T) {
	te := newTestEngine(t, workoutOf(
		workout.Exercise{Name: "Push-ups", Config: workout.RepsSets(8, 3)},
		counted("Cooldown", 1),
	), testSettings())
	ids := phaseRecorder(te)

	te.Start()
	te.advance(10 * time.Second)
	snap := te.Snapshot()
	assert.Equal(t, 1, snap.CurrentSet)
	assert.Equal(t, 3, snap.TotalSets)

	te.Increment(5)
	te.CompleteCurrentSet()
	snap = te.Snapshot()
	assert.True(t, snap.IsRestingBetweenSets)
	assert.Equal(t, 1, snap.CurrentSet)
	assert.Equal(t, 30*time.Second, snap.TimeRemaining)

	// Counting and set completion wait for the rest to end
	te.Increment(1)
	te.CompleteCurrentSet()
	assert.Equal(t, 5, te.Snapshot().CurrentReps)
	assert.True(t, te.Snapshot().IsRestingBetweenSets)

	te.advance(30 * time.Second)
	snap = te.Snapshot()
	assert.False(t, snap.IsRestingBetweenSets)
	assert.Equal(t, 2, snap.CurrentSet)
	assert.Equal(t, 0, snap.CurrentReps)

	te.CompleteCurrentSet()
	te.CompleteSetRest()
	assert.Equal(t, 3, te.Snapshot().CurrentSet)

	te.CompleteCurrentSet()
	snap = te.Snapshot()
	assert.Equal(t, PhaseRestBetweenExercises, snap.Phase)
	assert.False(t, snap.IsRestingBetweenSets)

	assert.Equal(t, []string{
		"getReady:0",
		"set:0:1",
		"setRest:0:1",
		"set:0:2",
		"setRest:0:2",
		"set:0:3",
		"rest:0",
	}, *ids)
}

func TestEngine_TimeSetsRunThemselves(t *testing.T) {
	te := newTestEngine(t, workoutOf(
		workout.Exercise{Name: "Sprints", Config: workout.TimeSets(20*time.Second, 2, workout.Seconds(10))},
	), testSettings())
	ids := phaseRecorder(te)

	te.Start()
	te.advance(10 * time.Second)
	te.advance(20 * time.Second)
	assert.True(t, te.Snapshot().IsRestingBetweenSets)
	assert.Equal(t, 10*time.Second, te.Snapshot().TimeRemaining)

	te.advance(10 * time.Second)
	te.advance(20 * time.Second)

	snap := te.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.Equal(t, ReasonFinished, snap.CompletionReason)
	assert.Equal(t, []string{"getReady:0", "set:0:1", "setRest:0:1", "set:0:2", "completed"}, *ids)

	ticks := te.cues.Filter("tick")
	assert.Contains(t, ticks, "tick 5 set:0:1")
	assert.Contains(t, ticks, "tick 5 setRest:0:1")
	assert.Contains(t, ticks, "tick 1 set:0:2")
}

func TestEngine_IndexPastEndCompletes(t *testing.T) {
	t.Run("rest", func(t *testing.T) {
		te := newTestEngine(t, workoutOf(counted("Squats", 10)), testSettings())
		ids := phaseRecorder(te)
		te.Start()
		te.advance(10 * time.Second)

		te.do("test", func(now time.Time) bool {
			te.startRestLocked(now, te.s.workout.ExerciseCount())
			return true
		})
		assert.Equal(t, PhaseCompleted, te.Snapshot().Phase)
		assert.Equal(t, []string{"getReady:0", "exercise:0", "completed"}, *ids)
	})

	t.Run("exercise", func(t *testing.T) {
		te := newTestEngine(t, workoutOf(counted("Squats", 10)), testSettings())
		te.Start()
		te.do("test", func(now time.Time) bool {
			te.startExerciseLocked(now, 7)
			return true
		})
		assert.Equal(t, PhaseCompleted, te.Snapshot().Phase)
	})
}

func TestEngine_AdjustRestTimer(t *testing.T) {
	toRest := func(t *testing.T) *testEngine {
		te := newTestEngine(t, workoutOf(timed("A", 5), timed("B", 5)), testSettings())
		te.Start()
		te.advance(15 * time.Second)
		require.Equal(t, PhaseRestBetweenExercises, te.Snapshot().Phase)
		return te
	}

	t.Run("clamps", func(t *testing.T) {
		te := toRest(t)
		te.AdjustRestTimer(1000)
		assert.Equal(t, 300*time.Second, te.Snapshot().RestDuration)
		assert.Equal(t, 300*time.Second, te.Snapshot().PhaseDuration)

		te.AdjustRestTimer(-1000)
		assert.Equal(t, 15*time.Second, te.Snapshot().RestDuration)
	})

	t.Run("saturates extreme steps", func(t *testing.T) {
		te := toRest(t)
		te.AdjustRestTimer(10_000_000_000)
		assert.Equal(t, 300*time.Second, te.Snapshot().RestDuration)

		te.AdjustRestTimer(math.MinInt)
		assert.Equal(t, 15*time.Second, te.Snapshot().RestDuration)

		te.AdjustRestTimer(math.MaxInt)
		assert.Equal(t, 300*time.Second, te.Snapshot().RestDuration)
	})

	t.Run("keeps elapsed rest", func(t *testing.T) {
		te := toRest(t)
		te.advance(10 * time.Second)
		te.AdjustRestTimer(15)

		snap := te.Snapshot()
		assert.Equal(t, 60*time.Second, snap.PhaseDuration)
		assert.Equal(t, 10*time.Second, snap.PhaseElapsed)
		assert.Equal(t, 50*time.Second, snap.TimeRemaining)
	})

	t.Run("ignored while paused", func(t *testing.T) {
		te := toRest(t)
		te.Pause()
		te.AdjustRestTimer(15)
		assert.Equal(t, 45*time.Second, te.Snapshot().PhaseDuration)
	})

	t.Run("ignored outside rest", func(t *testing.T) {
		te := newTestEngine(t, workoutOf(timed("A", 5), timed("B", 5)), testSettings())
		te.Start()
		te.AdjustRestTimer(60)
		assert.Equal(t, 45*time.Second, te.Snapshot().RestDuration)
	})
}

func TestEngine_RestOverrideFromExercise(t *testing.T) {
	a := timed("A", 5)
	a.RestAfter = workout.Seconds(90)
	te := newTestEngine(t, workoutOf(a, timed("B", 5)), testSettings())
	te.Start()
	te.advance(15 * time.Second)

	snap := te.Snapshot()
	assert.Equal(t, PhaseRestBetweenExercises, snap.Phase)
	assert.Equal(t, 90*time.Second, snap.TimeRemaining)
}

func TestEngine_TwoExerciseScenario(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("Ex1", 5), counted("Ex2", 3)), testSettings())
	ids := phaseRecorder(te)

	te.Start()
	assert.Equal(t, PhaseGetReady, te.Snapshot().Phase)

	te.advance(10 * time.Second)
	assert.Equal(t, PhaseExerciseActive, te.Snapshot().Phase)

	te.advance(5 * time.Second)
	snap := te.Snapshot()
	assert.Equal(t, PhaseRestBetweenExercises, snap.Phase)
	assert.Equal(t, 45*time.Second, snap.TimeRemaining)

	te.SkipRest()
	snap = te.Snapshot()
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 1, snap.ExerciseIndex)
	assert.Equal(t, 0.5, snap.Progress())

	te.Increment(1)
	te.Increment(1)
	te.Increment(1)
	assert.Equal(t, 3, te.Snapshot().CurrentCount)

	te.CompleteCurrentExercise()
	snap = te.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.Equal(t, 1.0, snap.Progress())
	assert.Equal(t, 15*time.Second, snap.TotalElapsed)

	assert.Equal(t, []string{"getReady:0", "exercise:0", "rest:0", "exercise:1", "completed"}, *ids)
	assert.Contains(t, te.cues.Filter("speak"), "speak completed Workout complete")
}

func TestEngine_PausedTransitionStaysPaused(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 5), timed("B", 5)), testSettings())
	te.Start()
	te.advance(15 * time.Second)

	te.Pause()
	te.SkipRest()
	te.clock.Advance(20 * time.Second)

	snap := te.Snapshot()
	assert.Equal(t, PhaseExerciseActive, snap.Phase)
	assert.Equal(t, 1, snap.ExerciseIndex)
	assert.True(t, snap.IsPaused)
	assert.Equal(t, 5*time.Second, snap.TimeRemaining)

	te.Resume()
	te.advance(5 * time.Second)
	snap = te.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.False(t, snap.IsPaused)
	assert.Equal(t, 20*time.Second, snap.TotalElapsed)
}

func TestEngine_PanickingDispatcherDoesNotStopEngine(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 5), timed("B", 5)), testSettings())
	te.cues.panicOn = "start"

	te.Start()
	te.advance(10 * time.Second)

	assert.Equal(t, PhaseExerciseActive, te.Snapshot().Phase)
	assert.Contains(t, te.cues.Filter("haptic"), "haptic medium", "cues after the failed one still go out")
	assert.Contains(t, te.logBuf.String(), "recovered panic: speaker unplugged")

	te.advance(5 * time.Second)
	assert.Equal(t, PhaseRestBetweenExercises, te.Snapshot().Phase)
}

func TestEngine_AbandonEmitsNoCompletionCues(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 30)), testSettings())
	te.Start()
	te.advance(12 * time.Second)
	te.cues.Calls()

	te.AbandonWorkout()
	snap := te.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.Equal(t, ReasonAbandoned, snap.CompletionReason)
	assert.Equal(t, []string{"cancel"}, te.cues.Calls())
	assert.Equal(t, 12*time.Second, snap.TotalElapsed)

	// Total time stays frozen at the abandon instant
	te.advance(30 * time.Second)
	te.Start()
	te.Resume()
	assert.Empty(t, te.cues.Calls())
	assert.Equal(t, 12*time.Second, te.Snapshot().TotalElapsed)
}

func TestEngine_CompleteWorkoutAnnounces(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 30), timed("B", 30)), testSettings())
	te.Start()
	te.advance(10 * time.Second)
	te.cues.Calls()

	te.CompleteWorkout()
	assert.Equal(t, ReasonFinished, te.Snapshot().CompletionReason)
	assert.Equal(t, []string{"done", "speak completed Workout complete", "haptic success"}, te.cues.Calls())
}

func TestEngine_OutOfPhaseCallsAreNoOps(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 30)), testSettings())

	te.Pause()
	te.Resume()
	te.SkipRest()
	te.CompleteCurrentExercise()
	te.CompleteCurrentSet()
	te.CompleteSetRest()
	te.AdjustRestTimer(15)
	te.Increment(1)
	te.Decrement(1)
	te.AbandonWorkout()
	te.CompleteWorkout()
	te.Tick()

	snap := te.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.SessionID)
	assert.Empty(t, te.cues.Calls())
}

func TestEngine_EmptyWorkoutCompletesOnStart(t *testing.T) {
	te := newTestEngine(t, workoutOf(), testSettings())
	te.Start()

	snap := te.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.Equal(t, ReasonFinished, snap.CompletionReason)
	assert.Equal(t, 1.0, snap.Progress())
}

func TestEngine_ListenToState(t *testing.T) {
	te := newTestEngine(t, workoutOf(timed("A", 30)), testSettings())

	ch := make(chan Snapshot, 8)
	unregister := te.ListenToState(ch)
	defer unregister()

	idle := <-ch
	assert.Equal(t, PhaseIdle, idle.Phase)

	te.Start()
	select {
	case snap := <-ch:
		assert.Equal(t, PhaseGetReady, snap.Phase)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after Start")
	}
}

func TestEngine_VoicesFollowPhaseKind(t *testing.T) {
	settings := testSettings()
	settings.Voices = map[PhaseKind]VoiceProfile{
		KindGetReady: "calm",
		KindExercise: "coach",
	}
	te := newTestEngine(t, workoutOf(timed("A", 30)), settings)
	te.Start()
	te.advance(10 * time.Second)

	te.cues.mu.Lock()
	defer te.cues.mu.Unlock()
	assert.Equal(t, []VoiceProfile{"calm", "coach"}, te.cues.voices)
}

func TestEngine_TickLoopDrivesPhases(t *testing.T) {
	settings := DefaultSettings()
	settings.GetReadyDuration = 50 * time.Millisecond
	settings.TickInterval = 5 * time.Millisecond

	e := New(Options{
		Workout:  workoutOf(counted("Squats", 10)),
		Settings: settings,
		Logger:   log.New(io.Discard, "", 0),
	})
	defer e.Shutdown()

	e.Start()
	require.Eventually(t, func() bool {
		return e.Snapshot().Phase == PhaseExerciseActive
	}, 2*time.Second, 5*time.Millisecond)

	e.Pause()
	e.Resume()
	e.AbandonWorkout()
	assert.Equal(t, PhaseCompleted, e.Snapshot().Phase)

	e.Shutdown()
	e.Shutdown()
}

func TestSettings_Normalized(t *testing.T) {
	s := Settings{RestDuration: 10 * time.Minute}.normalized()
	assert.Equal(t, MaxRestDuration, s.RestDuration)
	assert.Equal(t, DefaultGetReadyDuration, s.GetReadyDuration)
	assert.Equal(t, DefaultTickInterval, s.TickInterval)
	assert.Equal(t, DefaultCountdownFrom, s.CountdownFrom)

	s = Settings{RestDuration: time.Second}.normalized()
	assert.Equal(t, MinRestDuration, s.RestDuration)
}

func TestSnapshot_Formatting(t *testing.T) {
	assert.Equal(t, "00:00", FormatMMSS(0))
	assert.Equal(t, "01:05", FormatMMSS(65*time.Second))
	assert.Equal(t, "60:05", FormatMMSS(time.Hour+5*time.Second))

	snap := Snapshot{TimeRemaining: 4200 * time.Millisecond, TotalElapsed: 125 * time.Second, ExerciseIndex: 1, ExerciseCount: 4}
	assert.Equal(t, "00:05", snap.RemainingMMSS())
	assert.Equal(t, "02:05", snap.ElapsedMMSS())
	assert.Equal(t, 0.25, snap.Progress())
}
