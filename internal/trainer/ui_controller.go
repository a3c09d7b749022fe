package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
	"github.com/lowaak/rep-runner/internal/workout"
)

// UIControllerArgs holds the arguments for creating a new UIController
type UIControllerArgs struct {
	Model    *UIModel
	Settings engine.Settings
	Cues     engine.CueDispatcher // Shared by every engine the controller creates
	Haptics  engine.HapticSink
	Clock    engine.Clock // nil uses the system clock
	Prefs    *PrefsStore  // Optional
	Logger   *log.Logger
}

// UIController handles UI events, owns the engine of the selected workout
// and mirrors its state into the UIModel
type UIController struct {
	model    *UIModel
	settings engine.Settings
	cues     engine.CueDispatcher
	haptics  engine.HapticSink
	clock    engine.Clock
	prefs    *PrefsStore
	logger   *log.Logger

	mu           sync.Mutex
	engine       *engine.Engine
	detachEngine func()
	sessionMu    sync.Mutex // Serializes model session updates

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewUIController creates a new UIController with the given dependencies.
// The preferred rest and last workout from Prefs are applied here.
func NewUIController(args UIControllerArgs) *UIController {
	if args.Model == nil {
		panic("UIController: model cannot be nil")
	}
	if args.Logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UIController{
		model:    args.Model,
		settings: args.Settings,
		cues:     args.Cues,
		haptics:  args.Haptics,
		clock:    args.Clock,
		prefs:    args.Prefs,
		logger:   args.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	if c.prefs != nil {
		if rest, ok := c.prefs.PreferredRest(); ok {
			c.logger.Printf("UIController: Using preferred rest %s", rest)
			c.settings.RestDuration = rest
		}
	}
	if c.settings.RestDuration > 0 {
		c.model.SetRestDuration(c.settings.RestDuration)
	}
	if c.prefs != nil {
		if name := c.prefs.LastWorkout(); name != "" {
			if w, ok := c.model.SelectWorkoutByName(name); ok {
				c.logger.Printf("UIController: Restored last workout %s", name)
				c.loadWorkout(w)
			}
		}
	}

	return c
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// --- Workout Selection Methods ---

// OnWorkoutSelected handles when a workout is selected from the list.
// A session in progress on another workout is abandoned.
func (c *UIController) OnWorkoutSelected(index int) {
	w, ok := c.model.SelectWorkout(index)
	if !ok {
		c.logger.Printf("Invalid workout index: %d", index)
		return
	}
	c.logger.Printf("Workout selected: %s", w.Name)
	c.loadWorkout(w)
	c.model.SetMode(UIModeWorkoutDashboard)
}

// --- Session Methods ---

// ToggleWorkout starts an idle session, restarts a completed one, and
// otherwise pauses or resumes
func (c *UIController) ToggleWorkout() {
	eng := c.currentEngine()
	if eng == nil {
		c.logger.Printf("No workout loaded - select one in Workout Selection mode (press 1)")
		return
	}

	switch snap := eng.Snapshot(); snap.Phase {
	case engine.PhaseIdle:
		c.startWorkout(eng)
	case engine.PhaseCompleted:
		w := eng.Workout()
		c.logger.Printf("Restarting %s", w.Name)
		c.startWorkout(c.loadWorkout(w))
	default:
		eng.TogglePause()
	}
}

// CompleteExercise ends a manual exercise
func (c *UIController) CompleteExercise() {
	c.withEngine(func(eng *engine.Engine) { eng.CompleteCurrentExercise() })
}

// NextSet completes the current set, or ends the rest between sets early
func (c *UIController) NextSet() {
	c.withEngine(func(eng *engine.Engine) {
		if eng.Snapshot().IsRestingBetweenSets {
			eng.CompleteSetRest()
			return
		}
		eng.CompleteCurrentSet()
	})
}

// SkipRest ends the rest between exercises
func (c *UIController) SkipRest() {
	c.withEngine(func(eng *engine.Engine) { eng.SkipRest() })
}

// IncreaseRest lengthens the current rest by one step
func (c *UIController) IncreaseRest() {
	c.adjustRest(1)
}

// DecreaseRest shortens the current rest by one step
func (c *UIController) DecreaseRest() {
	c.adjustRest(-1)
}

// IncrementCount adds to the count or reps of a manual exercise
func (c *UIController) IncrementCount() {
	c.withEngine(func(eng *engine.Engine) { eng.Increment(CountStep) })
}

// DecrementCount takes from the count or reps of a manual exercise
func (c *UIController) DecrementCount() {
	c.withEngine(func(eng *engine.Engine) { eng.Decrement(CountStep) })
}

// FinishWorkout ends the session as finished
func (c *UIController) FinishWorkout() {
	c.withEngine(func(eng *engine.Engine) { eng.CompleteWorkout() })
}

// AbandonWorkout ends the session without finishing it
func (c *UIController) AbandonWorkout() {
	c.withEngine(func(eng *engine.Engine) { eng.AbandonWorkout() })
}

// Background tells the engine the app left the foreground
func (c *UIController) Background() {
	c.withEngine(func(eng *engine.Engine) { eng.OnSuspend() })
}

// Foreground tells the engine the app is back and reports the time away
func (c *UIController) Foreground() {
	c.withEngine(func(eng *engine.Engine) {
		eng.OnResume()
		if away, ok := eng.TakeBackgroundDuration(); ok {
			c.logger.Printf("Welcome back! You were away for %s", engine.FormatMMSS(away))
		}
	})
}

// Shutdown stops the engine and the snapshot forwarder
func (c *UIController) Shutdown() {
	c.logger.Println("UIController: Shutting down")
	c.mu.Lock()
	eng, detach := c.engine, c.detachEngine
	c.engine, c.detachEngine = nil, nil
	c.mu.Unlock()

	if detach != nil {
		detach()
	}
	if eng != nil {
		eng.Shutdown()
	}
	c.cancel()
	c.wg.Wait()
	c.logger.Println("UIController: Shutdown complete")
}

// Snapshot returns the current state of the loaded session, read from the
// engine rather than the model so it reflects operations just issued
func (c *UIController) Snapshot() engine.Snapshot {
	if eng := c.currentEngine(); eng != nil {
		return eng.Snapshot()
	}
	return c.model.GetSession()
}

// --- Private Methods ---

func (c *UIController) currentEngine() *engine.Engine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine
}

func (c *UIController) withEngine(fn func(eng *engine.Engine)) {
	eng := c.currentEngine()
	if eng == nil {
		c.logger.Printf("No workout loaded - select one in Workout Selection mode (press 1)")
		return
	}
	fn(eng)
}

func (c *UIController) startWorkout(eng *engine.Engine) {
	w := eng.Workout()
	c.logger.Printf("Starting %s (%d exercises)", w.Name, w.ExerciseCount())
	if c.prefs != nil {
		c.prefs.SetLastWorkout(w.Name)
	}
	eng.Start()
}

// adjustRest shifts the running rest by sign steps. The new length also
// becomes the preferred rest for later sessions.
func (c *UIController) adjustRest(sign int) {
	c.withEngine(func(eng *engine.Engine) {
		before := eng.Snapshot()
		step := eng.Settings().RestStep
		eng.AdjustRestTimer(sign * int(step/time.Second))

		after := eng.Snapshot()
		if after.Phase != engine.PhaseRestBetweenExercises || after.RestDuration == before.RestDuration {
			return
		}
		c.logger.Printf("Rest set to %s", engine.FormatMMSS(after.RestDuration))

		c.mu.Lock()
		c.settings.RestDuration = after.RestDuration
		c.mu.Unlock()
		c.model.SetRestDuration(after.RestDuration)
		if c.prefs != nil {
			c.prefs.SetPreferredRest(after.RestDuration)
		}
	})
}

// loadWorkout replaces the current engine with a fresh one for w
func (c *UIController) loadWorkout(w *workout.Workout) *engine.Engine {
	c.mu.Lock()
	old, detachOld := c.engine, c.detachEngine
	settings := c.settings
	c.mu.Unlock()

	if old != nil {
		if snap := old.Snapshot(); snap.Phase != engine.PhaseIdle && snap.Phase != engine.PhaseCompleted {
			c.logger.Printf("Abandoning %s", snap.WorkoutName)
			old.AbandonWorkout()
		}
		detachOld()
		old.Shutdown()
	}

	eng := engine.New(engine.Options{
		Workout:  w,
		Settings: settings,
		Cues:     c.cues,
		Haptics:  c.haptics,
		Clock:    c.clock,
		Logger:   c.logger,
	})
	detach := c.attachEngine(eng)

	c.mu.Lock()
	c.engine, c.detachEngine = eng, detach
	c.mu.Unlock()

	c.publishSession(eng)
	return eng
}

// attachEngine forwards engine state into the model until the returned
// function is called. Each notification triggers a fresh read so a dropped
// notification never leaves the model behind.
func (c *UIController) attachEngine(eng *engine.Engine) func() {
	stateChan := make(chan engine.Snapshot, 1)
	unregisterState := eng.ListenToState(stateChan)
	unregisterPhase := eng.OnPhaseChange(func(change engine.PhaseChange) { c.onPhaseChange(eng, change) })

	done := make(chan struct{})
	go_func_utils.SafeGoWG(c.logger, &c.wg, func() {
		for {
			select {
			case <-c.ctx.Done():
				return
			case <-done:
				return
			case <-stateChan:
				c.publishSession(eng)
			}
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unregisterState()
			unregisterPhase()
			close(done)
		})
	}
}

// publishSession copies the state of eng into the model, unless another
// engine has replaced it in the meantime
func (c *UIController) publishSession(eng *engine.Engine) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	if c.currentEngine() != eng {
		return
	}
	c.model.SetSession(eng.Snapshot())
}

func (c *UIController) onPhaseChange(eng *engine.Engine, change engine.PhaseChange) {
	from := change.FromID
	if from == "" {
		from = change.From.String()
	}
	c.logger.Printf("Phase: %s -> %s at %s", from, change.ToID, engine.FormatMMSS(change.Elapsed))
	if change.To != engine.PhaseCompleted {
		return
	}
	switch eng.Snapshot().CompletionReason {
	case engine.ReasonAbandoned:
		c.logger.Printf("Workout abandoned after %s", engine.FormatMMSS(change.Elapsed))
	default:
		c.logger.Printf("Workout complete in %s", engine.FormatMMSS(change.Elapsed))
	}
}
