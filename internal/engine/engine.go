package engine

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/rep-runner/internal/events"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
	"github.com/lowaak/rep-runner/internal/workout"
)

// loopCommand is sent to the tick goroutine
type loopCommand int

const (
	// cmdResync makes the loop start, stop or re-align its ticker to match
	// the current session
	cmdResync loopCommand = iota
)

// Options carries the collaborators of an Engine
type Options struct {
	Workout  *workout.Workout
	Settings Settings // Zero fields take their defaults
	Cues     CueDispatcher
	Haptics  HapticSink
	Clock    Clock
	Logger   *log.Logger
}

// PhaseChange describes one transition between phases or sub-phases
type PhaseChange struct {
	From    Phase
	FromID  string
	To      Phase
	ToID    string
	Elapsed time.Duration // Total workout time at the transition
}

// Engine runs one workout session. All operations are safe for concurrent
// use, never block on collaborators, and silently ignore calls that do not
// apply to the current phase.
type Engine struct {
	settings Settings
	cues     CueDispatcher
	haptics  HapticSink
	clock    Clock
	logger   *log.Logger

	// Session state (protected by mu)
	mu           sync.RWMutex
	s            *session
	pending      []cue
	tickerWanted bool

	stateEvent *events.ChannelEvent[Snapshot]
	phaseEvent *events.CallbackEvent[PhaseChange]

	// Goroutine management
	cmdChan      chan loopCommand
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// opResult is what a locked operation leaves to be done after unlocking
type opResult struct {
	changed bool
	resync  bool
	cues    []cue
	change  *PhaseChange
}

// New creates an Engine for the workout and starts its tick goroutine.
// The session stays Idle until Start.
func New(opts Options) *Engine {
	if opts.Workout == nil {
		panic("Engine: workout cannot be nil")
	}
	if opts.Logger == nil {
		panic("Engine: logger cannot be nil")
	}

	settings := opts.Settings.normalized()
	e := &Engine{
		settings: settings,
		cues:     opts.Cues,
		haptics:  opts.Haptics,
		clock:    opts.Clock,
		logger:   opts.Logger,
		s: &session{
			workout:         opts.Workout,
			phase:           PhaseIdle,
			currentSet:      1,
			restDuration:    settings.RestDuration,
			setRestDuration: settings.SetRestDuration,
		},
		stateEvent: events.NewChannelEvent[Snapshot](true),
		phaseEvent: events.NewCallbackEvent[PhaseChange](false),
		cmdChan:    make(chan loopCommand, 1),
		doneChan:   make(chan struct{}),
	}
	if e.cues == nil {
		e.cues = noopCues{}
	}
	if e.haptics == nil {
		e.haptics = noopCues{}
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}

	e.stateEvent.Notify(e.buildSnapshot(e.clock.Now()))

	go_func_utils.SafeGoWG(e.logger, &e.wg, e.runTickLoop)

	return e
}

// Settings returns the normalized settings the engine runs with
func (e *Engine) Settings() Settings {
	return e.settings
}

// Workout returns the workout being executed
func (e *Engine) Workout() *workout.Workout {
	return e.s.workout
}

// Snapshot returns the current observable state
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buildSnapshot(e.clock.Now())
}

// ListenToState registers ch for snapshots. The latest snapshot is sent
// right away. Slow listeners miss values rather than block the engine.
func (e *Engine) ListenToState(ch chan<- Snapshot) func() {
	return e.stateEvent.Listen(ch)
}

// OnPhaseChange registers fn to be called after every phase or sub-phase
// transition, outside the engine lock
func (e *Engine) OnPhaseChange(fn func(PhaseChange)) func() {
	return e.phaseEvent.Listen(fn)
}

// Start leaves Idle for GetReady. An empty workout completes at once.
func (e *Engine) Start() { e.do("start", e.startLocked) }

// Pause freezes the phase clock and stops the tick loop
func (e *Engine) Pause() { e.do("pause", e.pauseLocked) }

// Resume continues a paused session from where it stopped
func (e *Engine) Resume() { e.do("resume", e.resumeLocked) }

// TogglePause pauses a running session or resumes a paused one
func (e *Engine) TogglePause() {
	e.do("toggle pause", func(now time.Time) bool {
		if e.s.isPaused() {
			return e.resumeLocked(now)
		}
		return e.pauseLocked(now)
	})
}

// Tick recomputes the current phase from the wall clock and advances it
// when due. The tick goroutine calls the same logic once per interval.
func (e *Engine) Tick() { e.do("tick", e.tickLocked) }

// Shutdown stops the tick goroutine
// Safe to call multiple times - only the first call has effect
func (e *Engine) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.logger.Printf("Engine: Shutting down")
		close(e.doneChan)
		e.wg.Wait()
		e.logger.Printf("Engine: Shutdown complete")
	})
}

// --- Private Methods ---

// do runs a mutation and then performs its effects
func (e *Engine) do(op string, fn func(now time.Time) bool) {
	r := e.apply(op, fn)
	if r.resync {
		e.sendCommand(cmdResync)
	}
	e.publish(r)
}

// apply runs fn with the lock held and collects everything that must happen
// once the lock is released. Snapshots are published under the lock since
// ChannelEvent.Notify never blocks, which keeps them in order.
func (e *Engine) apply(op string, fn func(now time.Time) bool) opResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	fromPhase, fromID := e.s.phase, e.s.phaseID()

	if !fn(now) {
		if op != "tick" {
			e.logger.Printf("Engine: Ignoring %s in phase %s", op, e.s.phase)
		}
		e.pending = nil
		return opResult{}
	}

	r := opResult{changed: true, cues: e.pending}
	e.pending = nil

	toID := e.s.phaseID()
	phaseChanged := toID != fromID
	if phaseChanged {
		r.change = &PhaseChange{
			From:    fromPhase,
			FromID:  fromID,
			To:      e.s.phase,
			ToID:    toID,
			Elapsed: e.s.totalElapsed(now),
		}
	}

	want := e.s.running() && !e.s.isPaused()
	r.resync = want != e.tickerWanted || (want && phaseChanged)
	e.tickerWanted = want

	e.stateEvent.Notify(e.buildSnapshot(now))
	return r
}

// publish performs the effects of an operation. MUST be called without mu.
func (e *Engine) publish(r opResult) {
	if !r.changed {
		return
	}
	dispatchCues(e.logger, e.cues, e.haptics, r.cues)
	if r.change != nil {
		change := *r.change
		go_func_utils.SafeCall(e.logger, "Engine: phase listener", func() {
			e.phaseEvent.Notify(change)
		})
	}
}

// sendCommand hands a command to the tick goroutine unless it has exited
func (e *Engine) sendCommand(cmd loopCommand) {
	select {
	case e.cmdChan <- cmd:
	case <-e.doneChan:
	}
}

// syncTicker starts or stops ticker to match the session. Starting always
// re-aligns ticks to now, i.e. to the entry of the current phase.
func (e *Engine) syncTicker(ticker *time.Ticker) {
	e.mu.RLock()
	want := e.tickerWanted
	e.mu.RUnlock()

	if want {
		ticker.Reset(e.settings.TickInterval)
	} else {
		ticker.Stop()
	}
}

// runTickLoop is the goroutine that drives timed phases
func (e *Engine) runTickLoop() {
	ticker := time.NewTicker(e.settings.TickInterval)
	ticker.Stop() // Start stopped, will be started when the workout starts

	for {
		select {
		case <-e.doneChan:
			ticker.Stop()
			e.logger.Printf("Engine: Goroutine exiting")
			return

		case cmd := <-e.cmdChan:
			switch cmd {
			case cmdResync:
				e.syncTicker(ticker)
			}

		case <-ticker.C:
			// The loop applies its own resync; sending to cmdChan from here
			// could block on a full channel only this goroutine drains.
			r := e.apply("tick", e.tickLocked)
			if r.resync {
				e.syncTicker(ticker)
			}
			e.publish(r)
		}
	}
}

func (e *Engine) pauseLocked(now time.Time) bool {
	s := e.s
	if !s.running() || !s.clock.pause(now) {
		return false
	}
	s.pausedBySuspend = false
	e.logger.Printf("Engine: Paused in %s", s.phaseID())
	return true
}

func (e *Engine) resumeLocked(now time.Time) bool {
	s := e.s
	if !s.running() {
		return false
	}
	span, ok := s.clock.resume(now)
	if !ok {
		return false
	}
	s.sessionPaused += span
	s.pausedBySuspend = false
	e.logger.Printf("Engine: Resumed in %s after %v", s.phaseID(), span.Round(time.Second))
	return true
}

// tickLocked recomputes remaining time, cues the countdown and advances the
// phase once it is due
func (e *Engine) tickLocked(now time.Time) bool {
	s := e.s
	if !s.running() || s.isPaused() {
		return false
	}
	if !s.countsDown() {
		// Manual phases only refresh the elapsed time shown
		return true
	}

	remaining := s.clock.remaining(s.phaseDuration(e.settings), now)
	if remaining <= 0 {
		e.advanceLocked(now)
		return true
	}

	secs := ceilSeconds(remaining)
	if secs <= e.settings.CountdownFrom && secs != s.lastCountdown {
		s.lastCountdown = secs
		e.emit(cue{kind: cueTick, seconds: secs, phaseID: s.phaseID()})
		e.hapticLocked(HapticLight)
	}
	return true
}

func (e *Engine) emit(c cue) {
	e.pending = append(e.pending, c)
}

// speakLocked queues speech tagged with the current phase and its voice
func (e *Engine) speakLocked(text string, priority SpeechPriority) {
	e.emit(cue{
		kind:     cueSpeak,
		text:     text,
		priority: priority,
		phaseID:  e.s.phaseID(),
		voice:    e.settings.Voice(e.s.phaseKind()),
	})
}

func (e *Engine) hapticLocked(style HapticStyle) {
	e.emit(cue{kind: cueHaptic, haptic: style})
}
