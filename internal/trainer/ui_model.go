package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/events"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
	"github.com/lowaak/rep-runner/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// WorkoutList is the catalogue shown on the selection page
type WorkoutList struct {
	Workouts     []workout.Workout
	Selected     int           // -1 when nothing is selected
	RestDuration time.Duration // Rest between exercises, for duration estimates
}

type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	workoutListEvent      *events.ChannelEvent[WorkoutList]
	workouts              []workout.Workout
	selected              int
	restDuration          time.Duration
	sessionEvent          *events.ChannelEvent[engine.Snapshot]
	session               engine.Snapshot
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

func NewUIModel(workouts []workout.Workout, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeWorkoutSelection},
		workoutListEvent:      events.NewChannelEvent[WorkoutList](true),
		workouts:              workouts,
		selected:              -1,
		restDuration:          engine.DefaultRestDuration,
		sessionEvent:          events.NewChannelEvent[engine.Snapshot](true),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}
	model.uiStateEvent.Notify(model.uiState)
	model.workoutListEvent.Notify(model.buildWorkoutList())

	// Read from the UI log channel and populate logLines
	go_func_utils.SafeGoWG(model.logger, &model.wg, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// --- Workouts ---

// ListenToWorkoutList registers a channel to receive catalogue and selection changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToWorkoutList(ch chan<- WorkoutList) func() {
	return m.workoutListEvent.Listen(ch)
}

func (m *UIModel) GetWorkoutList() WorkoutList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buildWorkoutList()
}

// SelectWorkout marks the workout at index as selected and returns it
func (m *UIModel) SelectWorkout(index int) (*workout.Workout, bool) {
	m.mu.Lock()
	if index < 0 || index >= len(m.workouts) {
		m.mu.Unlock()
		return nil, false
	}
	m.selected = index
	selected := &m.workouts[index]
	list := m.buildWorkoutList()
	m.mu.Unlock()

	m.workoutListEvent.Notify(list)
	return selected, true
}

// SelectWorkoutByName selects the first workout with the given name
func (m *UIModel) SelectWorkoutByName(name string) (*workout.Workout, bool) {
	m.mu.RLock()
	index := -1
	for i := range m.workouts {
		if m.workouts[i].Name == name {
			index = i
			break
		}
	}
	m.mu.RUnlock()
	return m.SelectWorkout(index)
}

// GetSelectedWorkout returns the selected workout, nil when none is selected
func (m *UIModel) GetSelectedWorkout() *workout.Workout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected < 0 {
		return nil
	}
	return &m.workouts[m.selected]
}

// SetRestDuration updates the rest used for workout duration estimates
func (m *UIModel) SetRestDuration(d time.Duration) {
	m.mu.Lock()
	if m.restDuration == d {
		m.mu.Unlock()
		return
	}
	m.restDuration = d
	list := m.buildWorkoutList()
	m.mu.Unlock()

	m.workoutListEvent.Notify(list)
}

// buildWorkoutList must be called with mu held
func (m *UIModel) buildWorkoutList() WorkoutList {
	workouts := make([]workout.Workout, len(m.workouts))
	copy(workouts, m.workouts)
	return WorkoutList{Workouts: workouts, Selected: m.selected, RestDuration: m.restDuration}
}

// --- Session ---

// ListenToSession registers a channel to receive engine snapshots
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToSession(ch chan<- engine.Snapshot) func() {
	return m.sessionEvent.Listen(ch)
}

func (m *UIModel) GetSession() engine.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *UIModel) SetSession(snap engine.Snapshot) {
	m.mu.Lock()
	m.session = snap
	m.mu.Unlock()

	m.sessionEvent.Notify(snap)
}

// --- Log ---

// AppendLog adds a line to the log pane directly, bypassing the log channel
func (m *UIModel) AppendLog(line string) {
	m.logMu.Lock()
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		// Remove oldest lines, keep the most recent maxLogLines
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.logMu.Unlock()

	// Notify listeners for immediate display
	m.logEvent.Notify(line)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				// Channel closed
				return
			}
			m.AppendLog(line)
		}
	}
}

// GetLogTail returns up to the last n log lines
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		// Return all lines
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	// Return last n lines
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
