package trainer

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lowaak/rep-runner/internal/cues"
	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/workout"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testHost wires a model and controller the way main does, with a fake
// clock and a tick interval long enough that only explicit ticks happen
type testHost struct {
	t          *testing.T
	clock      *fakeClock
	logBuf     *syncBuffer
	logger     *log.Logger
	logWriter  *LogChannelWriter
	model      *UIModel
	controller *UIController
	prefs      *PrefsStore
}

func testWorkouts() []workout.Workout {
	return []workout.Workout{
		{
			Name: "Short",
			Exercises: []workout.Exercise{
				{Name: "Squats", Config: workout.CountBased(3)},
				{Name: "Plank", Config: workout.TimeBased(20 * time.Second)},
			},
		},
		{
			Name: "Sets",
			Exercises: []workout.Exercise{
				{Name: "Push-ups", Config: workout.RepsSets(5, 2)},
			},
		},
	}
}

func testSettings() engine.Settings {
	s := engine.DefaultSettings()
	s.TickInterval = time.Hour
	return s
}

func newTestHost(t *testing.T, prefsPath string) *testHost {
	t.Helper()
	if prefsPath == "" {
		prefsPath = filepath.Join(t.TempDir(), "prefs.json")
	}
	h := &testHost{
		t:         t,
		clock:     newFakeClock(),
		logBuf:    &syncBuffer{},
		logWriter: NewLogChannelWriter(),
	}
	h.logger = log.New(h.logBuf, "", 0)
	h.model = NewUIModel(testWorkouts(), h.logger, h.logWriter.Lines())
	h.prefs = NewPrefsStore(prefsPath, h.logger)
	console := cues.NewConsole(h.logWriter, false)
	h.controller = NewUIController(UIControllerArgs{
		Model:    h.model,
		Settings: testSettings(),
		Cues:     console,
		Haptics:  console,
		Clock:    h.clock,
		Prefs:    h.prefs,
		Logger:   h.logger,
	})
	t.Cleanup(func() {
		h.controller.Shutdown()
		h.model.Shutdown()
	})
	return h
}

// tick advances the fake clock and runs one engine tick
func (h *testHost) tick(d time.Duration) {
	h.t.Helper()
	h.clock.Advance(d)
	eng := h.controller.currentEngine()
	require.NotNil(h.t, eng)
	eng.Tick()
}

// engineSnapshot reads the engine directly, skipping the model forwarder
func (h *testHost) engineSnapshot() engine.Snapshot {
	h.t.Helper()
	eng := h.controller.currentEngine()
	require.NotNil(h.t, eng)
	return eng.Snapshot()
}

// waitForSession waits until the model mirrors a snapshot matching cond
func (h *testHost) waitForSession(cond func(engine.Snapshot) bool) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return cond(h.model.GetSession())
	}, time.Second, 5*time.Millisecond)
}

func (h *testHost) waitForLog(substr string) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return strings.Contains(h.logBuf.String(), substr)
	}, time.Second, 5*time.Millisecond, "log never contained %q", substr)
}
