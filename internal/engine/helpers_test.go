package engine

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

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

// recordingCues records every cue and haptic as a short string
type recordingCues struct {
	mu      sync.Mutex
	calls   []string
	voices  []VoiceProfile
	panicOn string
}

func (r *recordingCues) record(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	panicOn := r.panicOn
	r.mu.Unlock()
	if panicOn != "" && panicOn == s {
		panic("speaker unplugged")
	}
}

func (r *recordingCues) PlayTick(secondsRemaining int, phaseID string) {
	r.record(fmt.Sprintf("tick %d %s", secondsRemaining, phaseID))
}
func (r *recordingCues) PlayStart() { r.record("start") }
func (r *recordingCues) PlayDone() { r.record("done") }
func (r *recordingCues) PlayDoneAndAnnounceNext(name string) {
	r.record("next " + name)
}
func (r *recordingCues) Speak(text string, priority SpeechPriority, phaseID string, voice VoiceProfile) {
	r.mu.Lock()
	r.voices = append(r.voices, voice)
	r.mu.Unlock()
	r.record(fmt.Sprintf("speak %s %s", phaseID, text))
}
func (r *recordingCues) Impact(style HapticStyle) { r.record("haptic " + style.String()) }
func (r *recordingCues) CancelPending() { r.record("cancel") }

// Calls returns and clears what was recorded
func (r *recordingCues) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.calls
	r.calls = nil
	return out
}

// Filter returns the recorded calls starting with prefix, without clearing
func (r *recordingCues) Filter(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

type testEngine struct {
	*Engine
	clock  *fakeClock
	cues   *recordingCues
	logBuf *syncBuffer
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

// testSettings keeps the tick goroutine idle so tests drive Tick themselves
func testSettings() Settings {
	s := DefaultSettings()
	s.TickInterval = time.Hour
	return s
}

func newTestEngine(t *testing.T, w *workout.Workout, settings Settings) *testEngine {
	t.Helper()
	clock := newFakeClock()
	cues := &recordingCues{}
	buf := &syncBuffer{}
	e := New(Options{
		Workout:  w,
		Settings: settings,
		Cues:     cues,
		Haptics:  cues,
		Clock:    clock,
		Logger:   log.New(buf, "", 0),
	})
	t.Cleanup(e.Shutdown)
	return &testEngine{Engine: e, clock: clock, cues: cues, logBuf: buf}
}

// advance moves the clock forward one second at a time, ticking after each step
func (te *testEngine) advance(d time.Duration) {
	for step := time.Duration(0); step < d; step += time.Second {
		te.clock.Advance(time.Second)
		te.Tick()
	}
}

func workoutOf(exercises ...workout.Exercise) *workout.Workout {
	return &workout.Workout{Name: "Test", Exercises: exercises}
}

func timed(name string, seconds int) workout.Exercise {
	return workout.Exercise{Name: name, Config: workout.TimeBased(time.Duration(seconds) * time.Second)}
}

func counted(name string, target int) workout.Exercise {
	return workout.Exercise{Name: name, Config: workout.CountBased(target)}
}
