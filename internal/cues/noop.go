package cues

import "github.com/lowaak/rep-runner/internal/engine"

// Noop discards every cue
type Noop struct{}

func (Noop) PlayTick(int, string) {}
func (Noop) PlayStart() {}
func (Noop) PlayDone() {}
func (Noop) PlayDoneAndAnnounceNext(string) {}
func (Noop) Speak(string, engine.SpeechPriority, string, engine.VoiceProfile) {}
func (Noop) Impact(engine.HapticStyle) {}

var (
	_ engine.CueDispatcher = Noop{}
	_ engine.HapticSink    = Noop{}
	_ engine.CueDispatcher = (*Console)(nil)
	_ engine.HapticSink    = (*Console)(nil)
	_ engine.CueDispatcher = (*Async)(nil)
	_ engine.HapticSink    = (*Async)(nil)
	_ engine.CueCanceller  = (*Async)(nil)
)
