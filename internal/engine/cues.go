package engine

import (
	"fmt"
	"log"

	"github.com/lowaak/rep-runner/internal/go_func_utils"
)

// SpeechPriority orders spoken cues for dispatchers that queue speech
type SpeechPriority int

const (
	PriorityNormal SpeechPriority = iota
	PriorityHigh
)

func (p SpeechPriority) String() string {
	if p == PriorityHigh {
		return "high"
	}
	return "normal"
}

// HapticStyle selects the feel of a haptic impact
type HapticStyle int

const (
	HapticLight HapticStyle = iota
	HapticMedium
	HapticHeavy
	HapticSuccess
)

func (h HapticStyle) String() string {
	switch h {
	case HapticLight:
		return "light"
	case HapticMedium:
		return "medium"
	case HapticHeavy:
		return "heavy"
	case HapticSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// CueDispatcher plays audio and speech cues. Implementations must return
// quickly; anything slow belongs behind a queue.
type CueDispatcher interface {
	PlayTick(secondsRemaining int, phaseID string)
	PlayStart()
	PlayDone()
	PlayDoneAndAnnounceNext(name string)
	Speak(text string, priority SpeechPriority, phaseID string, voice VoiceProfile)
}

// CueCanceller is implemented by dispatchers that queue cues and can drop them
type CueCanceller interface {
	CancelPending()
}

// HapticSink produces haptic feedback
type HapticSink interface {
	Impact(style HapticStyle)
}

type noopCues struct{}

func (noopCues) PlayTick(int, string) {}
func (noopCues) PlayStart() {}
func (noopCues) PlayDone() {}
func (noopCues) PlayDoneAndAnnounceNext(string) {}
func (noopCues) Speak(string, SpeechPriority, string, VoiceProfile) {}
func (noopCues) Impact(HapticStyle) {}

// Phase identifiers passed to the dispatcher. They let a dispatcher tell
// cues of one phase apart from those of the next.
func getReadyPhaseID() string { return fmt.Sprintf("%s:0", KindGetReady) }
func exercisePhaseID(i int) string { return fmt.Sprintf("%s:%d", KindExercise, i) }
func restPhaseID(i int) string { return fmt.Sprintf("%s:%d", KindRest, i) }
func setPhaseID(i, set int) string { return fmt.Sprintf("%s:%d:%d", KindSet, i, set) }
func setRestPhaseID(i, set int) string { return fmt.Sprintf("%s:%d:%d", KindSetRest, i, set) }
func completedPhaseID() string { return string(KindCompleted) }

type cueKind int

const (
	cueTick cueKind = iota
	cueStart
	cueDone
	cueDoneAndAnnounce
	cueSpeak
	cueHaptic
	cueCancel
)

// cue is a pending side effect recorded while the engine lock is held
type cue struct {
	kind     cueKind
	seconds  int
	phaseID  string
	text     string
	priority SpeechPriority
	voice    VoiceProfile
	haptic   HapticStyle
}

// dispatchCues delivers cues in order. Called without the engine lock.
// A panicking collaborator is logged and skipped.
func dispatchCues(logger *log.Logger, d CueDispatcher, h HapticSink, cues []cue) {
	for _, c := range cues {
		go_func_utils.SafeCall(logger, "Engine: cue", func() {
			switch c.kind {
			case cueTick:
				d.PlayTick(c.seconds, c.phaseID)
			case cueStart:
				d.PlayStart()
			case cueDone:
				d.PlayDone()
			case cueDoneAndAnnounce:
				d.PlayDoneAndAnnounceNext(c.text)
			case cueSpeak:
				d.Speak(c.text, c.priority, c.phaseID, c.voice)
			case cueHaptic:
				h.Impact(c.haptic)
			case cueCancel:
				if canceller, ok := d.(CueCanceller); ok {
					canceller.CancelPending()
				}
			}
		})
	}
}
