package engine

import "time"

// Default values
const (
	DefaultGetReadyDuration = 10 * time.Second
	DefaultRestDuration     = 45 * time.Second
	DefaultSetRestDuration  = 30 * time.Second
	DefaultTickInterval     = 1 * time.Second
	DefaultCountdownFrom    = 5
)

// Rest adjustment bounds
const (
	MinRestDuration  = 15 * time.Second
	MaxRestDuration  = 300 * time.Second
	RestStepDuration = 15 * time.Second
)

// PhaseKind names a kind of phase for configuration lookups such as voices
type PhaseKind string

const (
	KindGetReady  PhaseKind = "getReady"
	KindExercise  PhaseKind = "exercise"
	KindSet       PhaseKind = "set"
	KindSetRest   PhaseKind = "setRest"
	KindRest      PhaseKind = "rest"
	KindCompleted PhaseKind = "completed"
)

// VoiceProfile is an opaque voice identifier passed through to the cue dispatcher
type VoiceProfile string

// Settings holds the timing configuration of one engine
type Settings struct {
	GetReadyDuration time.Duration
	RestDuration     time.Duration // Session default between exercises
	MinRest          time.Duration
	MaxRest          time.Duration
	RestStep         time.Duration // Step used by hosts for +/- adjustments
	SetRestDuration  time.Duration // Rest between sets when the exercise has none
	TickInterval     time.Duration
	CountdownFrom    int // Countdown ticks are cued while remaining seconds are in [1, CountdownFrom]
	Voices           map[PhaseKind]VoiceProfile
}

// DefaultSettings returns the static app settings
func DefaultSettings() Settings {
	return Settings{
		GetReadyDuration: DefaultGetReadyDuration,
		RestDuration:     DefaultRestDuration,
		MinRest:          MinRestDuration,
		MaxRest:          MaxRestDuration,
		RestStep:         RestStepDuration,
		SetRestDuration:  DefaultSetRestDuration,
		TickInterval:     DefaultTickInterval,
		CountdownFrom:    DefaultCountdownFrom,
	}
}

// normalized fills unset fields with defaults and clamps the rest default
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.GetReadyDuration <= 0 {
		s.GetReadyDuration = def.GetReadyDuration
	}
	if s.MinRest <= 0 {
		s.MinRest = def.MinRest
	}
	if s.MaxRest < s.MinRest {
		s.MaxRest = def.MaxRest
		if s.MaxRest < s.MinRest {
			s.MaxRest = s.MinRest
		}
	}
	if s.RestStep <= 0 {
		s.RestStep = def.RestStep
	}
	if s.RestDuration <= 0 {
		s.RestDuration = def.RestDuration
	}
	s.RestDuration = s.ClampRest(s.RestDuration)
	if s.SetRestDuration <= 0 {
		s.SetRestDuration = def.SetRestDuration
	}
	if s.TickInterval <= 0 {
		s.TickInterval = def.TickInterval
	}
	if s.CountdownFrom <= 0 {
		s.CountdownFrom = def.CountdownFrom
	}
	return s
}

// ClampRest limits a rest duration to [MinRest, MaxRest]
func (s Settings) ClampRest(d time.Duration) time.Duration {
	if d < s.MinRest {
		return s.MinRest
	}
	if d > s.MaxRest {
		return s.MaxRest
	}
	return d
}

// Voice returns the voice profile configured for kind, empty if none
func (s Settings) Voice(kind PhaseKind) VoiceProfile {
	return s.Voices[kind]
}
