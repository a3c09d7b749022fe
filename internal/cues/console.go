package cues

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/lowaak/rep-runner/internal/engine"
)

// Console writes cues as text lines, one per cue. It is both a cue
// dispatcher and a haptic sink, for terminals without audio.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	tick   func(a ...interface{}) string
	start  func(a ...interface{}) string
	done   func(a ...interface{}) string
	speech func(a ...interface{}) string
	haptic func(a ...interface{}) string

	lastTick string
}

// NewConsole creates a Console writing to out. With colorize false the
// output is plain text.
func NewConsole(out io.Writer, colorize bool) *Console {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Console{
		out:    out,
		tick:   mk(color.FgYellow),
		start:  mk(color.FgGreen, color.Bold),
		done:   mk(color.FgCyan, color.Bold),
		speech: mk(color.FgMagenta),
		haptic: mk(color.Faint),
	}
}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// PlayTick prints the countdown second. A repeat of the same second in the
// same phase is dropped.
func (c *Console) PlayTick(secondsRemaining int, phaseID string) {
	key := fmt.Sprintf("%s/%d", phaseID, secondsRemaining)
	c.mu.Lock()
	if key == c.lastTick {
		c.mu.Unlock()
		return
	}
	c.lastTick = key
	c.mu.Unlock()
	c.println(c.tick(fmt.Sprintf("  %d...", secondsRemaining)))
}

func (c *Console) PlayStart() {
	c.println(c.start(">> GO"))
}

func (c *Console) PlayDone() {
	c.println(c.done("** DONE"))
}

func (c *Console) PlayDoneAndAnnounceNext(name string) {
	c.println(c.done("** DONE") + " next up: " + name)
}

func (c *Console) Speak(text string, priority engine.SpeechPriority, phaseID string, voice engine.VoiceProfile) {
	line := fmt.Sprintf("\"%s\"", text)
	if priority == engine.PriorityHigh {
		line += " !"
	}
	if voice != "" {
		line += fmt.Sprintf(" (%s)", voice)
	}
	c.println(c.speech(line))
}

func (c *Console) Impact(style engine.HapticStyle) {
	c.println(c.haptic("~ " + style.String()))
}
