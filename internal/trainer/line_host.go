package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/google/shlex"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
)

const lineHostHelp = `Commands:
  list                 show workouts
  select N             load workout N
  start | p            start, pause or resume
  c                    complete the current exercise
  n                    complete the set, or end the rest between sets
  s                    skip the rest between exercises
  + | -                lengthen or shorten the current rest
  up [N] | down [N]    change the count or reps
  f                    finish the workout
  x                    abandon the workout
  bg | fg              leave or return to the foreground
  status               show the session
  q                    quit`

const lineHostPrompt = "rep> "

// LineHostArgs holds the arguments for creating a new LineHost
type LineHostArgs struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool   // In and Out are a terminal: enables line editing and the prompt
	HistoryFile string // Optional, only used when interactive
	Model       *UIModel
	Controller  *UIController
	Logger      *log.Logger
}

// LineHost drives the controller from line commands, for terminals where
// the full-screen UI is not wanted. Log lines and phase changes are printed
// as they happen.
type LineHost struct {
	in          io.Reader
	out         io.Writer
	outMu       sync.Mutex
	interactive bool
	historyFile string
	model      *UIModel
	controller *UIController
	logger     *log.Logger
	wg         sync.WaitGroup
}

func NewLineHost(args LineHostArgs) *LineHost {
	if args.Model == nil {
		panic("LineHost: model cannot be nil")
	}
	if args.Controller == nil {
		panic("LineHost: controller cannot be nil")
	}
	if args.Logger == nil {
		panic("LineHost: logger cannot be nil")
	}
	return &LineHost{
		in:          args.In,
		out:         args.Out,
		interactive: args.Interactive,
		historyFile: args.HistoryFile,
		model:       args.Model,
		controller:  args.Controller,
		logger:      args.Logger,
	}
}

// newReadline builds the line reader. Without a terminal, input is read
// line by line and the terminal mode is left alone.
func (h *LineHost) newReadline() (*readline.Instance, error) {
	cfg := &readline.Config{
		Prompt:          lineHostPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           readline.NewCancelableStdin(h.in),
		Stdout:          h.out,
		FuncIsTerminal:  func() bool { return h.interactive },
	}
	if h.interactive {
		cfg.HistoryFile = h.historyFile
	} else {
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}
	return readline.NewEx(cfg)
}

// Run reads commands until quit, end of input, a close request or ctx is done
func (h *LineHost) Run(ctx context.Context) error {
	rl, err := h.newReadline()
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()
	if h.interactive {
		// Output printed while a prompt is shown redraws the prompt
		h.out = rl.Stdout()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		h.wg.Wait()
	}()

	h.followLog(ctx)
	h.followSession(ctx)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go_func_utils.SafeGo(h.logger, func() {
		for {
			line, err := rl.Readline()
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if err != nil {
				readErr <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	})

	closeChan := make(chan struct{}, 1)
	unregisterClose := h.model.ListenToCloseApplication(closeChan)
	defer unregisterClose()

	h.println("Type 'help' for commands.")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-closeChan:
			return nil
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading commands: %w", err)
		case line := <-lines:
			if quit := h.handle(line); quit {
				return nil
			}
		}
	}
}

// handle runs one command line and reports whether it asked to quit
func (h *LineHost) handle(line string) bool {
	tokens, err := shlex.Split(line)
	if err != nil {
		h.println(fmt.Sprintf("parse error: %v", err))
		return false
	}
	if len(tokens) == 0 {
		return false
	}
	cmd, args := strings.ToLower(tokens[0]), tokens[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "help", "?":
		h.println(lineHostHelp)
	case "list", "ls":
		h.printWorkouts()
	case "select", "load":
		n, ok := h.intArg(args, 0)
		if !ok {
			h.println("usage: select N")
			return false
		}
		h.controller.OnWorkoutSelected(n - 1)
	case "start", "p", "pause", "resume":
		h.controller.ToggleWorkout()
	case "c", "done":
		h.controller.CompleteExercise()
	case "n", "next":
		h.controller.NextSet()
	case "s", "skip":
		h.controller.SkipRest()
	case "+":
		h.controller.IncreaseRest()
	case "-":
		h.controller.DecreaseRest()
	case "up", "k":
		for i := h.repeatArg(args); i > 0; i-- {
			h.controller.IncrementCount()
		}
	case "down", "j":
		for i := h.repeatArg(args); i > 0; i-- {
			h.controller.DecrementCount()
		}
	case "f", "finish":
		h.controller.FinishWorkout()
	case "x", "abandon":
		h.controller.AbandonWorkout()
	case "bg":
		h.controller.Background()
	case "fg":
		h.controller.Foreground()
	case "status":
		h.println(formatStatusLine(h.controller.Snapshot()))
	default:
		h.println(fmt.Sprintf("unknown command %q, type 'help'", cmd))
	}
	return false
}

func (h *LineHost) intArg(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (h *LineHost) repeatArg(args []string) int {
	if n, ok := h.intArg(args, 0); ok && n > 0 {
		return n
	}
	return 1
}

func (h *LineHost) printWorkouts() {
	list := h.model.GetWorkoutList()
	for i := range list.Workouts {
		marker := " "
		if i == list.Selected {
			marker = "*"
		}
		w := &list.Workouts[i]
		h.println(fmt.Sprintf("%s %d. %s (%s)", marker, i+1, w.Name, formatWorkoutSummary(w, list.RestDuration)))
	}
}

// followLog prints log lines as they reach the model
func (h *LineHost) followLog(ctx context.Context) {
	logChan := make(chan string, 64)
	unregister := h.model.ListenToLog(logChan)
	go_func_utils.SafeGoWG(h.logger, &h.wg, func() {
		defer unregister()
		for {
			select {
			case <-ctx.Done():
				return
			case line := <-logChan:
				h.println(line)
			}
		}
	})
}

// followSession prints a status line whenever the phase changes
func (h *LineHost) followSession(ctx context.Context) {
	sessionChan := make(chan engine.Snapshot, 8)
	unregister := h.model.ListenToSession(sessionChan)
	go_func_utils.SafeGoWG(h.logger, &h.wg, func() {
		defer unregister()
		lastKey := ""
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-sessionChan:
				key := snap.SessionID + "/" + snap.PhaseID
				if key == lastKey {
					continue
				}
				lastKey = key
				h.println(formatStatusLine(snap))
			}
		}
	})
}

func (h *LineHost) println(line string) {
	h.outMu.Lock()
	defer h.outMu.Unlock()
	fmt.Fprintln(h.out, line)
}

// formatStatusLine renders a snapshot as one plain text line
func formatStatusLine(snap engine.Snapshot) string {
	if snap.WorkoutName == "" {
		return "no workout loaded"
	}

	parts := []string{snap.WorkoutName, "[" + snap.Phase.String() + "]"}
	switch snap.Phase {
	case engine.PhaseIdle:
		parts = append(parts, "ready")
		return strings.Join(parts, " ")
	case engine.PhaseCompleted:
		parts = append(parts, snap.CompletionReason.String(), "in", snap.ElapsedMMSS())
		return strings.Join(parts, " ")
	}

	if ex := snap.Exercise; ex != nil && snap.Phase == engine.PhaseExerciseActive {
		parts = append(parts, ex.Name)
		if ex.Config.IsSetBased() {
			if snap.IsRestingBetweenSets {
				parts = append(parts, fmt.Sprintf("rest after set %d/%d", snap.CurrentSet, snap.TotalSets))
			} else {
				parts = append(parts, fmt.Sprintf("set %d/%d", snap.CurrentSet, snap.TotalSets))
			}
		}
		if ex.Config.IsManual() && !snap.IsRestingBetweenSets {
			parts = append(parts, fmt.Sprintf("%d/%d", snap.CurrentProgress(), snap.Target))
		}
	} else if snap.NextExercise != nil {
		parts = append(parts, "next: "+snap.NextExercise.Name)
	}
	if snap.HasCountdown() {
		parts = append(parts, snap.RemainingMMSS()+" left")
	}
	if snap.IsPaused {
		parts = append(parts, "(paused)")
	}
	parts = append(parts, "| elapsed "+snap.ElapsedMMSS(), fmt.Sprintf("| %d%%", int(snap.Progress()*100)))
	return strings.Join(parts, " ")
}
