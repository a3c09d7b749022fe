package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/lowaak/rep-runner/internal/config"
	"github.com/lowaak/rep-runner/internal/cues"
	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
	"github.com/lowaak/rep-runner/internal/logging"
	"github.com/lowaak/rep-runner/internal/trainer"
	"github.com/lowaak/rep-runner/internal/workout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rep-runner",
		Short:        "Guided workouts in the terminal",
		SilenceUsage: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var lineMode bool
	var workoutName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workout session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, lineMode, workoutName)
		},
	}
	cmd.Flags().BoolVar(&lineMode, "lines", false, "line commands on stdin instead of the full-screen UI")
	cmd.Flags().StringVar(&workoutName, "workout", "", "workout to load at start")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			workouts, err := loadWorkouts(cfg)
			if err != nil {
				return err
			}
			if !cfg.Cues.Color {
				color.NoColor = true
			}
			printWorkouts(workouts, cfg.EngineSettings().RestDuration)
			return nil
		},
	}
}

func run(ctx context.Context, cfg *config.Config, lineMode bool, workoutName string) error {
	appLogger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer appLogger.Close()
	logger := appLogger.Logger

	stopRotate := rotateOnHangup(appLogger)
	defer stopRotate()

	workouts, err := loadWorkouts(cfg)
	if err != nil {
		logger.Printf("Loading workouts: %v", err)
		return err
	}

	// Log lines and cue lines both end up in the UI log pane
	logWriter := trainer.NewLogChannelWriter()
	appLogger.AddOutput(logWriter)

	console := cues.NewConsole(logWriter, cfg.Cues.Color)
	var haptics engine.HapticSink = console
	if !cfg.Cues.Haptics {
		haptics = cues.Noop{}
	}
	cueQueue := cues.NewAsync(console, haptics, cfg.Cues.QueueSize, logger)
	defer cueQueue.Close()

	model := trainer.NewUIModel(workouts, logger, logWriter.Lines())
	defer model.Shutdown()

	controller := trainer.NewUIController(trainer.UIControllerArgs{
		Model:    model,
		Settings: cfg.EngineSettings(),
		Cues:     cueQueue,
		Haptics:  cueQueue,
		Prefs:    trainer.NewPrefsStore(cfg.Prefs.File, logger),
		Logger:   logger,
	})
	defer controller.Shutdown()

	if workoutName != "" {
		index := workoutIndex(workouts, workoutName)
		if index < 0 {
			return fmt.Errorf("unknown workout %q", workoutName)
		}
		controller.OnWorkoutSelected(index)
	}

	logger.Printf("rep-runner: %d workouts loaded", len(workouts))

	if lineMode {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		host := trainer.NewLineHost(trainer.LineHostArgs{
			In:          os.Stdin,
			Out:         os.Stdout,
			Interactive: readline.IsTerminal(int(os.Stdin.Fd())) && readline.IsTerminal(int(os.Stdout.Fd())),
			HistoryFile: filepath.Join(filepath.Dir(cfg.Prefs.File), "history"),
			Model:       model,
			Controller:  controller,
			Logger:      logger,
		})
		if err := host.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	app := tview.NewApplication()
	view := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   trainer.NewCursesUIView(logger, app),
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})
	defer view.Shutdown()

	if err := view.Run(); err != nil {
		logger.Printf("UI exited with error: %v", err)
		return err
	}
	return nil
}

// rotateOnHangup starts a new log file on every SIGHUP until the returned
// function is called
func rotateOnHangup(appLogger *logging.Logger) func() {
	hup := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(hup, syscall.SIGHUP)

	go_func_utils.SafeGo(appLogger.Logger, func() {
		for {
			select {
			case <-done:
				return
			case <-hup:
				if err := appLogger.Rotate(); err != nil {
					appLogger.Printf("rep-runner: log rotation failed: %v", err)
				}
			}
		}
	})

	return func() {
		signal.Stop(hup)
		close(done)
	}
}

// loadWorkouts returns the built-in workouts followed by those from the
// configured workout file
func loadWorkouts(cfg *config.Config) ([]workout.Workout, error) {
	workouts := append([]workout.Workout(nil), workout.AllWorkouts...)
	if cfg.Workouts.File == "" {
		return workouts, nil
	}
	extra, err := workout.LoadFile(cfg.Workouts.File)
	if err != nil {
		return nil, err
	}
	return append(workouts, extra...), nil
}

func workoutIndex(workouts []workout.Workout, name string) int {
	for i := range workouts {
		if workouts[i].Name == name {
			return i
		}
	}
	return -1
}

func printWorkouts(workouts []workout.Workout, rest time.Duration) {
	title := color.New(color.FgYellow, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for i := range workouts {
		w := &workouts[i]
		fmt.Printf("%s %s\n", title(w.Name), dim(fmt.Sprintf("(~%s)", engine.FormatMMSS(w.EstimatedDuration(rest)))))
		for _, ex := range w.Exercises {
			fmt.Printf("  - %s %s\n", ex.Name, dim(ex.Config.Summary()))
		}
	}
}
