package trainer

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/workout"
)

// Page names for tview.Pages
const (
	pageWorkoutSelection = "workout_selection"
	pageWorkoutDashboard = "workout_dashboard"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Workout Selection mode components
	workoutSelectionFlex       *tview.Flex
	workoutSelectionTabWidgets []*tview.Box
	workoutList                *tview.List
	workoutDetailsPanel        *tview.TextView
	workouts                   WorkoutList

	// Workout Dashboard mode components
	workoutDashboardFlex       *tview.Flex
	workoutDashboardTabWidgets []*tview.Box
	sessionPanel               *tview.TextView
	controlsPanel              *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		currentMode: UIModeWorkoutSelection,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc with app.Draw() on the log view: it can hang during
	// shutdown. BaseUIView listeners call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Log ")

	// Create pages container for mode switching
	ui.pages = tview.NewPages()

	// Initialize each mode
	ui.initWorkoutSelectionMode(controller)
	ui.initWorkoutDashboardMode()

	// Add pages
	ui.pages.AddPage(pageWorkoutSelection, ui.workoutSelectionFlex, true, true)
	ui.pages.AddPage(pageWorkoutDashboard, ui.workoutDashboardFlex, true, false)

	// Create main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 3, true).
		AddItem(ui.logView, 0, 2, false)

	// Set initial focus
	ui.setFocusForCurrentMode()
}

// initWorkoutSelectionMode sets up the Workout Selection mode UI
func (ui *CursesUIViewImpl) initWorkoutSelectionMode(controller *UIController) {
	ui.workoutList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Workout selected: index=%d, name=%s", index, mainText)
			controller.OnWorkoutSelected(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			// Update details panel when selection changes
			ui.updateWorkoutDetailsDisplay(index)
		})
	ui.workoutList.SetBorder(true).SetTitle(" Workouts ")

	ui.workoutDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.workoutDetailsPanel.SetBorder(true).SetTitle(" Workout Details ")
	ui.updateWorkoutDetailsDisplay(-1)

	ui.workoutSelectionTabWidgets = append(ui.workoutSelectionTabWidgets, ui.workoutList.Box)
	ui.workoutSelectionTabWidgets = append(ui.workoutSelectionTabWidgets, ui.workoutDetailsPanel.Box)

	ui.workoutSelectionFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.workoutList, 0, 1, true).
		AddItem(ui.workoutDetailsPanel, 0, 1, false)
}

// initWorkoutDashboardMode sets up the Workout Dashboard mode UI
func (ui *CursesUIViewImpl) initWorkoutDashboardMode() {
	ui.sessionPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.sessionPanel.SetBorder(true).SetTitle(" Session ")

	ui.controlsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.controlsPanel.SetBorder(true).SetTitle(" Controls ")

	ui.UpdateSession(engine.Snapshot{})

	ui.workoutDashboardTabWidgets = append(ui.workoutDashboardTabWidgets, ui.sessionPanel.Box)
	ui.workoutDashboardTabWidgets = append(ui.workoutDashboardTabWidgets, ui.controlsPanel.Box)

	ui.workoutDashboardFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.sessionPanel, 0, 3, true).
		AddItem(ui.controlsPanel, 6, 0, false)
}

// SetWorkoutList populates the workout selection list
func (ui *CursesUIViewImpl) SetWorkoutList(list WorkoutList) {
	current := ui.workoutList.GetCurrentItem()
	ui.workouts = list
	ui.workoutList.Clear()

	for i := range list.Workouts {
		w := &list.Workouts[i]
		name := w.Name
		if i == list.Selected {
			name = "* " + name
		}
		ui.workoutList.AddItem(name, formatWorkoutSummary(w, list.RestDuration), 0, nil)
	}

	switch {
	case list.Selected >= 0 && list.Selected < len(list.Workouts):
		ui.workoutList.SetCurrentItem(list.Selected)
		ui.updateWorkoutDetailsDisplay(list.Selected)
	case current < len(list.Workouts):
		ui.workoutList.SetCurrentItem(current)
		ui.updateWorkoutDetailsDisplay(current)
	default:
		ui.updateWorkoutDetailsDisplay(-1)
	}
}

// updateWorkoutDetailsDisplay formats and displays the workout details
func (ui *CursesUIViewImpl) updateWorkoutDetailsDisplay(index int) {
	if ui.workoutDetailsPanel == nil {
		return
	}
	if index < 0 || index >= len(ui.workouts.Workouts) {
		text := "\n\n  [yellow]Workout Selection[white]\n\n"
		text += "  Select a workout from the list to view details.\n\n"
		text += "  [gray]Press Enter to load the selected workout.[white]\n"
		ui.workoutDetailsPanel.SetText(text)
		return
	}
	ui.workoutDetailsPanel.SetText(formatWorkoutDetails(&ui.workouts.Workouts[index], ui.workouts.RestDuration))
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeWorkoutSelection:
		ui.pages.SwitchToPage(pageWorkoutSelection)
	case UIModeWorkoutDashboard:
		ui.pages.SwitchToPage(pageWorkoutDashboard)
	}

	ui.setFocusForCurrentMode()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeWorkoutSelection:
		return ui.workoutSelectionTabWidgets
	case UIModeWorkoutDashboard:
		return ui.workoutDashboardTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Number keys for mode switching
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// Delegate to controller - it will update the model, which will notify us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						ui.app.SetFocus(widgets[(idx+1)%widgetCount])
						break
					}
				}
			}
			return nil
		}

		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if ui.currentMode != UIModeWorkoutDashboard {
			return event
		}

		switch event.Key() {
		case tcell.KeyUp:
			controller.IncrementCount()
			return nil
		case tcell.KeyDown:
			controller.DecrementCount()
			return nil
		case tcell.KeyRune:
		default:
			return event
		}

		switch event.Rune() {
		case ' ':
			controller.ToggleWorkout()
		case 'c':
			controller.CompleteExercise()
		case 'n':
			controller.NextSet()
		case 's':
			controller.SkipRest()
		case '+', '=':
			controller.IncreaseRest()
		case '-':
			controller.DecreaseRest()
		case 'k':
			controller.IncrementCount()
		case 'j':
			controller.DecrementCount()
		case 'f':
			controller.FinishWorkout()
		case 'x':
			controller.AbandonWorkout()
		case 'b':
			ui.simulateBackground(controller)
		default:
			return event
		}
		return nil
	})
}

// simulateBackground leaves the terminal UI until Enter is pressed, the way
// a phone app leaves the foreground
func (ui *CursesUIViewImpl) simulateBackground(controller *UIController) {
	controller.Background()
	ui.app.Suspend(func() {
		fmt.Println("rep-runner is in the background. Press Enter to return.")
		if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
			ui.logger.Printf("UI: Reading from stdin while backgrounded: %v", err)
		}
	})
	controller.Foreground()
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view. ANSI colors from the cue
// console are converted to tview color tags.
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprintln(ui.logView, tview.TranslateANSI(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

// UpdateSession updates the dashboard from the latest engine snapshot
func (ui *CursesUIViewImpl) UpdateSession(snap engine.Snapshot) {
	if ui.sessionPanel == nil {
		return
	}
	ui.sessionPanel.SetText(formatSessionDisplay(snap))
	ui.controlsPanel.SetText(formatControlsHint(snap))
}

// --- Formatting ---

// formatWorkoutSummary is the one-line summary under a workout in the list
func formatWorkoutSummary(w *workout.Workout, rest time.Duration) string {
	return fmt.Sprintf("%d exercises, ~%s", w.ExerciseCount(), formatDuration(w.EstimatedDuration(rest)))
}

func formatWorkoutDetails(w *workout.Workout, rest time.Duration) string {
	text := "\n"
	text += fmt.Sprintf("  [yellow]%s[white]\n\n", w.Name)
	text += fmt.Sprintf("  [gray]Estimated:[white] %s [gray](rest %s)[white]\n", formatDuration(w.EstimatedDuration(rest)), engine.FormatMMSS(rest))
	text += fmt.Sprintf("  [gray]Exercises:[white] %d\n\n", w.ExerciseCount())

	text += "  [gray]Structure:[white]\n"
	for i, ex := range w.Exercises {
		text += fmt.Sprintf("    %d. %s [gray]%s[white]", i+1, ex.Name, ex.Config.Summary())
		if ex.RestAfter != nil && i < len(w.Exercises)-1 {
			text += fmt.Sprintf(" [gray](rest %s)[white]", engine.FormatMMSS(*ex.RestAfter))
		}
		text += "\n"
	}
	text += "\n  [green]Press Enter to load this workout[white]\n"
	return text
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%d min", minutes)
}

// formatSessionDisplay renders the dashboard body for a snapshot
func formatSessionDisplay(snap engine.Snapshot) string {
	if snap.WorkoutName == "" {
		text := "\n  [gray]No workout loaded[white]\n\n"
		text += "  Go to Workout Selection (press 1) to load a workout.\n"
		return text
	}

	text := "\n"
	if snap.IsPaused {
		text += fmt.Sprintf("  [yellow]%s[white] [gray](PAUSED)[white]\n\n", snap.WorkoutName)
	} else {
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", snap.WorkoutName)
	}

	switch snap.Phase {
	case engine.PhaseIdle:
		text += "  [green]Ready to start[white]\n\n"
		text += fmt.Sprintf("  [gray]Exercises:[white] %d\n", snap.ExerciseCount)
		return text

	case engine.PhaseCompleted:
		if snap.CompletionReason == engine.ReasonAbandoned {
			text += "  [red]Workout abandoned[white]\n\n"
		} else {
			text += "  [green]Workout complete![white]\n\n"
		}
		text += fmt.Sprintf("  [gray]Total time:[white] %s\n\n", snap.ElapsedMMSS())
		text += fmt.Sprintf("  %s\n", renderProgressBar(snap.Progress(), progressBarWidth))
		return text

	case engine.PhaseGetReady:
		text += "  [cyan]Get Ready[white]\n"
		if snap.NextExercise != nil {
			text += fmt.Sprintf("  [gray]First up:[white] %s [gray]%s[white]\n", snap.NextExercise.Name, snap.NextExercise.Config.Summary())
		}

	case engine.PhaseRestBetweenExercises:
		text += fmt.Sprintf("  [cyan]Rest[white] [gray](%s)[white]\n", engine.FormatMMSS(snap.RestDuration))
		if snap.NextExercise != nil {
			text += fmt.Sprintf("  [gray]Next up:[white] %s [gray]%s[white]\n", snap.NextExercise.Name, snap.NextExercise.Config.Summary())
		}

	case engine.PhaseExerciseActive:
		text += formatExerciseLines(snap)
	}

	text += "\n"
	if snap.HasCountdown() {
		text += fmt.Sprintf("  [gray]Remaining:[white] [yellow]%s[white]\n", snap.RemainingMMSS())
	}
	text += fmt.Sprintf("  [gray]Elapsed:[white]   %s\n\n", snap.ElapsedMMSS())
	text += fmt.Sprintf("  %s\n", renderProgressBar(snap.Progress(), progressBarWidth))
	return text
}

func formatExerciseLines(snap engine.Snapshot) string {
	ex := snap.Exercise
	if ex == nil {
		return ""
	}
	text := fmt.Sprintf("  [cyan]Exercise %d/%d[white]\n", snap.ExerciseIndex+1, snap.ExerciseCount)
	text += fmt.Sprintf("  %s [gray]%s[white]\n", ex.Name, ex.Config.Summary())

	if ex.Config.IsSetBased() {
		if snap.IsRestingBetweenSets {
			text += fmt.Sprintf("  [gray]Rest after set %d of %d (%s)[white]\n", snap.CurrentSet, snap.TotalSets, engine.FormatMMSS(snap.SetRestDuration))
		} else {
			text += fmt.Sprintf("  Set [yellow]%d[white] of %d\n", snap.CurrentSet, snap.TotalSets)
		}
	}
	if ex.Config.IsManual() && !snap.IsRestingBetweenSets {
		label := "Count"
		if ex.Config.CountsReps() {
			label = "Reps"
		}
		text += fmt.Sprintf("  %s: [yellow]%d[white] / %d\n", label, snap.CurrentProgress(), snap.Target)
	}
	if snap.NextExercise != nil {
		text += fmt.Sprintf("  [gray]Then:[white] %s\n", snap.NextExercise.Name)
	}
	return text
}

// formatControlsHint lists the keys that act in the current phase
func formatControlsHint(snap engine.Snapshot) string {
	if snap.WorkoutName == "" {
		return "  [yellow]1[white] Workouts  |  [yellow]Esc[white] Quit"
	}

	var hints []string
	switch snap.Phase {
	case engine.PhaseIdle:
		hints = append(hints, "[yellow]Space[white] Start")
	case engine.PhaseCompleted:
		hints = append(hints, "[yellow]Space[white] Restart")
	default:
		if snap.IsPaused {
			hints = append(hints, "[yellow]Space[white] Resume")
		} else {
			hints = append(hints, "[yellow]Space[white] Pause")
		}
	}

	switch {
	case snap.Phase == engine.PhaseRestBetweenExercises:
		hints = append(hints, "[yellow]S[white] Skip rest", "[yellow]+/-[white] Rest length")
	case snap.Phase == engine.PhaseExerciseActive && snap.Exercise != nil:
		cfg := snap.Exercise.Config
		if snap.IsRestingBetweenSets {
			hints = append(hints, "[yellow]N[white] Next set")
			break
		}
		if cfg.IsManual() {
			hints = append(hints, "[yellow]Up/Down[white] Count")
			if cfg.IsSetBased() {
				hints = append(hints, "[yellow]N[white] Set done")
			} else {
				hints = append(hints, "[yellow]C[white] Done")
			}
		}
	}

	if snap.Phase != engine.PhaseIdle && snap.Phase != engine.PhaseCompleted {
		hints = append(hints, "[yellow]F[white] Finish", "[yellow]X[white] Abandon", "[yellow]B[white] Background")
	}

	return "\n  " + strings.Join(hints, "  |  ") + "\n  [yellow]1[white] Workouts  |  [yellow]Esc[white] Quit"
}

// renderProgressBar draws fraction (0..1) as a bar of width cells plus a percentage
func renderProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return fmt.Sprintf("[green]%s[gray]%s[white] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		int(fraction*100))
}
