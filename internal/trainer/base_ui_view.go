package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/rep-runner/internal/engine"
	"github.com/lowaak/rep-runner/internal/go_func_utils"
)

// BaseUIView contains the base logic shared by all UI implementations
type BaseUIView struct {
	uiViewImpl   UIViewImpl
	uiModel      *UIModel
	uiController *UIController
	context      context.Context
	cancelFunc   context.CancelFunc
	waitGroup    sync.WaitGroup
	logger       *log.Logger
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl   UIViewImpl
	UIModel      *UIModel
	UIController *UIController
	Logger       *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIViewImpl == nil {
		panic("BaseUIView: UIViewImpl cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiViewImpl:   args.UIViewImpl,
		uiModel:      args.UIModel,
		uiController: args.UIController,
		context:      ctx,
		cancelFunc:   cancel,
		logger:       args.Logger,
	}

	// Initialize framework-specific widgets
	args.UIViewImpl.Initialize(args.UIController)

	// Set up keyboard handlers
	args.UIViewImpl.SetupKeyboardHandlers(args.UIController)

	// Set initial mode from model
	args.UIViewImpl.SetMode(args.UIModel.GetUIState().Mode)

	// Set up periodic resize check and initial display
	go_func_utils.SafeGoWG(base.logger, &base.waitGroup, base.monitorLogResize)
	base.updateLogDisplay()

	base.setupEventListeners()

	return base
}

// listen runs onValue for every value received on ch until the view shuts down
func listen[T any](base *BaseUIView, ch chan T, unregister func(), onValue func(T)) {
	go_func_utils.SafeGoWG(base.logger, &base.waitGroup, func() {
		defer unregister()
		for {
			select {
			case <-base.context.Done():
				return
			case value, ok := <-ch:
				if !ok {
					return
				}
				onValue(value)
			}
		}
	})
}

func (base *BaseUIView) setupEventListeners() {
	// Log messages: redraw the visible tail
	logChan := make(chan string, 1)
	listen(base, logChan, base.uiModel.ListenToLog(logChan), func(string) {
		base.updateLogDisplay()
		base.draw()
	})

	// Close application: stop the UI implementation
	closeChan := make(chan struct{}, 1)
	listen(base, closeChan, base.uiModel.ListenToCloseApplication(closeChan), func(struct{}) {
		base.uiViewImpl.Stop()
	})

	// UI state: switch pages
	uiStateChan := make(chan UIState, 1)
	listen(base, uiStateChan, base.uiModel.ListenToUIState(uiStateChan), func(state UIState) {
		base.uiViewImpl.SetMode(state.Mode)
		base.draw()
	})

	// Workout catalogue and selection
	workoutListChan := make(chan WorkoutList, 1)
	listen(base, workoutListChan, base.uiModel.ListenToWorkoutList(workoutListChan), func(list WorkoutList) {
		base.uiViewImpl.SetWorkoutList(list)
		base.draw()
	})

	// Engine snapshots for the dashboard
	sessionChan := make(chan engine.Snapshot, 1)
	listen(base, sessionChan, base.uiModel.ListenToSession(sessionChan), func(snap engine.Snapshot) {
		base.uiViewImpl.UpdateSession(snap)
		base.draw()
	})
}

func (base *BaseUIView) draw() {
	if err := base.uiViewImpl.Draw(); err != nil {
		base.logger.Printf("BaseUIView: Error drawing: %v", err)
	}
}

func (base *BaseUIView) updateLogDisplay() {
	// Get the visible height of the log view
	height := base.uiViewImpl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	// Get the tail of logs that fit in the visible area
	logLines := base.uiModel.GetLogTail(height)

	// Clear and update the log view
	base.uiViewImpl.ClearLogView()
	for _, line := range logLines {
		if err := base.uiViewImpl.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseUIView) monitorLogResize() {
	var lastHeight int
	ticker := time.NewTicker(logResizePollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			height := base.uiViewImpl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancelFunc()
	base.waitGroup.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiViewImpl.Run()
}
