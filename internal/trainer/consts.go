package trainer

import "time"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeWorkoutSelection UIMode = iota // Workout list and details
	UIModeWorkoutDashboard               // Live session: phase, countdown, progress
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeWorkoutSelection, DisplayName: "Workout Selection", KeyBinding: '1'},
	{Mode: UIModeWorkoutDashboard, DisplayName: "Workout Dashboard", KeyBinding: '2'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// CountStep is the count/reps change per key press on the dashboard
const CountStep = 1

// Log pane limits
const (
	maxLogLines          = 1000
	logResizePollPeriod  = 100 * time.Millisecond
	progressBarWidth     = 30
	uiLogChannelCapacity = 256
)
