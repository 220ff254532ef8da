package core

import "time"

// Action represents a semantic playback action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - reseed and repopulate
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P, Space - pause/unpause
	ActionFaster         // + - raise playback speed
	ActionSlower         // - - lower playback speed
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	default:
		return "Unknown"
	}
}

// InputFrame carries everything the platform hands a simulation for one frame:
// the actions triggered since the last frame and the elapsed wall time.
type InputFrame struct {
	Actions map[Action]bool

	// Delta is the measured time since the previous frame.
	// Zero means the simulation should use its nominal frame time.
	Delta time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets actions and delta for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Delta = 0
}

// DeltaSeconds returns the frame delta in seconds, falling back to
// 1/tickRate when no measurement is available.
func (f InputFrame) DeltaSeconds(tickRate int) float64 {
	if f.Delta > 0 {
		return f.Delta.Seconds()
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return 1.0 / float64(tickRate)
}
