package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone            Action = iota
	ActionUp                     // W, Up arrow - move cursor up
	ActionDown                   // S, Down arrow - move cursor down
	ActionLeft                   // A, Left arrow - move cursor left
	ActionRight                  // D, Right arrow - move cursor right
	ActionConfirm                // Enter, Space, Z - place a disk
	ActionBack                   // B, Escape - go back to menu
	ActionRestart                // R key - restart game after game over
	ActionQuit                   // Q, Ctrl+C - exit game/session
	ActionPause                  // P - pause/unpause game
	ActionToggleHints            // H - show/hide legal destinations
	ActionToggleNeighbors        // N - highlight the cursor's neighborhood
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
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
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
	case ActionToggleHints:
		return "ToggleHints"
	case ActionToggleNeighbors:
		return "ToggleNeighbors"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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

// Empty returns true if no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
