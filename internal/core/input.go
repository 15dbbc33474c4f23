package core

// Action represents a semantic game action, abstracted from physical key presses.
// Every platform maps its own input events onto these.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow
	ActionDown              // S, J, Down arrow
	ActionLeft              // A, H, Left arrow
	ActionRight             // D, L, Right arrow
	ActionStart             // Enter, Space - start, or play again after game over
	ActionRestart           // R
	ActionPause             // P
	ActionBack              // B, Escape - back to menu
	ActionQuit              // Q, Ctrl+C
	ActionScreenshot        // Ctrl+S
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
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// IsMove reports whether a is one of the four steering actions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// ActionForKey maps a key name to an action. Names follow Bubble Tea's
// KeyMsg.String() ("up", "ctrl+c", "w", " ", "enter"), so any platform that can
// spell a key that way shares one binding table.
func ActionForKey(key string) Action {
	switch key {
	case "up", "w", "W", "k":
		return ActionUp
	case "down", "s", "S", "j":
		return ActionDown
	case "left", "a", "A", "h":
		return ActionLeft
	case "right", "d", "D", "l":
		return ActionRight
	case "enter", " ", "space":
		return ActionStart
	case "r", "R":
		return ActionRestart
	case "p", "P":
		return ActionPause
	case "b", "esc":
		return ActionBack
	case "q", "Q", "ctrl+c":
		return ActionQuit
	case "ctrl+s":
		return ActionScreenshot
	}
	return ActionNone
}
