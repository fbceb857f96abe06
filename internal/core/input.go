package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - step left
	ActionRight          // D, Right arrow - step right
	ActionJump           // W, Up, Space - jump
	ActionDuck           // S, Down - duck
	ActionRestart        // R - start a new session after game over
	ActionHelp           // ? - toggle the full help view
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action is a player intent consumed by the
// simulation, as opposed to a platform-level command.
func (a Action) IsMovement() bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump, ActionDuck:
		return true
	}
	return false
}
