package core

// Action represents a semantic user intent, abstracted from physical keys
// and mouse buttons.
type Action int

const (
	ActionNone       Action = iota
	ActionSplit             // Mouse press or motion over a cell
	ActionSplitAll          // A - auto-complete the reveal
	ActionStop              // S - stop auto-complete
	ActionRestart           // R - rebuild the pyramid from scratch
	ActionShape             // Tab - toggle square/circle cells
	ActionScreenshot        // Ctrl+S - save the current frame
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSplit:
		return "Split"
	case ActionSplitAll:
		return "SplitAll"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionShape:
		return "Shape"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
