package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case " ", "enter": // Keyboard split of the largest bubble
		return core.ActionSplit, false
	case "a":
		return core.ActionSplitAll, false
	case "s", "esc":
		return core.ActionStop, false
	case "r":
		return core.ActionRestart, false
	case "tab":
		return core.ActionShape, false
	case "ctrl+s":
		return core.ActionScreenshot, false
	}

	return core.ActionNone, false
}

// MapMouse translates a mouse message to an action. A press or a drag
// with the left button splits whatever bubble is under the pointer.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Button != tea.MouseButtonLeft {
		return core.ActionNone
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		return core.ActionSplit
	}
	return core.ActionNone
}
