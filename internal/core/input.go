package core

import "github.com/vovakirdan/tui-sokoban/internal/sokoban"

// Action represents a semantic action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow
	ActionDown            // S, J, Down arrow
	ActionLeft            // A, H, Left arrow
	ActionRight           // D, L, Right arrow
	ActionReset           // R - restore the level
	ActionNext            // N - next level
	ActionPrevious        // P - previous level
	ActionSave            // Ctrl+S
	ActionLoad            // Ctrl+L
	ActionConfirm         // Enter
	ActionBack            // Esc - back to level select
	ActionHelp            // ?
	ActionQuit            // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionReset:    "Reset",
	ActionNext:     "Next",
	ActionPrevious: "Previous",
	ActionSave:     "Save",
	ActionLoad:     "Load",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionHelp:     "Help",
	ActionQuit:     "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "Unknown"
}

// Dir converts a movement action into an engine direction.
func (a Action) Dir() (sokoban.Dir, bool) {
	switch a {
	case ActionUp:
		return sokoban.Up, true
	case ActionDown:
		return sokoban.Down, true
	case ActionLeft:
		return sokoban.Left, true
	case ActionRight:
		return sokoban.Right, true
	}
	return 0, false
}

// IsMove reports whether the action moves the player.
func (a Action) IsMove() bool {
	_, ok := a.Dir()
	return ok
}
