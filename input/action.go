// Package input turns terminal key events into game actions.
package input

// Action is a logical game command, independent of the key that produced it
type Action uint8

const (
	ActionNone Action = iota
	ActionRotate
	ActionLeft
	ActionRight
	ActionDown
	ActionPause
	ActionQuit
	ActionNewGame
	ActionMute
	actionCount
)

// actionNames are the canonical names used in keymap files
var actionNames = [actionCount]string{
	ActionNone:    "none",
	ActionRotate:  "rotate",
	ActionLeft:    "move_left",
	ActionRight:   "move_right",
	ActionDown:    "soft_drop",
	ActionPause:   "pause",
	ActionQuit:    "quit",
	ActionNewGame: "new_game",
	ActionMute:    "toggle_mute",
}

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Holdable reports whether the action repeats while its key is held
func (a Action) Holdable() bool {
	return a == ActionLeft || a == ActionRight || a == ActionDown
}

// ActionByName resolves a canonical name
func ActionByName(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return ActionNone, false
}
