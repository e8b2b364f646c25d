package input

import (
	"github.com/gdamore/tcell/v2"
)

// Key is a decoded key press: a special key, or KeyRune with the character
type Key struct {
	Code tcell.Key
	Rune rune
}

// KeyOf converts a tcell key event
func KeyOf(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Key{Code: tcell.KeyRune, Rune: ev.Rune()}
	}
	return Key{Code: ev.Key()}
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (arrows, Enter, Ctrl+*)
	Keys map[tcell.Key]Action

	// Printable characters
	Runes map[rune]Action
}

// DefaultKeyTable returns the built-in bindings: arrows and hjkl to move,
// up/k/space to rotate, p to pause, q to quit, Enter/n for a new game, m to mute
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Action{
			tcell.KeyUp:    ActionRotate,
			tcell.KeyLeft:  ActionLeft,
			tcell.KeyRight: ActionRight,
			tcell.KeyDown:  ActionDown,
			tcell.KeyEnter: ActionNewGame,
			tcell.KeyCtrlC: ActionQuit,
			tcell.KeyEsc:   ActionQuit,
		},
		Runes: map[rune]Action{
			'k': ActionRotate,
			' ': ActionRotate,
			'h': ActionLeft,
			'l': ActionRight,
			'j': ActionDown,
			'p': ActionPause,
			'q': ActionQuit,
			'n': ActionNewGame,
			'm': ActionMute,
		},
	}
}

// Lookup returns the action bound to k, ActionNone when unbound
// Letters match case-insensitively when only one case is bound
func (kt *KeyTable) Lookup(k Key) Action {
	if k.Code != tcell.KeyRune {
		return kt.Keys[k.Code]
	}
	if a, ok := kt.Runes[k.Rune]; ok {
		return a
	}
	switch {
	case k.Rune >= 'A' && k.Rune <= 'Z':
		return kt.Runes[k.Rune+'a'-'A']
	case k.Rune >= 'a' && k.Rune <= 'z':
		return kt.Runes[k.Rune-'a'+'A']
	}
	return ActionNone
}

// Merge applies override bindings; ActionNone in the override unbinds a key
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, a := range override.Keys {
		if a == ActionNone {
			delete(kt.Keys, k)
		} else {
			kt.Keys[k] = a
		}
	}
	for r, a := range override.Runes {
		if a == ActionNone {
			delete(kt.Runes, r)
		} else {
			kt.Runes[r] = a
		}
	}
}

// IsConfirm reports whether k answers yes to a prompt: y, Y or Enter
func (k Key) IsConfirm() bool {
	if k.Code == tcell.KeyRune {
		return k.Rune == 'y' || k.Rune == 'Y'
	}
	return k.Code == tcell.KeyEnter
}
