package tetris

import "time"

// State is the controller's lifecycle phase
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

var stateNames = [...]string{
	StateIdle:     "idle",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateGameOver: "game_over",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Snapshot is a read-only view of the controller for renderers and tests
type Snapshot struct {
	State       State
	Score       int
	Level       int
	RowsCleared int
	Elapsed     time.Duration
	Muted       bool

	// Summary of the last finished game, empty before the first game over
	Summary string
}
