package events

import "time"

// PlayPausePayload carries the pause flag after the toggle
type PlayPausePayload struct {
	Paused bool
}

// GameOverPayload carries the final results and a human readable summary
type GameOverPayload struct {
	Score       int
	Level       int
	RowsCleared int
	Duration    time.Duration
	Summary     string
}
