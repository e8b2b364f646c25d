package events

import (
	"time"
)

// EventType represents the type of lifecycle event
type EventType int

const (
	// EventNewGame signals a fresh game has started
	// Trigger: Controller.LaunchNewGame | Payload: nil
	EventNewGame EventType = iota

	// EventPlayPause signals the pause flag flipped
	// Trigger: Controller.PauseOrResume | Payload: *PlayPausePayload
	EventPlayPause

	// EventGameOver signals a spawn-blocked loss
	// Trigger: Controller lock path | Payload: *GameOverPayload
	// Always precedes the EventQuit that follows the game-over animation
	EventGameOver

	// EventQuit signals the controller returned to idle
	// Trigger: Controller.Quit, game-over animation completion | Payload: nil
	EventQuit
)

var eventNames = map[EventType]string{
	EventNewGame:   "NEW_GAME",
	EventPlayPause: "PLAY_PAUSE",
	EventGameOver:  "GAME_OVER",
	EventQuit:      "QUIT",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// GameEvent represents a single lifecycle event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
