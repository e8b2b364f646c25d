package constants

import "time"

// Idle screen saver timing
const (
	ScreenSaverLoadDelay    = 2000 * time.Millisecond
	ScreenSaverSceneDelay   = 600 * time.Millisecond
	ScreenSaverRepaintDelay = 30 * time.Millisecond
)

// Game-over wipe timing
const (
	GameOverLoadDelay    = 1500 * time.Millisecond
	GameOverSceneDelay   = 300 * time.Millisecond
	GameOverRepaintDelay = 80 * time.Millisecond
)
