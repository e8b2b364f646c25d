package constants

import "time"

// Board geometry
const (
	// BoardWidth is the playfield width in cells
	BoardWidth = 10

	// BoardHeight is the playfield height in cells
	BoardHeight = 20

	// PreviewSize is the edge of the square next-piece preview
	PreviewSize = 4
)

// Descend timing
// Period per level is max(DescendBase - (level-1)*DescendLevelStep, DescendFloor)
const (
	DescendBase      = 1000 * time.Millisecond
	DescendLevelStep = 75 * time.Millisecond
	DescendFloor     = 100 * time.Millisecond
)

// Input repeat timing
const (
	// MoveXInterval is the repeat period of a held left/right key
	MoveXInterval       = 100 * time.Millisecond
	MoveXIntervalSpedUp = 100 * time.Millisecond

	// MoveYInterval is the repeat period of a held soft-drop key
	MoveYInterval       = 120 * time.Millisecond
	MoveYIntervalSpedUp = 16 * time.Millisecond

	// KeySpeedupDelay is how long a key must be held before the fast interval applies
	KeySpeedupDelay = 150 * time.Millisecond

	// KeyReleaseDelay synthesizes a key-up when a terminal stops repeating a key
	// Must stay below the slowest repeat interval so a tap moves exactly once
	KeyReleaseDelay = 90 * time.Millisecond
)

// QuitConfirmAfter is the game age past which quitting asks for confirmation
const QuitConfirmAfter = 10 * time.Second
