package tetris

import (
	"time"

	"github.com/lixenwraith/termtris/config"
	"github.com/lixenwraith/termtris/constants"
)

// Options are the geometry and timings of one controller
type Options struct {
	Width       int
	Height      int
	PreviewSize int

	// Descend period is max(Descend - (level-1)*DescendLevelStep, DescendFloor)
	Descend          time.Duration
	DescendLevelStep time.Duration
	DescendFloor     time.Duration

	MoveX           time.Duration
	MoveXSpedUp     time.Duration
	MoveY           time.Duration
	MoveYSpedUp     time.Duration
	KeySpeedupDelay time.Duration

	// QuitConfirmAfter is the play time past which quitting asks first; 0 always asks
	QuitConfirmAfter time.Duration
}

// DefaultOptions returns the built-in geometry and timings
func DefaultOptions() Options {
	return Options{
		Width:            constants.BoardWidth,
		Height:           constants.BoardHeight,
		PreviewSize:      constants.PreviewSize,
		Descend:          constants.DescendBase,
		DescendLevelStep: constants.DescendLevelStep,
		DescendFloor:     constants.DescendFloor,
		MoveX:            constants.MoveXInterval,
		MoveXSpedUp:      constants.MoveXIntervalSpedUp,
		MoveY:            constants.MoveYInterval,
		MoveYSpedUp:      constants.MoveYIntervalSpedUp,
		KeySpeedupDelay:  constants.KeySpeedupDelay,
		QuitConfirmAfter: constants.QuitConfirmAfter,
	}
}

// OptionsFrom derives options from a validated configuration
func OptionsFrom(cfg *config.Config) Options {
	t := cfg.Timing
	return Options{
		Width:            cfg.Board.Width,
		Height:           cfg.Board.Height,
		PreviewSize:      cfg.Board.PreviewSize,
		Descend:          t.Descend(),
		DescendLevelStep: t.DescendLevelStep(),
		DescendFloor:     t.DescendFloor(),
		MoveX:            t.MoveX(),
		MoveXSpedUp:      t.MoveXSpedUp(),
		MoveY:            t.MoveY(),
		MoveYSpedUp:      t.MoveYSpedUp(),
		KeySpeedupDelay:  t.KeySpeedupDelay(),
		QuitConfirmAfter: t.QuitConfirmAfter(),
	}
}

// DescendPeriod returns the gravity tick period at level
func (o Options) DescendPeriod(level int) time.Duration {
	return max(o.Descend-time.Duration(level-1)*o.DescendLevelStep, o.DescendFloor)
}
