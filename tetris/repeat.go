package tetris

import (
	"time"

	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/figure"
	"github.com/lixenwraith/termtris/input"
)

// Direction is a repeatable movement
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirDown
	dirCount
)

var dirDeltas = [dirCount]figure.Delta{
	DirLeft:  figure.Left,
	DirRight: figure.Right,
	DirDown:  figure.Down,
}

// DirectionOf maps a holdable action to its direction
func DirectionOf(a input.Action) (Direction, bool) {
	switch a {
	case input.ActionLeft:
		return DirLeft, true
	case input.ActionRight:
		return DirRight, true
	case input.ActionDown:
		return DirDown, true
	}
	return 0, false
}

// repeat is the auto-repeat state of one held direction
type repeat struct {
	interval time.Duration
	timer    engine.TimerID
	speedup  engine.TimerID
}

func (c *Controller) intervals(d Direction) (slow, fast time.Duration) {
	if d == DirDown {
		return c.opts.MoveY, c.opts.MoveYSpedUp
	}
	return c.opts.MoveX, c.opts.MoveXSpedUp
}

// Press starts an action; movement actions repeat until Release
func (c *Controller) Press(a input.Action) {
	if d, ok := DirectionOf(a); ok {
		c.startRepeat(d)
		return
	}
	switch a {
	case input.ActionRotate:
		c.Rotate()
	case input.ActionPause:
		c.PauseOrResume()
	case input.ActionQuit:
		c.Quit()
	case input.ActionNewGame:
		c.LaunchNewGame()
	case input.ActionMute:
		c.ToggleMute()
	}
}

// Release stops a movement action's repeat
func (c *Controller) Release(a input.Action) {
	if d, ok := DirectionOf(a); ok {
		c.stopRepeat(d)
	}
}

// Repeating reports whether d has live repeat state
func (c *Controller) Repeating(d Direction) bool {
	_, ok := c.repeats.Get(d)
	return ok
}

// startRepeat moves once, then keeps moving at the slow interval,
// switching to the fast interval after KeySpeedupDelay
func (c *Controller) startRepeat(d Direction) {
	if c.state != StatePlaying {
		return
	}
	if _, ok := c.repeats.Get(d); ok {
		return
	}

	slow, fast := c.intervals(d)
	r := &repeat{interval: slow}
	c.repeats.Put(d, r)

	c.attemptMove(d)
	// The first move may not lock, so the piece is still the same one here
	r.timer = c.sched.After(r.interval, func() { c.repeatTick(d, r) })
	r.speedup = c.sched.After(c.opts.KeySpeedupDelay, func() {
		r.interval = fast
		r.speedup = 0
	})
}

func (c *Controller) repeatTick(d Direction, r *repeat) {
	r.timer = 0
	if cur, ok := c.repeats.Get(d); !ok || cur != r || c.state != StatePlaying {
		return
	}
	if c.attemptMove(d) {
		r.timer = c.sched.After(r.interval, func() { c.repeatTick(d, r) })
		return
	}
	if d == DirDown {
		// A blocked soft drop completes as a drop
		c.cues.FigureDropped()
		c.lock()
	}
	// Blocked sideways moves stop repeating until the key is pressed again
}

func (c *Controller) stopRepeat(d Direction) {
	r, ok := c.repeats.Get(d)
	if !ok {
		return
	}
	c.sched.Cancel(r.timer)
	c.sched.Cancel(r.speedup)
	c.repeats.Del(d)
}

func (c *Controller) cancelRepeats() {
	for d := Direction(0); d < dirCount; d++ {
		c.stopRepeat(d)
	}
}

// attemptMove moves the falling piece if the target cells are free
// A blocked move plays the bump cue
func (c *Controller) attemptMove(d Direction) bool {
	delta := dirDeltas[d]
	if !c.current.CanMove(c.board, delta) {
		c.cues.FigureMoved()
		return false
	}
	c.current.Move(delta)
	c.renderPlayfield()
	return true
}
