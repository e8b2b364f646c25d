package input

import (
	"time"

	"github.com/kamstrup/intmap"

	"github.com/lixenwraith/termtris/engine"
)

// HoldTracker synthesizes key releases for terminals, which only report presses
//
// The first press of a holdable action is forwarded; auto-repeats that follow within
// the release delay are swallowed and push the release out. Once repeats stop, the
// release is reported. Other actions are forwarded on every press
//
// Must be used from the scheduler's goroutine
type HoldTracker struct {
	sched   engine.Scheduler
	delay   time.Duration
	press   func(Action)
	release func(Action)
	held    *intmap.Map[Action, engine.TimerID]
}

// NewHoldTracker creates a tracker reporting to press and release
func NewHoldTracker(sched engine.Scheduler, delay time.Duration, press, release func(Action)) *HoldTracker {
	return &HoldTracker{
		sched:   sched,
		delay:   delay,
		press:   press,
		release: release,
		held:    intmap.New[Action, engine.TimerID](int(actionCount)),
	}
}

// Key records a key press of action a
func (h *HoldTracker) Key(a Action) {
	if a == ActionNone {
		return
	}
	if !a.Holdable() {
		h.press(a)
		return
	}

	if id, ok := h.held.Get(a); ok {
		h.sched.Cancel(id)
	} else {
		h.press(a)
	}
	h.held.Put(a, h.sched.After(h.delay, func() {
		h.held.Del(a)
		h.release(a)
	}))
}

// Held reports whether a is currently considered held
func (h *HoldTracker) Held(a Action) bool {
	_, ok := h.held.Get(a)
	return ok
}

// ReleaseAll reports a release for every held action immediately
func (h *HoldTracker) ReleaseAll() {
	for a := Action(0); a < actionCount; a++ {
		if id, ok := h.held.Get(a); ok {
			h.sched.Cancel(id)
			h.held.Del(a)
			h.release(a)
		}
	}
}
