package engine

import (
	"time"
)

// ManualScheduler is a Scheduler driven by a virtual clock
// Nothing runs until Advance; due callbacks run in deadline order, FIFO on ties
type ManualScheduler struct {
	now    time.Time
	nextID TimerID
	seq    uint64
	timers map[TimerID]*manualTimer
}

type manualTimer struct {
	deadline time.Time
	seq      uint64
	period   time.Duration
	fn       func()
}

// NewManualScheduler creates a scheduler whose clock starts at start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{
		now:    start,
		timers: make(map[TimerID]*manualTimer),
	}
}

// Now implements Scheduler
func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// After implements Scheduler
func (m *ManualScheduler) After(d time.Duration, fn func()) TimerID {
	return m.add(d, 0, fn)
}

// Every implements Scheduler
func (m *ManualScheduler) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		panic("engine: Every requires a positive period")
	}
	return m.add(d, d, fn)
}

// Cancel implements Scheduler
func (m *ManualScheduler) Cancel(id TimerID) {
	delete(m.timers, id)
}

// Pending returns the number of live timers
func (m *ManualScheduler) Pending() int {
	return len(m.timers)
}

// Advance moves the clock forward by d, running every callback that falls due
// Callbacks scheduled during Advance run in the same call if they fall due within d
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		id, t := m.earliest()
		if t == nil || t.deadline.After(target) {
			break
		}

		m.now = t.deadline
		if t.period > 0 {
			t.deadline = t.deadline.Add(t.period)
			m.seq++
			t.seq = m.seq
		} else {
			delete(m.timers, id)
		}
		t.fn()
	}
	m.now = target
}

// RunPending advances to the earliest deadline and runs everything due there
// Returns false when no timer is pending
func (m *ManualScheduler) RunPending() bool {
	_, t := m.earliest()
	if t == nil {
		return false
	}
	m.Advance(t.deadline.Sub(m.now))
	return true
}

func (m *ManualScheduler) add(d, period time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	m.nextID++
	m.seq++
	m.timers[m.nextID] = &manualTimer{
		deadline: m.now.Add(d),
		seq:      m.seq,
		period:   period,
		fn:       fn,
	}
	return m.nextID
}

func (m *ManualScheduler) earliest() (TimerID, *manualTimer) {
	var (
		bestID TimerID
		best   *manualTimer
	)
	for id, t := range m.timers {
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			bestID, best = id, t
		}
	}
	return bestID, best
}
