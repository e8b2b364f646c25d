package engine

import "time"

// TimerID identifies a scheduled callback; the zero value is never issued
type TimerID uint64

// Scheduler runs callbacks later on a single logical thread
//
// Contract:
//   - Callbacks never overlap each other or other work posted to the same loop
//   - Ordering between independent timers is not guaranteed beyond their deadlines
//   - A cancelled timer never runs, even if its deadline already passed
//   - Cancel of an unknown or zero id is a no-op
type Scheduler interface {
	Now() time.Time

	// After runs fn once after d
	After(d time.Duration, fn func()) TimerID

	// Every runs fn every d until cancelled
	Every(d time.Duration, fn func()) TimerID

	Cancel(id TimerID)
}
