package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock measures play time: elapsed time on a source clock minus time spent paused
type PausableClock struct {
	mu sync.RWMutex

	source Clock

	startTime time.Time // Source time at Restart

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time     // Source time when current pause started
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running clock started at the source's current time
func NewPausableClock(source Clock) *PausableClock {
	pc := &PausableClock{source: source}
	pc.Restart()
	return pc
}

// Restart zeroes elapsed time and clears pause state
func (pc *PausableClock) Restart() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.startTime = pc.source.Now()
	pc.pauseStartTime = time.Time{}
	pc.totalPausedTime = 0
	pc.isPaused.Store(false)
}

// StartedAt returns the source time of the last Restart
func (pc *PausableClock) StartedAt() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.startTime
}

// Elapsed returns play time since Restart, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	end := pc.source.Now()
	if pc.isPaused.Load() {
		end = pc.pauseStartTime
	}
	return end.Sub(pc.startTime) - pc.totalPausedTime
}

// Pause stops play time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.source.Now()
	}
}

// Resume continues play time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time, including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
