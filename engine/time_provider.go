package engine

import (
	"sync"
	"time"
)

// Clock is any source of the current time
// Schedulers satisfy it, so game time can follow a virtual clock in tests
type Clock interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// StepClock only moves when set or advanced; safe for concurrent use
// Unlike ManualScheduler it fires nothing, so it suits code that reads time but never waits
type StepClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewStepClock creates a clock stopped at start
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// Now implements Clock
func (c *StepClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set jumps to t, backwards included
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
