package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLoopQueueSize bounds pending callbacks before posters block
const DefaultLoopQueueSize = 256

// Loop is a real-time Scheduler backed by a single goroutine
// Timer goroutines never run game code; they post onto the loop, which drops callbacks
// whose timer was cancelled in the meantime
type Loop struct {
	clock Clock
	queue chan func()

	mu     sync.Mutex
	nextID TimerID
	timers map[TimerID]*loopTimer

	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

type loopTimer struct {
	timer    *time.Timer
	fn       func()
	period   time.Duration // 0 for one-shot
	deadline time.Time     // Next expected fire for periodic drift correction
}

// NewLoop creates a stopped loop; call Run to start dispatching
func NewLoop(clock Clock, queueSize int) *Loop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if queueSize <= 0 {
		queueSize = DefaultLoopQueueSize
	}
	return &Loop{
		clock:  clock,
		queue:  make(chan func(), queueSize),
		timers: make(map[TimerID]*loopTimer),
		done:   make(chan struct{}),
	}
}

// Now implements Scheduler
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post enqueues fn to run on the loop goroutine
// Returns false once the loop has stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run dispatches posted callbacks until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("loop already running")
	}
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop halts dispatch and releases all timers; safe to call repeatedly
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)

		l.mu.Lock()
		defer l.mu.Unlock()
		for id, t := range l.timers {
			t.timer.Stop()
			delete(l.timers, id)
		}
	})
}

// Done is closed when the loop stops
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// After implements Scheduler
func (l *Loop) After(d time.Duration, fn func()) TimerID {
	return l.schedule(d, 0, fn)
}

// Every implements Scheduler
func (l *Loop) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		panic("engine: Every requires a positive period")
	}
	return l.schedule(d, d, fn)
}

// Cancel implements Scheduler
func (l *Loop) Cancel(id TimerID) {
	if id == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[id]; ok {
		t.timer.Stop()
		delete(l.timers, id)
	}
}

// Pending returns the number of live timers
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) schedule(d, period time.Duration, fn func()) TimerID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	t := &loopTimer{
		fn:       fn,
		period:   period,
		deadline: l.clock.Now().Add(d),
	}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() { l.fire(id) })
	})
	l.timers[id] = t
	return id
}

// fire runs on the loop goroutine
func (l *Loop) fire(id TimerID) {
	l.mu.Lock()
	t, ok := l.timers[id]
	if ok && t.period == 0 {
		delete(l.timers, id)
	}
	l.mu.Unlock()

	if !ok {
		return
	}

	t.fn()

	if t.period == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, live := l.timers[id]; !live {
		return // Cancelled by its own callback
	}

	now := l.clock.Now()
	t.deadline = t.deadline.Add(t.period)
	if now.Sub(t.deadline) > t.period*2 {
		t.deadline = now.Add(t.period)
	}
	wait := t.deadline.Sub(now)
	if wait < 0 {
		wait = 0
	}
	t.timer.Reset(wait)
}
