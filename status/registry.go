package status

import "sync/atomic"

// Metric keys written by the game controller
const (
	KeyTicks       = "engine.ticks"
	KeyGames       = "game.started"
	KeyLocks       = "game.locks"
	KeyRows        = "game.rows"
	KeyTetrises    = "game.tetrises"
	KeyGameOvers   = "game.overs"
	KeyPaused      = "game.paused"
	KeyState       = "game.state"
	KeyHistoryErrs = "history.errors"
	KeySessions    = "ssh.sessions"
)

// Registry is the central metrics facade
// The controller caches pointers during construction; hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// IntSnapshot copies every integer metric
func (r *Registry) IntSnapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
