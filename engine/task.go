package engine

import "sync/atomic"

// Task is a cancellable chain of scheduled steps
// Each Start issues a new generation; steps of older generations see Alive() == false
// and must stop rendering and stop scheduling successors
type Task struct {
	gen     atomic.Uint64
	running atomic.Bool
}

// Step is the liveness guard captured by one generation of a task
type Step struct {
	task *Task
	gen  uint64
}

// Start invalidates any running generation and begins a new one
func (t *Task) Start() Step {
	gen := t.gen.Add(1)
	t.running.Store(true)
	return Step{task: t, gen: gen}
}

// Cancel invalidates the running generation
func (t *Task) Cancel() {
	t.gen.Add(1)
	t.running.Store(false)
}

// Running reports whether a generation is live
func (t *Task) Running() bool {
	return t.running.Load()
}

// Alive reports whether this step's generation is still current
func (s Step) Alive() bool {
	return s.task != nil && s.task.running.Load() && s.task.gen.Load() == s.gen
}

// Finish ends the generation if it is still current
func (s Step) Finish() {
	if s.task != nil && s.task.gen.CompareAndSwap(s.gen, s.gen+1) {
		s.task.running.Store(false)
	}
}
