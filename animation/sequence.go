// Package animation draws the idle screen saver and the game-over wipe onto the playfield.
// Animations are chains of scheduler callbacks guarded by an engine.Task, so stopping
// one mid-way never renders another frame.
package animation

import (
	"time"

	"github.com/lixenwraith/termtris/engine"
)

// Sink receives each frame; the grid is owned by the receiver
type Sink func(cells [][]int)

// frame is one rendered grid shown after delay
type frame struct {
	delay time.Duration
	cells [][]int
}

// player runs a frame list on a scheduler
type player struct {
	sched engine.Scheduler
	task  engine.Task
	timer engine.TimerID
}

// run shows frames in order, then calls done if the run was not cancelled
func (p *player) run(frames []frame, sink Sink, done func()) {
	p.stop()
	step := p.task.Start()
	p.next(step, frames, 0, sink, done)
}

func (p *player) next(step engine.Step, frames []frame, i int, sink Sink, done func()) {
	if !step.Alive() {
		return
	}
	if i == len(frames) {
		p.timer = 0
		step.Finish()
		if done != nil {
			done()
		}
		return
	}

	f := frames[i]
	p.timer = p.sched.After(f.delay, func() {
		if !step.Alive() {
			return
		}
		sink(clone(f.cells))
		p.next(step, frames, i+1, sink, done)
	})
}

func (p *player) stop() {
	p.task.Cancel()
	if p.timer != 0 {
		p.sched.Cancel(p.timer)
		p.timer = 0
	}
}

func (p *player) running() bool {
	return p.task.Running()
}

func clone(cells [][]int) [][]int {
	out := make([][]int, len(cells))
	for y, row := range cells {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// spiral lists every cell of a width x height grid clockwise from the top-left corner,
// ring by ring towards the center
func spiral(width, height int) [][2]int {
	out := make([][2]int, 0, width*height)
	top, bottom, left, right := 0, height-1, 0, width-1

	for top <= bottom && left <= right {
		for x := left; x <= right; x++ {
			out = append(out, [2]int{x, top})
		}
		for y := top + 1; y <= bottom; y++ {
			out = append(out, [2]int{right, y})
		}
		if top < bottom {
			for x := right - 1; x >= left; x-- {
				out = append(out, [2]int{x, bottom})
			}
		}
		if left < right {
			for y := bottom - 1; y > top; y-- {
				out = append(out, [2]int{left, y})
			}
		}
		top, bottom, left, right = top+1, bottom-1, left+1, right-1
	}
	return out
}
