package animation

import (
	"github.com/lixenwraith/termtris/constants"
	"github.com/lixenwraith/termtris/engine"
)

// GameOver wipes the final playfield: rows fill from the bottom up, then clear from the top down
type GameOver struct {
	p player
}

// NewGameOver creates a wipe animation
func NewGameOver(sched engine.Scheduler) *GameOver {
	return &GameOver{p: player{sched: sched}}
}

// Start wipes from the given grid; done runs after the last frame unless stopped first
func (g *GameOver) Start(from [][]int, sink Sink, done func()) {
	g.p.run(wipe(from), sink, done)
}

// Stop cancels the wipe without calling done
func (g *GameOver) Stop() {
	g.p.stop()
}

// Running reports whether the wipe is in progress
func (g *GameOver) Running() bool {
	return g.p.running()
}

func wipe(from [][]int) []frame {
	height := len(from)
	work := clone(from)
	frames := make([]frame, 0, 2*height)

	for y := height - 1; y >= 0; y-- {
		delay := constants.GameOverRepaintDelay
		if y == height-1 {
			delay = constants.GameOverLoadDelay
		}
		fillRow(work[y], 1)
		frames = append(frames, frame{delay, clone(work)})
	}
	for y := 0; y < height; y++ {
		delay := constants.GameOverRepaintDelay
		if y == 0 {
			delay = constants.GameOverSceneDelay
		}
		fillRow(work[y], 0)
		frames = append(frames, frame{delay, clone(work)})
	}
	return frames
}

func fillRow(row []int, v int) {
	for x := range row {
		row[x] = v
	}
}
