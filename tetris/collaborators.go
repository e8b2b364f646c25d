package tetris

import (
	"github.com/lixenwraith/termtris/animation"
	"github.com/lixenwraith/termtris/history"
)

// Renderer receives every visible change; it is push-only and may skip
// repaints whose content did not change
type Renderer interface {
	RenderPlayfield(cells [][]int)
	RenderPreview(cells [][]int)
	RenderStats(s Snapshot)

	// RenderMessage shows a prompt line; empty clears it
	RenderMessage(text string)
}

// HistoryStore persists finished games
type HistoryStore interface {
	Append(r history.Record) error
	List() ([]history.Record, error)
}

// Confirmer asks the user a yes/no question
// answer must be invoked later on the scheduler goroutine, exactly once
type Confirmer interface {
	Confirm(question string, answer func(yes bool))
}

// Animator is the idle screen saver
type Animator interface {
	Start(sink animation.Sink)
	Stop()
}

// GameOverAnimator plays the game-over wipe starting from the final board
// done runs once the wipe finishes; it is skipped when stopped early
type GameOverAnimator interface {
	Start(from [][]int, sink animation.Sink, done func())
	Stop()
}

type nopRenderer struct{}

func (nopRenderer) RenderPlayfield([][]int) {}
func (nopRenderer) RenderPreview([][]int)   {}
func (nopRenderer) RenderStats(Snapshot)    {}
func (nopRenderer) RenderMessage(string)    {}

type nopAnimator struct{}

func (nopAnimator) Start(animation.Sink) {}
func (nopAnimator) Stop()                {}
