package tetris

import (
	"time"

	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/input"
)

// Prompt is a Confirmer answered by the next key press
type Prompt struct {
	show   func(text string)
	answer func(yes bool)
}

// NewPrompt creates a prompt that displays questions through show
func NewPrompt(show func(text string)) *Prompt {
	return &Prompt{show: show}
}

// Confirm implements Confirmer
func (p *Prompt) Confirm(question string, answer func(yes bool)) {
	p.answer = answer
	p.show(question)
}

// Pending reports whether a question awaits an answer
func (p *Prompt) Pending() bool {
	return p.answer != nil
}

// Answer resolves the pending question
func (p *Prompt) Answer(yes bool) {
	answer := p.answer
	if answer == nil {
		return
	}
	p.answer = nil
	p.show("")
	answer(yes)
}

// Keys routes decoded key presses to a controller
// Terminals report no key releases, so holdable actions go through a HoldTracker
type Keys struct {
	ctrl   *Controller
	table  *input.KeyTable
	hold   *input.HoldTracker
	prompt *Prompt
	exit   func()
}

// NewKeys wires a key table to ctrl; exit runs when quit is pressed while idle
func NewKeys(ctrl *Controller, sched engine.Scheduler, table *input.KeyTable, releaseDelay time.Duration, prompt *Prompt, exit func()) *Keys {
	if table == nil {
		table = input.DefaultKeyTable()
	}
	return &Keys{
		ctrl:   ctrl,
		table:  table,
		hold:   input.NewHoldTracker(sched, releaseDelay, ctrl.Press, ctrl.Release),
		prompt: prompt,
		exit:   exit,
	}
}

// Key handles one key press
func (k *Keys) Key(key input.Key) {
	if k.prompt != nil && k.prompt.Pending() {
		k.prompt.Answer(key.IsConfirm())
		return
	}

	a := k.table.Lookup(key)
	if a == input.ActionQuit && k.ctrl.State() == StateIdle {
		if k.exit != nil {
			k.exit()
		}
		return
	}
	if a == input.ActionPause || a == input.ActionQuit {
		k.hold.ReleaseAll()
	}
	k.hold.Key(a)
}
