// Package audio plays the game's sound cues.
package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// amplitude of the square oscillator before the volume stage
	amplitude = 0.175
)

// Cues is the fire-and-forget sound surface used by the game
type Cues interface {
	FigureMoved()
	FigureRotated()
	FigureDropped()
	RowCleared()
	GameOver()
	Intro()
	ToggleMute() bool
	Muted() bool
}

// Player renders cues through the system speaker
// Without a working speaker it stays silent; cue calls never fail
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  *effects.Volume
	ready   bool
	muted   atomic.Bool
	onError func(error)
}

// NewPlayer creates an uninitialized player; volume is a base-2 exponent, 0 is unity
func NewPlayer(muted bool, volume float64) *Player {
	p := &Player{mixer: &beep.Mixer{}}
	p.volume = &effects.Volume{Streamer: p.mixer, Base: 2, Volume: volume}
	p.muted.Store(muted)
	return p
}

// Init opens the speaker and starts the mixer
// On failure the player keeps working in silent mode and the error is returned for logging
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.volume)
	p.ready = true
	return nil
}

// Close stops every playing cue
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.ready = false
}

// Ready reports whether a speaker is attached
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Play mixes a melody in; muted or silent players drop it
func (p *Player) Play(m Melody) bool {
	if p.muted.Load() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return false
	}

	s := Render(m, sampleRate, amplitude)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

func (p *Player) FigureMoved()   { p.Play(FigureMoved) }
func (p *Player) FigureRotated() { p.Play(FigureRotated) }
func (p *Player) FigureDropped() { p.Play(FigureDropped) }
func (p *Player) RowCleared()    { p.Play(RowCleared) }
func (p *Player) GameOver()      { p.Play(GameOver) }
func (p *Player) Intro()         { p.Play(Intro) }

// ToggleMute flips the mute flag and returns the new value
// Muting also cuts cues already playing
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			if !old {
				p.cut()
			}
			return !old
		}
	}
}

// Muted reports the mute flag
func (p *Player) Muted() bool {
	return p.muted.Load()
}

func (p *Player) cut() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Silent implements Cues without output; only the mute flag is kept
type Silent struct {
	muted atomic.Bool
}

func (s *Silent) FigureMoved()   {}
func (s *Silent) FigureRotated() {}
func (s *Silent) FigureDropped() {}
func (s *Silent) RowCleared()    {}
func (s *Silent) GameOver()      {}
func (s *Silent) Intro()         {}

func (s *Silent) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Silent) Muted() bool { return s.muted.Load() }

// Bell rings the terminal bell on row clears and game over
// Used for remote sessions where the host speaker is not the player's
type Bell struct {
	Silent
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing BEL to w
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) RowCleared() { b.ring() }
func (b *Bell) GameOver()   { b.ring() }

func (b *Bell) ring() {
	if b.Muted() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

var (
	_ Cues = (*Player)(nil)
	_ Cues = (*Silent)(nil)
	_ Cues = (*Bell)(nil)
)
