package audio

import (
	"math"
	"time"
)

// Note is one step of a melody: a MIDI note held for Length/Div
// MIDI note 0 is a rest
type Note struct {
	Midi int
	Div  int
}

// Melody is a note sequence whose step lengths are fractions of Length
type Melody struct {
	Name   string
	Length time.Duration
	Notes  []Note
}

// Step returns the duration of note n
func (m Melody) Step(n Note) time.Duration {
	if n.Div <= 0 {
		return 0
	}
	return m.Length / time.Duration(n.Div)
}

// Duration returns the total playing time
func (m Melody) Duration() time.Duration {
	var d time.Duration
	for _, n := range m.Notes {
		d += m.Step(n)
	}
	return d
}

// NoteFreq returns the equal-temperament frequency of a MIDI note, A4 (69) = 440Hz
// Out-of-range notes return 0
func NoteFreq(midi int) float64 {
	if midi < 0 || midi > 127 {
		return 0
	}
	return 440 * math.Pow(2, float64(midi-69)/12)
}
