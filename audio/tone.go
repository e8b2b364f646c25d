package audio

import (
	"github.com/gopxl/beep"
)

// square is a fixed-length square wave at a constant amplitude
type square struct {
	rate   beep.SampleRate
	freq   float64
	amp    float64
	phase  float64
	remain int
}

func newSquare(rate beep.SampleRate, freq, amp float64, samples int) *square {
	return &square{rate: rate, freq: freq, amp: amp, remain: samples}
}

func (s *square) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.remain <= 0 {
			return i, i > 0
		}
		v := s.amp
		if s.phase >= 0.5 {
			v = -s.amp
		}
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		if s.phase >= 1 {
			s.phase -= float64(int(s.phase))
		}
		s.remain--
	}
	return len(samples), true
}

func (s *square) Err() error {
	return nil
}

// Render turns a melody into a finite streamer of square tones and rests
func Render(m Melody, rate beep.SampleRate, amp float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(m.Notes))
	for _, n := range m.Notes {
		samples := rate.N(m.Step(n))
		if samples <= 0 {
			continue
		}
		if n.Midi == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		parts = append(parts, newSquare(rate, NoteFreq(n.Midi), amp, samples))
	}
	return beep.Seq(parts...)
}
