package animation

import (
	"github.com/lixenwraith/termtris/constants"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/matrix"
)

// logo is the idle picture, drawn centered on the playfield
var logo = [][]int{
	{0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 1, 0, 0, 1, 1, 1, 0, 0},
	{0, 0, 1, 0, 0, 1, 0, 1, 0, 0},
	{0, 1, 1, 1, 0, 1, 1, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0, 1, 1, 1, 0, 0},
	{0, 0, 0, 1, 0, 1, 0, 1, 0, 0},
	{0, 1, 1, 1, 0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	{1, 0, 1, 1, 0, 1, 0, 1, 1, 0},
	{1, 0, 1, 0, 1, 1, 0, 0, 1, 0},
	{1, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 1},
}

// blinks is how many times the logo flashes after the spiral
const blinks = 3

// ScreenSaver loops the idle animation until stopped:
// logo, spiral fill, spiral reveal, blinking logo, repeat
type ScreenSaver struct {
	p      player
	width  int
	height int
	canvas [][]int
}

// NewScreenSaver creates an idle animation for a width x height playfield
func NewScreenSaver(sched engine.Scheduler, width, height int) *ScreenSaver {
	return &ScreenSaver{
		p:      player{sched: sched},
		width:  width,
		height: height,
		canvas: fitLogo(width, height),
	}
}

// Start begins looping, replacing a running loop
func (s *ScreenSaver) Start(sink Sink) {
	frames := s.frames()
	var loop func()
	loop = func() {
		s.p.run(frames, sink, loop)
	}
	loop()
}

// Stop cancels the loop; no frame is rendered afterwards
func (s *ScreenSaver) Stop() {
	s.p.stop()
}

// Running reports whether the loop is active
func (s *ScreenSaver) Running() bool {
	return s.p.running()
}

// Logo returns the idle picture at playfield size
func (s *ScreenSaver) Logo() [][]int {
	return clone(s.canvas)
}

// frames builds one pass of the loop
func (s *ScreenSaver) frames() []frame {
	blank := matrix.Blank(s.width, s.height)
	frames := []frame{
		{constants.ScreenSaverSceneDelay, s.canvas},
		{constants.ScreenSaverLoadDelay, s.canvas},
	}

	work := clone(s.canvas)
	path := spiral(s.width, s.height)
	for _, c := range path {
		work[c[1]][c[0]] = 1
		frames = append(frames, frame{constants.ScreenSaverRepaintDelay, clone(work)})
	}
	for _, c := range path {
		work[c[1]][c[0]] = s.canvas[c[1]][c[0]]
		frames = append(frames, frame{constants.ScreenSaverRepaintDelay, clone(work)})
	}

	for i := 0; i < blinks; i++ {
		frames = append(frames,
			frame{constants.ScreenSaverSceneDelay, blank},
			frame{constants.ScreenSaverSceneDelay, s.canvas},
		)
	}
	return frames
}

// fitLogo centers the logo on a blank grid, cropping when the playfield is smaller
func fitLogo(width, height int) [][]int {
	out := matrix.Blank(width, height)
	offX := (width - len(logo[0])) / 2
	offY := (height - len(logo)) / 2
	for y, row := range logo {
		for x, v := range row {
			tx, ty := x+offX, y+offY
			if tx >= 0 && tx < width && ty >= 0 && ty < height {
				out[ty][tx] = v
			}
		}
	}
	return out
}
