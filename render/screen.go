package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termtris/tetris"
)

// Screen renders onto a tcell screen
// Must be called from the game loop goroutine
type Screen struct {
	painter
	screen tcell.Screen
}

// NewScreen creates a renderer for a fieldW x fieldH playfield and a previewN preview
func NewScreen(screen tcell.Screen, fieldW, fieldH, previewN int) *Screen {
	return &Screen{
		painter: newPainter(fieldW, fieldH, previewN),
		screen:  screen,
	}
}

// RenderPlayfield implements tetris.Renderer
func (s *Screen) RenderPlayfield(cells [][]int) {
	if s.playfield(cells) {
		s.show()
	}
}

// RenderPreview implements tetris.Renderer
func (s *Screen) RenderPreview(cells [][]int) {
	if s.previewCells(cells) {
		s.show()
	}
}

// RenderStats implements tetris.Renderer
func (s *Screen) RenderStats(snap tetris.Snapshot) {
	if s.statsPanel(snap) {
		s.show()
	}
}

// RenderMessage implements tetris.Renderer
func (s *Screen) RenderMessage(text string) {
	if s.messageLine(text) {
		s.show()
	}
}

// Redraw repaints the whole screen, used after a resize
func (s *Screen) Redraw() {
	s.screen.Clear()
	s.show()
	s.screen.Sync()
}

func (s *Screen) show() {
	c := s.canvas
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cl := c.at(x, y)
			s.screen.SetContent(x, y, cl.r, nil, cellStyle(cl))
		}
	}
	s.screen.Show()
}

func cellStyle(c cell) tcell.Style {
	style := tcell.StyleDefault
	if c.fg != colorDefault {
		style = style.Foreground(tcell.PaletteColor(c.fg))
	}
	if c.bold {
		style = style.Bold(true)
	}
	return style
}

var _ tetris.Renderer = (*Screen)(nil)
