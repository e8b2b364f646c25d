package render

import (
	"bufio"
	"io"
	"strconv"
	"sync"

	"github.com/lixenwraith/termtris/tetris"
)

// Escape sequences written by the ANSI renderer
var (
	seqEnter = []byte("\x1b[?1049h\x1b[?25l\x1b[?7l\x1b[2J")
	seqLeave = []byte("\x1b[0m\x1b[?7h\x1b[?25h\x1b[?1049l")
	seqClear = []byte("\x1b[2J")
	seqReset = []byte("\x1b[0m")
)

// ANSI renders to a raw terminal stream, writing only cells that changed
// since the previous flush
type ANSI struct {
	painter

	mu    sync.Mutex
	w     *bufio.Writer
	front []cell
	valid bool
}

// NewANSI creates a renderer writing to w
func NewANSI(w io.Writer, fieldW, fieldH, previewN int) *ANSI {
	a := &ANSI{
		painter: newPainter(fieldW, fieldH, previewN),
		w:       bufio.NewWriterSize(w, 16384),
	}
	a.front = make([]cell, len(a.canvas.cells))
	return a
}

// Open switches the terminal to the alternate screen and paints everything
func (a *ANSI) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.w.Write(seqEnter)
	a.valid = false
	return a.flushLocked()
}

// Close restores the primary screen
func (a *ANSI) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.w.Write(seqLeave)
	return a.w.Flush()
}

// Redraw clears the terminal and repaints every cell
func (a *ANSI) Redraw() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.w.Write(seqClear)
	a.valid = false
	return a.flushLocked()
}

// RenderPlayfield implements tetris.Renderer
func (a *ANSI) RenderPlayfield(cells [][]int) {
	if a.playfield(cells) {
		a.flush()
	}
}

// RenderPreview implements tetris.Renderer
func (a *ANSI) RenderPreview(cells [][]int) {
	if a.previewCells(cells) {
		a.flush()
	}
}

// RenderStats implements tetris.Renderer
func (a *ANSI) RenderStats(s tetris.Snapshot) {
	if a.statsPanel(s) {
		a.flush()
	}
}

// RenderMessage implements tetris.Renderer
func (a *ANSI) RenderMessage(text string) {
	if a.messageLine(text) {
		a.flush()
	}
}

func (a *ANSI) flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	// Write errors surface on the session's next read; nothing to do here
	_ = a.flushLocked()
}

func (a *ANSI) flushLocked() error {
	c := a.canvas
	cursorX, cursorY := -1, -1
	var last cell
	styled := false

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			idx := y*c.width + x
			cl := c.cells[idx]
			if a.valid && cl == a.front[idx] {
				continue
			}
			if x != cursorX || y != cursorY {
				writeCursor(a.w, x, y)
			}
			if !styled || cl.fg != last.fg || cl.bold != last.bold {
				writeStyle(a.w, cl)
				last, styled = cl, true
			}
			a.w.WriteRune(cl.r)
			a.front[idx] = cl
			cursorX, cursorY = x+1, y
		}
	}
	a.valid = true

	a.w.Write(seqReset)
	return a.w.Flush()
}

// writeCursor moves to a zero-based column and row
func writeCursor(w *bufio.Writer, x, y int) {
	w.WriteString("\x1b[")
	w.WriteString(strconv.Itoa(y + 1))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(x + 1))
	w.WriteByte('H')
}

func writeStyle(w *bufio.Writer, c cell) {
	w.WriteString("\x1b[0")
	if c.bold {
		w.WriteString(";1")
	}
	if c.fg != colorDefault {
		w.WriteString(";38;5;")
		w.WriteString(strconv.Itoa(c.fg))
	}
	w.WriteByte('m')
}

var _ tetris.Renderer = (*ANSI)(nil)
