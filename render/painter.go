// Package render draws the game: a tcell screen for local play and a raw ANSI
// writer for SSH sessions. Both compose the same canvas and skip unchanged frames.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/termtris/matrix"
	"github.com/lixenwraith/termtris/tetris"
)

// helpLines are shown at the bottom of the panel
var helpLines = []string{
	"←/h →/l move  ↓/j drop",
	"↑/k/space rotate",
	"p pause  m mute  q quit",
	"enter/n new game",
}

// painter composes frames and remembers what it drew last
type painter struct {
	lay    layout
	canvas *canvas

	field   string
	preview string
	stats   tetris.Snapshot
	drawn   bool
	message string
}

func newPainter(fieldW, fieldH, previewN int) painter {
	lay := newLayout(fieldW, fieldH, previewN)
	p := painter{
		lay:    lay,
		canvas: newCanvas(lay.width, lay.height),
	}
	p.frame()
	return p
}

// frame draws the static parts
func (p *painter) frame() {
	l := p.lay
	p.canvas.box(0, 0, l.fieldW*cellWidth+2, l.fieldH+2, colorFrame)
	p.canvas.text(l.panelX, 1, "NEXT", colorLabel, true, panelWidth)
	p.canvas.box(l.panelX, l.previewY-1, l.previewN*cellWidth+2, l.previewN+2, colorFrame)
	p.canvas.grid(l.fieldX, l.fieldY, matrix.Blank(l.fieldW, l.fieldH))
	p.canvas.grid(l.previewX, l.previewY, matrix.Blank(l.previewN, l.previewN))
}

// playfield reports whether the canvas changed
func (p *painter) playfield(cells [][]int) bool {
	h := matrix.Hash(cells)
	if h == p.field {
		return false
	}
	p.field = h
	p.canvas.grid(p.lay.fieldX, p.lay.fieldY, clip(cells, p.lay.fieldW, p.lay.fieldH))
	return true
}

func (p *painter) previewCells(cells [][]int) bool {
	h := matrix.Hash(cells)
	if h == p.preview {
		return false
	}
	p.preview = h
	p.canvas.grid(p.lay.previewX, p.lay.previewY, clip(cells, p.lay.previewN, p.lay.previewN))
	return true
}

func (p *painter) statsPanel(s tetris.Snapshot) bool {
	// Elapsed only matters at display resolution
	s.Elapsed = s.Elapsed.Truncate(time.Second)
	if p.drawn && s == p.stats {
		return false
	}
	p.stats, p.drawn = s, true

	l := p.lay
	x, y := l.panelX, l.statsY
	p.canvas.fill(x, y, panelWidth, l.height-y)

	rows := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprint(s.Score)},
		{"LEVEL", fmt.Sprint(s.Level)},
		{"ROWS", fmt.Sprint(s.RowsCleared)},
		{"TIME", clockText(s.Elapsed)},
	}
	for _, r := range rows {
		p.canvas.text(x, y, r.label, colorLabel, false, panelWidth)
		p.canvas.text(x+7, y, r.value, colorValue, true, panelWidth-7)
		y++
	}
	y++

	if banner := bannerText(s.State); banner != "" {
		p.canvas.text(x, y, banner, colorBanner, true, panelWidth)
	}
	y++
	if s.Muted {
		p.canvas.text(x, y, "MUTED", colorLabel, false, panelWidth)
	}
	y++

	if s.Summary != "" && s.State == tetris.StateIdle {
		for _, line := range wrap("Last: "+s.Summary, panelWidth) {
			p.canvas.text(x, y, line, colorLabel, false, panelWidth)
			y++
		}
	}

	hy := l.height - len(helpLines)
	for i, line := range helpLines {
		p.canvas.text(x, hy+i, line, colorFrame, false, panelWidth)
	}
	return true
}

func (p *painter) messageLine(text string) bool {
	if text == p.message {
		return false
	}
	p.message = text
	p.canvas.fill(0, p.lay.messageY, p.lay.panelX, 1)
	p.canvas.text(1, p.lay.messageY, text, colorBanner, true, p.lay.panelX-1)
	return true
}

func bannerText(s tetris.State) string {
	switch s {
	case tetris.StateIdle:
		return "Press ENTER to play"
	case tetris.StatePaused:
		return "PAUSED"
	case tetris.StateGameOver:
		return "GAME OVER"
	}
	return ""
}

func clockText(d time.Duration) string {
	sec := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// clip returns cells cut to w x h so a mismatched grid never spills over the frame
func clip(cells [][]int, w, h int) [][]int {
	if len(cells) > h {
		cells = cells[:h]
	}
	out := make([][]int, len(cells))
	for y, row := range cells {
		if len(row) > w {
			row = row[:w]
		}
		out[y] = row
	}
	return out
}

// wrap breaks text into lines of at most width runes on spaces
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	n := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
