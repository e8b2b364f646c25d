package render

// cell is one terminal column; colors are xterm-256 indices or colorDefault
type cell struct {
	r    rune
	fg   int
	bold bool
}

var blankCell = cell{r: ' ', fg: colorDefault}

// canvas is the composed frame shared by every backend
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
	c.fill(0, 0, width, height)
	return c
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *canvas) at(x, y int) cell {
	if !c.inBounds(x, y) {
		return blankCell
	}
	return c.cells[y*c.width+x]
}

func (c *canvas) set(x, y int, r rune, fg int, bold bool) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, fg: fg, bold: bold}
}

// fill blanks a rectangle
func (c *canvas) fill(x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if c.inBounds(x+dx, y+dy) {
				c.cells[(y+dy)*c.width+x+dx] = blankCell
			}
		}
	}
}

// text writes s from (x, y), clipped at maxWidth columns
func (c *canvas) text(x, y int, s string, fg int, bold bool, maxWidth int) {
	i := 0
	for _, r := range s {
		if i >= maxWidth {
			return
		}
		c.set(x+i, y, r, fg, bold)
		i++
	}
}

// box draws a single-line frame whose outer size is w x h
func (c *canvas) box(x, y, w, h, fg int) {
	right, bottom := x+w-1, y+h-1
	for i := x + 1; i < right; i++ {
		c.set(i, y, '─', fg, false)
		c.set(i, bottom, '─', fg, false)
	}
	for j := y + 1; j < bottom; j++ {
		c.set(x, j, '│', fg, false)
		c.set(right, j, '│', fg, false)
	}
	c.set(x, y, '┌', fg, false)
	c.set(right, y, '┐', fg, false)
	c.set(x, bottom, '└', fg, false)
	c.set(right, bottom, '┘', fg, false)
}

// grid draws board cells two columns wide with the inner origin at (x, y)
func (c *canvas) grid(x, y int, cells [][]int) {
	for gy, row := range cells {
		for gx, v := range row {
			cx := x + gx*cellWidth
			if v == 0 {
				c.set(cx, y+gy, ' ', colorDefault, false)
				c.set(cx+1, y+gy, '·', tagColor(0), false)
				continue
			}
			color := tagColor(v)
			c.set(cx, y+gy, '█', color, false)
			c.set(cx+1, y+gy, '█', color, false)
		}
	}
}
