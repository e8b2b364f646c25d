// Package matrix holds the fixed-size cell grid a piece falls onto.
package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Overlay is anything that occupies cells at a position on a board
// Cells is row-major; zero entries are transparent
type Overlay interface {
	Cells() [][]int
	Position() (x, y int)
}

// Board is a width x height grid of occupancy values
// 0 is empty, any other value is filled and may carry a kind tag
//
// Dimensions are fixed at construction and every row always holds width cells
type Board struct {
	width  int
	height int
	cells  [][]int
}

// New creates an empty board
// Panics on non-positive dimensions since an empty row would count as filled
func New(width, height int) *Board {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("matrix: invalid board size %dx%d", width, height))
	}
	b := &Board{width: width, height: height}
	b.Reset()
	return b
}

// Width returns the number of columns
func (b *Board) Width() int { return b.width }

// Height returns the number of rows
func (b *Board) Height() int { return b.height }

// Reset empties every cell without reallocating the board
func (b *Board) Reset() {
	b.cells = blank(b.width, b.height)
}

// InBounds reports whether (x, y) lies on the board
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell value, 0 for out-of-bounds coordinates
func (b *Board) At(x, y int) int {
	if !b.InBounds(x, y) {
		return 0
	}
	return b.cells[y][x]
}

// IsFree reports whether (x, y) is on the board and empty
func (b *Board) IsFree(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y][x] == 0
}

// Fill sets a single cell, ignoring out-of-bounds coordinates
func (b *Board) Fill(x, y, value int) {
	if b.InBounds(x, y) {
		b.cells[y][x] = value
	}
}

// Cells returns a deep copy of the grid
func (b *Board) Cells() [][]int {
	return clone(b.cells)
}

// ComposeWith returns the grid with the overlay drawn on top
// The board is not modified. Cells of the overlay that fall outside the board are dropped,
// so a speculative position never panics during rendering
func (b *Board) ComposeWith(o Overlay) [][]int {
	out := clone(b.cells)
	if o == nil {
		return out
	}
	ox, oy := o.Position()
	for dy, row := range o.Cells() {
		for dx, v := range row {
			if v == 0 {
				continue
			}
			x, y := ox+dx, oy+dy
			if b.InBounds(x, y) {
				out[y][x] = v
			}
		}
	}
	return out
}

// Merge writes the overlay permanently into the grid
// Caller must have verified the overlay fits; overlapping cells are overwritten silently
func (b *Board) Merge(o Overlay) {
	ox, oy := o.Position()
	for dy, row := range o.Cells() {
		for dx, v := range row {
			if v != 0 {
				b.cells[oy+dy][ox+dx] = v
			}
		}
	}
}

// ClearFilledRows removes every completely filled row, shifts the remaining rows down
// and pads the top with empty rows. Returns the number of rows removed
func (b *Board) ClearFilledRows() int {
	kept := make([][]int, 0, b.height)
	for _, row := range b.cells {
		if !IsRowFilled(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	b.cells = append(blank(b.width, cleared), kept...)
	return cleared
}

// IsRowFilled reports whether every cell of the row is non-zero
func IsRowFilled(row []int) bool {
	for _, v := range row {
		if v == 0 {
			return false
		}
	}
	return true
}

// Hash returns a stable key of a grid, used by renderers to skip unchanged frames
func Hash(cells [][]int) string {
	var sb strings.Builder
	for i, row := range cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			sb.WriteString(strconv.Itoa(v))
			sb.WriteByte(',')
		}
	}
	return sb.String()
}

// Blank returns an empty width x height grid
func Blank(width, height int) [][]int {
	return blank(width, height)
}

func blank(width, height int) [][]int {
	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
	}
	return cells
}

func clone(cells [][]int) [][]int {
	out := make([][]int, len(cells))
	for y, row := range cells {
		out[y] = append([]int(nil), row...)
	}
	return out
}
