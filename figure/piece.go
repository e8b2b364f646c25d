// Package figure implements a single tetromino and its placement geometry.
// A piece never mutates a board; the board is passed to each query.
package figure

import (
	"math/rand"
)

// Field is the read-only board view a piece validates against
type Field interface {
	Width() int
	IsFree(x, y int) bool
}

// Delta is a translation in cells; positive Y moves down
type Delta struct {
	X, Y int
}

var (
	Left  = Delta{X: -1}
	Right = Delta{X: 1}
	Down  = Delta{Y: 1}
)

// Piece is one tetromino with a rotation state and a top-left position
// Position validity is checked on demand, never enforced by the piece itself
type Piece struct {
	kind     Kind
	rotation int
	cells    [][]int
	x, y     int
}

// New creates a piece of the given kind and rotation at (0, 0)
// Rotation wraps into the kind's state list
func New(kind Kind, rotation int) *Piece {
	n := Rotations(kind)
	rotation = ((rotation % n) + n) % n
	return &Piece{
		kind:     kind,
		rotation: rotation,
		cells:    shape(kind, rotation),
	}
}

// Spawn creates a piece of uniformly random kind and rotation at a random legal X on row 0
func Spawn(f Field, rng *rand.Rand) *Piece {
	kind := Kind(rng.Intn(int(KindCount)))
	p := New(kind, rng.Intn(Rotations(kind)))
	p.Respawn(f, rng)
	return p
}

// Respawn moves the piece to row 0 at a random X where its bounding box fits the field width
// Used when the preview piece is promoted onto the playfield
func (p *Piece) Respawn(f Field, rng *rand.Rand) {
	maxX := f.Width() - p.Width()
	p.x = 0
	if maxX > 0 {
		p.x = rng.Intn(maxX + 1)
	}
	p.y = 0
}

// Kind returns the tetromino kind
func (p *Piece) Kind() Kind { return p.kind }

// Rotation returns the current rotation index
func (p *Piece) Rotation() int { return p.rotation }

// Cells returns the current rotation's tagged cells
func (p *Piece) Cells() [][]int { return p.cells }

// Position returns the top-left corner on the owning board
func (p *Piece) Position() (x, y int) { return p.x, p.y }

// SetPosition places the piece without validation
func (p *Piece) SetPosition(x, y int) {
	p.x, p.y = x, y
}

// Width is the bounding box width of the current rotation
func (p *Piece) Width() int { return len(p.cells[0]) }

// Height is the bounding box height of the current rotation
func (p *Piece) Height() int { return len(p.cells) }

// FitsInto reports whether the piece at its current position lies on free cells only
func (p *Piece) FitsInto(f Field) bool {
	return fits(f, p.cells, p.x, p.y)
}

// CanMove reports whether translating by d keeps every occupied cell in bounds and over free cells
func (p *Piece) CanMove(f Field, d Delta) bool {
	return fits(f, p.cells, p.x+d.X, p.y+d.Y)
}

// Move applies the translation unconditionally; pair with CanMove
func (p *Piece) Move(d Delta) {
	p.x += d.X
	p.y += d.Y
}

// CanRotate reports whether the next rotation state fits after the right-edge clamp
func (p *Piece) CanRotate(f Field) bool {
	_, cells, x := p.nextRotation(f)
	return fits(f, cells, x, p.y)
}

// Rotate advances to the next rotation state, applying the same clamp CanRotate validated
// Returns false without changes when the rotated piece does not fit
func (p *Piece) Rotate(f Field) bool {
	rotation, cells, x := p.nextRotation(f)
	if !fits(f, cells, x, p.y) {
		return false
	}
	p.rotation = rotation
	p.cells = cells
	p.x = x
	return true
}

// nextRotation computes the following state and its X, pulled left so the
// right edge stays within the field. The left edge and the stack are not kicked
func (p *Piece) nextRotation(f Field) (rotation int, cells [][]int, x int) {
	rotation = (p.rotation + 1) % Rotations(p.kind)
	cells = shape(p.kind, rotation)
	x = p.x
	if over := x + len(cells[0]) - f.Width(); over > 0 {
		x -= over
	}
	return rotation, cells, x
}

func fits(f Field, cells [][]int, px, py int) bool {
	for dy, row := range cells {
		for dx, v := range row {
			if v != 0 && !f.IsFree(px+dx, py+dy) {
				return false
			}
		}
	}
	return true
}
