package figure

// Kind identifies a tetromino shape
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	KindCount
)

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "?"
	}
	return kindNames[k]
}

// Tag is the non-zero cell value a piece of this kind writes onto a board
func (k Kind) Tag() int { return int(k) + 1 }

// KindFromTag reverses Tag; ok is false for 0 or unknown values
func KindFromTag(tag int) (Kind, bool) {
	k := Kind(tag - 1)
	if k < 0 || k >= KindCount {
		return 0, false
	}
	return k, true
}

// shapes lists rotation states per kind in clockwise order
// Rotation cycles through the list and wraps to index 0
var shapes = [KindCount][][][]int{
	KindI: {
		{
			{1},
			{1},
			{1},
			{1},
		},
		{
			{1, 1, 1, 1},
		},
	},
	KindO: {
		{
			{1, 1},
			{1, 1},
		},
	},
	KindT: {
		{
			{1, 1, 1},
			{0, 1, 0},
		},
		{
			{0, 1},
			{1, 1},
			{0, 1},
		},
		{
			{0, 1, 0},
			{1, 1, 1},
		},
		{
			{1, 0},
			{1, 1},
			{1, 0},
		},
	},
	KindS: {
		{
			{0, 1, 1},
			{1, 1, 0},
		},
		{
			{1, 0},
			{1, 1},
			{0, 1},
		},
	},
	KindZ: {
		{
			{1, 1, 0},
			{0, 1, 1},
		},
		{
			{0, 1},
			{1, 1},
			{1, 0},
		},
	},
	KindJ: {
		{
			{0, 1},
			{0, 1},
			{1, 1},
		},
		{
			{1, 0, 0},
			{1, 1, 1},
		},
		{
			{1, 1},
			{1, 0},
			{1, 0},
		},
		{
			{1, 1, 1},
			{0, 0, 1},
		},
	},
	KindL: {
		{
			{1, 0},
			{1, 0},
			{1, 1},
		},
		{
			{1, 1, 1},
			{1, 0, 0},
		},
		{
			{1, 1},
			{0, 1},
			{0, 1},
		},
		{
			{0, 0, 1},
			{1, 1, 1},
		},
	},
}

// Rotations returns the number of rotation states of a kind
func Rotations(k Kind) int {
	return len(shapes[k])
}

// shape returns the tagged cells of a rotation state
func shape(k Kind, rotation int) [][]int {
	src := shapes[k][rotation]
	tag := k.Tag()
	out := make([][]int, len(src))
	for y, row := range src {
		out[y] = make([]int, len(row))
		for x, v := range row {
			if v != 0 {
				out[y][x] = tag
			}
		}
	}
	return out
}
