package render

// palette maps cell tags to xterm-256 color indices
// Tag 0 is an empty cell; tags 1-7 follow the piece kinds I, O, T, S, Z, J, L
var palette = [...]int{
	0: 238,
	1: 51,
	2: 226,
	3: 129,
	4: 46,
	5: 196,
	6: 27,
	7: 208,
}

const (
	colorDefault  = -1
	colorFallback = 250
	colorFrame    = 244
	colorLabel    = 250
	colorValue    = 255
	colorBanner   = 214
)

// tagColor returns the color of a cell tag; unknown tags draw gray
func tagColor(tag int) int {
	if tag < 0 || tag >= len(palette) {
		return colorFallback
	}
	return palette[tag]
}
