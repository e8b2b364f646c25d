package render

// cellWidth is the number of terminal columns per board cell
const cellWidth = 2

// panelWidth is the width of the side panel right of the playfield
const panelWidth = 26

// layout positions the playfield, preview and stats panel
//
//	┌────────────────────┐  NEXT
//	│                    │  ┌────────┐
//	│     playfield      │  │preview │
//	│                    │  └────────┘
//	│                    │  SCORE ...
//	└────────────────────┘
//	message line
type layout struct {
	fieldW, fieldH int
	previewN       int

	fieldX, fieldY     int // Inner origin of the playfield
	panelX             int
	previewX, previewY int // Inner origin of the preview
	statsY             int
	messageY           int

	width, height int
}

func newLayout(fieldW, fieldH, previewN int) layout {
	l := layout{
		fieldW:   fieldW,
		fieldH:   fieldH,
		previewN: previewN,
		fieldX:   1,
		fieldY:   1,
		panelX:   fieldW*cellWidth + 4,
		messageY: fieldH + 2,
	}
	l.previewX = l.panelX + 1
	l.previewY = 3
	l.statsY = l.previewY + previewN + 2
	l.width = l.panelX + panelWidth
	l.height = max(fieldH+3, l.statsY+14)
	return l
}
