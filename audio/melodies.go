package audio

import "time"

// Intro plays when the program starts
var Intro = Melody{
	Name:   "intro",
	Length: 2 * time.Second,
	Notes: []Note{
		{76, 4}, {71, 8}, {72, 8}, {74, 4}, {72, 8}, {71, 8},
		{69, 4}, {69, 8}, {72, 8}, {76, 4}, {74, 8}, {72, 8},
		{71, 4}, {71, 8}, {72, 8}, {74, 4}, {76, 4},
		{72, 4}, {69, 4}, {69, 4}, {0, 4},
		{74, 3}, {77, 8}, {81, 4}, {79, 8}, {77, 8},
		{76, 3}, {72, 8}, {76, 4}, {74, 8}, {72, 8},
		{71, 4}, {71, 8}, {72, 8}, {74, 4}, {76, 4},
		{72, 4}, {69, 4}, {69, 4}, {0, 4},
	},
}

// RowCleared plays after a lock removes rows
var RowCleared = Melody{
	Name:   "row_cleared",
	Length: 500 * time.Millisecond,
	Notes: []Note{
		{81, 3}, {62, 2}, {67, 5}, {62, 6}, {75, 1}, {87, 5}, {67, 1},
	},
}

// GameOver plays when the stack reaches the spawn row
var GameOver = Melody{
	Name:   "game_over",
	Length: 10 * time.Second,
	Notes: []Note{
		{76, 770}, {76, 55}, {81, 55}, {81, 55}, {76, 55}, {76, 55},
		{77, 55}, {81, 55}, {81, 165}, {72, 770}, {71, 55}, {71, 55},
		{71, 55}, {71, 55}, {72, 55}, {72, 55}, {71, 55}, {71, 55},
		{72, 220},
	},
}

// Short clicks for piece actions
var (
	FigureMoved   = Melody{Name: "figure_moved", Length: 15 * time.Millisecond, Notes: []Note{{60, 1}}}
	FigureRotated = Melody{Name: "figure_rotated", Length: 25 * time.Millisecond, Notes: []Note{{67, 1}}}
	FigureDropped = Melody{Name: "figure_dropped", Length: 40 * time.Millisecond, Notes: []Note{{48, 2}, {43, 2}}}
)
