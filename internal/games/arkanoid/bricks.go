package arkanoid

import "github.com/vovakirdan/neon-arcade/internal/core"

// Brick is one cell of the grid. Destroyed only ever goes from false to true
// until the grid is rebuilt.
type Brick struct {
	core.Rect
	Row, Col  int
	Points    int
	Color     BrickColor
	Destroyed bool
}

// RowPoints returns the score for a brick in the given row. Row 0 is the top
// row and is worth the most.
func RowPoints(row int) int {
	return (BrickRows - row) * rowPointStep
}

// buildGrid lays out a full grid centred horizontally on a canvas of width w.
func buildGrid(w, scale float64, palette []BrickColor) []Brick {
	bw, bh, pad := brickWidth*scale, brickHeight*scale, brickPadding*scale
	startX := (w - gridWidth*scale) / 2
	startY := gridTop * scale

	bricks := make([]Brick, 0, BrickRows*BrickCols)
	for row := range BrickRows {
		for col := range BrickCols {
			bricks = append(bricks, Brick{
				Rect:   core.NewRect(startX+float64(col)*(bw+pad), startY+float64(row)*(bh+pad), bw, bh),
				Row:    row,
				Col:    col,
				Points: RowPoints(row),
				Color:  palette[row%len(palette)],
			})
		}
	}
	return bricks
}

func remaining(bricks []Brick) int {
	n := 0
	for _, b := range bricks {
		if !b.Destroyed {
			n++
		}
	}
	return n
}
