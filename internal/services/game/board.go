package game

import "github.com/mcoot/connectn/internal/model"

// lane is one of the four run directions, in win detection priority order
type lane int

const (
	laneHorizontal lane = iota
	laneDiagonalToBottom
	laneDiagonalToTop
	laneVertical
	laneCount
)

// laneSteps holds the offset from a cell to its earlier neighbour for each lane.
// Rows grow downwards, so (-1, -1) is the upper-left neighbour.
var laneSteps = [laneCount]struct{ dx, dy int }{
	laneHorizontal:       {-1, 0},
	laneDiagonalToBottom: {-1, -1},
	laneDiagonalToTop:    {-1, 1},
	laneVertical:         {0, 1},
}

var laneNames = [laneCount]model.WinLane{
	laneHorizontal:       model.WinLaneHorizontal,
	laneDiagonalToBottom: model.WinLaneDiagonalToBottom,
	laneDiagonalToTop:    model.WinLaneDiagonalToTop,
	laneVertical:         model.WinLaneVertical,
}

// cell is an occupied board cell
type cell struct {
	owner int
	runs  [laneCount]int // Same-owner line length ending here, including this cell
}

func newCell(owner int) *cell {
	c := &cell{owner: owner}
	for i := range c.runs {
		c.runs[i] = 1
	}
	return c
}

// board is a column-major grid where nil means empty and row 0 is the top
type board struct {
	width  int
	height int
	cells  [][]*cell
	filled int
}

func newBoard(width, height int) *board {
	cells := make([][]*cell, width)
	for x := range cells {
		cells[x] = make([]*cell, height)
	}
	return &board{width: width, height: height, cells: cells}
}

func (b *board) clear() {
	for x := range b.cells {
		clear(b.cells[x])
	}
	b.filled = 0
}

func (b *board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *board) at(x, y int) *cell {
	if !b.inBounds(x, y) {
		return nil
	}
	return b.cells[x][y]
}

// freeRow returns the lowest empty row in the column, or -1 if it is full
func (b *board) freeRow(x int) int {
	column := b.cells[x]
	row := -1
	for y := range column {
		if column[y] != nil {
			break
		}
		row = y
	}
	return row
}

// drop fills the lowest empty cell of the column and returns its row
func (b *board) drop(x, owner int) int {
	row := b.freeRow(x)
	if row < 0 {
		return row
	}
	b.cells[x][row] = newCell(owner)
	b.filled++
	return row
}

func (b *board) full() bool {
	return b.filled >= b.width*b.height
}
