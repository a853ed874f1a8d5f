package model

// Cell and winner sentinels
const (
	EmptyCell       = -1 // BoardValue of an unoccupied cell
	WinnerUndecided = -1 // Game still in progress (or never started)
	WinnerNone      = -2 // Board filled without a winning line
)

// Phase is the coarse lifecycle state of a game session
type Phase string

const (
	PhaseNotStarted Phase = "not_started" // Before the first Start
	PhasePlaying    Phase = "playing"     // Winner undecided
	PhaseEnded      Phase = "ended"       // Winner recorded
)

// WinLane classifies the direction of a completed winning line
type WinLane string

const (
	WinLaneNone             WinLane = ""
	WinLaneVertical         WinLane = "vertical"
	WinLaneHorizontal       WinLane = "horizontal"
	WinLaneDiagonalToTop    WinLane = "diagonal_to_top"    // bottom-left to top-right
	WinLaneDiagonalToBottom WinLane = "diagonal_to_bottom" // top-left to bottom-right
)

// Position identifies a cell on the board
type Position struct {
	Col int `json:"col"` // 0-indexed from left
	Row int `json:"row"` // 0-indexed from top
}

// BoardView is a read-only copy of a game's board and status
type BoardView struct {
	Rules         Rules
	Cells         [][]int // Column-major: Cells[col][row], EmptyCell when unoccupied
	CurrentPlayer int
	Winner        int
	WinLane       WinLane
	WinningLine   []Position
	Phase         Phase
	Moves         int
}

// BoardValue returns the owner of the cell, or EmptyCell if unoccupied or out of range
func (v *BoardView) BoardValue(col, row int) int {
	if col < 0 || col >= len(v.Cells) || row < 0 || row >= len(v.Cells[col]) {
		return EmptyCell
	}
	return v.Cells[col][row]
}

// CanSelectColumn reports whether the column exists and has a free cell
func (v *BoardView) CanSelectColumn(col int) bool {
	if col < 0 || col >= len(v.Cells) || len(v.Cells[col]) == 0 {
		return false
	}
	// Gravity keeps the top cell the last one to fill
	return v.Cells[col][0] == EmptyCell
}

// InWinningLine reports whether the cell is part of the completed line
func (v *BoardView) InWinningLine(col, row int) bool {
	for _, p := range v.WinningLine {
		if p.Col == col && p.Row == row {
			return true
		}
	}
	return false
}
