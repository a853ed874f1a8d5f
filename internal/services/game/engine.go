package game

import (
	"fmt"

	"github.com/mcoot/connectn/internal/model"
)

// Engine owns the board, the current player cursor and the cached win state of
// a single game session. It is not safe for concurrent use.
type Engine struct {
	rules   model.Rules
	board   *board
	phase   model.Phase
	player  int
	winner  int
	winLane model.WinLane
	line    []model.Position

	// checked is false while a move has not yet been evaluated for a win
	checked bool
}

// New creates an engine bound to the given rules. The game must be started
// with Start before any move is accepted.
func New(rules model.Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		rules:   rules,
		board:   newBoard(rules.Width, rules.Height),
		phase:   model.PhaseNotStarted,
		player:  rules.FirstPlayer,
		winner:  model.WinnerUndecided,
		winLane: model.WinLaneNone,
	}, nil
}

// Start initializes or resets the game, discarding any previous board
func (e *Engine) Start() {
	e.board.clear()
	e.phase = model.PhasePlaying
	e.player = e.rules.FirstPlayer
	e.winner = model.WinnerUndecided
	e.winLane = model.WinLaneNone
	e.line = nil
	e.checked = true
}

// IsPlaying returns true while the winner is undecided
func (e *Engine) IsPlaying() bool {
	return e.phase == model.PhasePlaying
}

// CanSelectColumn returns true if the column is on the board and not full.
// It does not depend on the game phase.
func (e *Engine) CanSelectColumn(column int) bool {
	if column < 0 || column >= e.rules.Width {
		return false
	}
	return e.board.freeRow(column) >= 0
}

// MakeTurn drops a piece for the current player into the column, evaluates
// the board for a winning line and passes the turn on. The turn passes even
// when the move wins the game.
func (e *Engine) MakeTurn(column int) error {
	if e.phase != model.PhasePlaying {
		return fmt.Errorf("cannot make turn in phase %q: %w", e.phase, model.ErrNotPlaying)
	}
	if column < 0 || column >= e.rules.Width {
		return fmt.Errorf("column %d not in [0, %d): %w", column, e.rules.Width, model.ErrColumnOutOfRange)
	}
	if e.board.drop(column, e.player) < 0 {
		return fmt.Errorf("column %d: %w", column, model.ErrColumnFull)
	}

	e.checked = false
	e.CheckWinner()

	e.player = (e.player + 1) % e.rules.Players
	return nil
}

// CheckWinner rescans the board for a completed line. It only does work after
// a move has been made since the previous check, so repeated calls are no-ops.
//
// Columns are scanned left to right and each column from the bottom up until
// its first empty cell. For each cell the horizontal, diagonal-to-bottom,
// diagonal-to-top and vertical runs are extended from the earlier neighbour in
// that order, and the first run to reach the win line size decides the game.
func (e *Engine) CheckWinner() {
	if e.checked || e.phase != model.PhasePlaying {
		return
	}
	e.checked = true

	target := e.rules.WinLineSize
	for x := 0; x < e.board.width; x++ {
		for y := e.board.height - 1; y >= 0; y-- {
			c := e.board.at(x, y)
			if c == nil {
				break
			}
			for l := laneHorizontal; l < laneCount; l++ {
				step := laneSteps[l]
				c.runs[l] = 1
				if prev := e.board.at(x+step.dx, y+step.dy); prev != nil && prev.owner == c.owner {
					c.runs[l] = prev.runs[l] + 1
				}
				if c.runs[l] >= target {
					e.declareWinner(c.owner, l, x, y)
					return
				}
			}
		}
	}

	if e.board.full() {
		e.winner = model.WinnerNone
		e.phase = model.PhaseEnded
	}
}

func (e *Engine) declareWinner(owner int, l lane, x, y int) {
	e.winner = owner
	e.winLane = laneNames[l]
	e.phase = model.PhaseEnded

	// Walk back from the last cell so the line is stored in board order
	size := e.rules.WinLineSize
	step := laneSteps[l]
	e.line = make([]model.Position, size)
	for i := 0; i < size; i++ {
		e.line[size-1-i] = model.Position{Col: x + i*step.dx, Row: y + i*step.dy}
	}
}

// BoardValue returns the player index occupying the cell, or model.EmptyCell
func (e *Engine) BoardValue(column, row int) (int, error) {
	if !e.board.inBounds(column, row) {
		return model.EmptyCell, fmt.Errorf("cell (%d, %d): %w", column, row, model.ErrCellOutOfRange)
	}
	c := e.board.at(column, row)
	if c == nil {
		return model.EmptyCell, nil
	}
	return c.owner, nil
}

// CurrentPlayer returns the player index for the next MakeTurn call
func (e *Engine) CurrentPlayer() int {
	return e.player
}

// Winner returns the winning player index, model.WinnerNone for a full board,
// or model.WinnerUndecided while the game is still open
func (e *Engine) Winner() int {
	return e.winner
}

// WinLane returns the direction of the winning line, if any
func (e *Engine) WinLane() model.WinLane {
	return e.winLane
}

// WinningLine returns the cells of the completed line, or nil
func (e *Engine) WinningLine() []model.Position {
	if e.line == nil {
		return nil
	}
	line := make([]model.Position, len(e.line))
	copy(line, e.line)
	return line
}

// Phase returns the lifecycle state of the session
func (e *Engine) Phase() model.Phase {
	return e.phase
}

// Rules returns the rules the engine was created with
func (e *Engine) Rules() model.Rules {
	return e.rules
}

// Moves returns the number of pieces on the board
func (e *Engine) Moves() int {
	return e.board.filled
}

// IsBoardFull returns true if no column can take another piece
func (e *Engine) IsBoardFull() bool {
	return e.board.full()
}

// Snapshot copies the board and status into a read-only view
func (e *Engine) Snapshot() *model.BoardView {
	cells := make([][]int, e.board.width)
	for x := range cells {
		cells[x] = make([]int, e.board.height)
		for y := range cells[x] {
			cells[x][y] = model.EmptyCell
			if c := e.board.at(x, y); c != nil {
				cells[x][y] = c.owner
			}
		}
	}
	return &model.BoardView{
		Rules:         e.rules,
		Cells:         cells,
		CurrentPlayer: e.player,
		Winner:        e.winner,
		WinLane:       e.winLane,
		WinningLine:   e.WinningLine(),
		Phase:         e.phase,
		Moves:         e.board.filled,
	}
}

// Interface for dependency injection
type EngineInterface interface {
	Start()
	IsPlaying() bool
	CanSelectColumn(column int) bool
	MakeTurn(column int) error
	CheckWinner()
	BoardValue(column, row int) (int, error)
	CurrentPlayer() int
	Winner() int
	WinLane() model.WinLane
	Phase() model.Phase
	Rules() model.Rules
	Moves() int
	Snapshot() *model.BoardView
}

var _ EngineInterface = (*Engine)(nil)
