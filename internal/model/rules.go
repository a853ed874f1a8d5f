package model

import "fmt"

// Rules holds the immutable parameters of a connect-N game
type Rules struct {
	Width       int `json:"width" yaml:"width"`               // Number of columns
	Height      int `json:"height" yaml:"height"`             // Number of rows
	Players     int `json:"players" yaml:"players"`           // Number of players taking turns
	FirstPlayer int `json:"first_player" yaml:"first_player"` // 0-indexed starting player
	WinLineSize int `json:"win_line_size" yaml:"win_line_size"`
}

// DefaultRules returns the classic 7x6 two player connect-four rules
func DefaultRules() Rules {
	return Rules{
		Width:       7,
		Height:      6,
		Players:     2,
		FirstPlayer: 0,
		WinLineSize: 4,
	}
}

// Validate checks every field is within its allowed range.
// A win line longer than both board dimensions is allowed but can never be completed.
func (r Rules) Validate() error {
	switch {
	case r.Width < 1:
		return fmt.Errorf("%w: width must be at least 1, got %d", ErrInvalidArgument, r.Width)
	case r.Height < 1:
		return fmt.Errorf("%w: height must be at least 1, got %d", ErrInvalidArgument, r.Height)
	case r.Players < 2:
		return fmt.Errorf("%w: players must be at least 2, got %d", ErrInvalidArgument, r.Players)
	case r.FirstPlayer < 0 || r.FirstPlayer >= r.Players:
		return fmt.Errorf("%w: first player must be in [0, %d), got %d", ErrInvalidArgument, r.Players, r.FirstPlayer)
	case r.WinLineSize < 1:
		return fmt.Errorf("%w: win line size must be at least 1, got %d", ErrInvalidArgument, r.WinLineSize)
	}
	return nil
}

// CellCount returns the total number of cells on the board
func (r Rules) CellCount() int {
	return r.Width * r.Height
}
