package model

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors below wrap one of these so callers can
// match either the category or the exact cause with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrInputFailure    = errors.New("input failure")
)

var (
	// Engine errors
	ErrNotPlaying       = fmt.Errorf("%w: game is not being played", ErrIllegalState)
	ErrColumnOutOfRange = fmt.Errorf("%w: column out of range", ErrInvalidArgument)
	ErrColumnFull       = fmt.Errorf("%w: column is full", ErrInvalidArgument)
	ErrCellOutOfRange   = fmt.Errorf("%w: cell out of range", ErrInvalidArgument)

	// Match errors
	ErrQuit = errors.New("player quit")

	// History errors
	ErrMatchNotFound = errors.New("match not found")
)
