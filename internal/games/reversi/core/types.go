// Package core provides the Reversi rule engine: board geometry, legal move
// detection, capture computation and disk flipping.
// This package is UI-agnostic and deterministic.
package core

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidDimension is returned when a board size is not positive.
	ErrInvalidDimension = errors.New("invalid board dimension")
	// ErrInvalidCoordinate is returned for a (row, col) outside the board.
	ErrInvalidCoordinate = errors.New("coordinate out of board")
	// ErrIllegalMove is returned when a placement captures nothing.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidColor is returned when a disk color is not Dark or Light.
	ErrInvalidColor = errors.New("invalid disk color")
	// ErrInvalidCell is returned when a nil cell is linked as a neighbor.
	ErrInvalidCell = errors.New("invalid cell reference")
)

// State is the content of a cell.
type State uint8

const (
	Empty State = iota
	Dark
	Light
	// LegalPreview marks an empty cell that is a legal destination for the
	// active color. It is a display hint and never stored in a board grid.
	LegalPreview
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Dark:
		return "dark"
	case Light:
		return "light"
	case LegalPreview:
		return "legal"
	default:
		return "unknown"
	}
}

// ParseState parses a state name as produced by String.
func ParseState(s string) (State, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "none":
		return Empty, true
	case "dark", "black":
		return Dark, true
	case "light", "white":
		return Light, true
	case "legal":
		return LegalPreview, true
	default:
		return Empty, false
	}
}

// IsColor reports whether the state is a disk color.
func (s State) IsColor() bool {
	return s == Dark || s == Light
}

// Opponent returns the other disk color. Non-colors map to themselves.
func (s State) Opponent() State {
	switch s {
	case Dark:
		return Light
	case Light:
		return Dark
	default:
		return s
	}
}

// Outcome is the result of a move application.
type Outcome uint8

const (
	Failure Outcome = iota
	Success
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// Score holds disk counts derived from the grid.
type Score struct {
	Dark  int
	Light int
	Empty int
}

// Of returns the count for a color.
func (s Score) Of(color State) int {
	switch color {
	case Dark:
		return s.Dark
	case Light:
		return s.Light
	default:
		return 0
	}
}

// Leader returns the color with more disks, or Empty on a tie.
func (s Score) Leader() State {
	switch {
	case s.Dark > s.Light:
		return Dark
	case s.Light > s.Dark:
		return Light
	default:
		return Empty
	}
}
