package core

import "fmt"

// Position is a cell location or a relative offset on the board.
// Row increases downward, Col increases to the right.
type Position struct {
	Row int
	Col int
}

// Pos is a convenience constructor for Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the component-wise sum of two positions.
func Add(a, b Position) Position {
	return Position{Row: a.Row + b.Row, Col: a.Col + b.Col}
}

// Sub returns the component-wise difference a - b.
func Sub(a, b Position) Position {
	return Position{Row: a.Row - b.Row, Col: a.Col - b.Col}
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Add(p, d)
}

// Sub returns p minus d.
func (p Position) Sub(d Position) Position {
	return Sub(p, d)
}

// Neg returns the opposite offset.
func (p Position) Neg() Position {
	return Position{Row: -p.Row, Col: -p.Col}
}

// Pair returns the position as a (row, col) pair.
func (p Position) Pair() (int, int) {
	return p.Row, p.Col
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Directions lists the 8 compass offsets, row-major, without (0,0).
var Directions = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
