package reversi

import (
	platformcore "github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
)

// Compass offsets for cursor movement.
var (
	North = core.Pos(-1, 0)
	South = core.Pos(1, 0)
	West  = core.Pos(0, -1)
	East  = core.Pos(0, 1)
)

// Cursor is the human player's selection on a rows by cols board.
// It never leaves the board.
type Cursor struct {
	pos        core.Position
	rows, cols int
}

// NewCursor returns a cursor for a rows by cols board, placed at p.
func NewCursor(rows, cols int, p core.Position) Cursor {
	c := Cursor{rows: rows, cols: cols}
	c.Set(p)
	return c
}

// Pos returns the selected cell.
func (c Cursor) Pos() core.Position {
	return c.pos
}

// Set moves the cursor to p, clamped to the board.
func (c *Cursor) Set(p core.Position) {
	c.pos = core.Pos(
		platformcore.Clamp(p.Row, 0, platformcore.Max(0, c.rows-1)),
		platformcore.Clamp(p.Col, 0, platformcore.Max(0, c.cols-1)),
	)
}

// Move shifts the cursor by offset, stopping at the edges.
func (c *Cursor) Move(offset core.Position) {
	c.Set(c.pos.Add(offset))
}

// Apply moves the cursor for every direction action in the frame.
// It reports whether the cursor changed.
func (c *Cursor) Apply(in platformcore.InputFrame) bool {
	before := c.pos
	if in.Has(platformcore.ActionUp) {
		c.Move(North)
	}
	if in.Has(platformcore.ActionDown) {
		c.Move(South)
	}
	if in.Has(platformcore.ActionLeft) {
		c.Move(West)
	}
	if in.Has(platformcore.ActionRight) {
		c.Move(East)
	}
	return c.pos != before
}
