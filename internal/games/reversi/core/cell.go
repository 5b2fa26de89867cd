package core

import "fmt"

// Cell is a single grid unit. Neighbors are kept as board coordinates keyed by
// relative offset and resolved through the owning board.
type Cell struct {
	pos       Position
	state     State
	neighbors map[Position]Position
}

// NewCell creates an empty cell at the given position.
func NewCell(pos Position) *Cell {
	return &Cell{
		pos:       pos,
		neighbors: make(map[Position]Position, len(Directions)),
	}
}

// Position returns the cell's location.
func (c *Cell) Position() Position {
	return c.pos
}

// State returns the cell's content.
func (c *Cell) State() State {
	return c.state
}

// SetState replaces the cell's content.
func (c *Cell) SetState(s State) {
	c.state = s
}

// AddNeighbor records other under its offset from this cell.
// An existing entry for the same offset is overwritten.
func (c *Cell) AddNeighbor(other *Cell) error {
	if other == nil {
		return fmt.Errorf("add neighbor to %v: %w", c.pos, ErrInvalidCell)
	}
	if c.neighbors == nil {
		c.neighbors = make(map[Position]Position, len(Directions))
	}
	c.neighbors[Sub(other.pos, c.pos)] = other.pos
	return nil
}

// Neighbor returns the position of the neighbor at offset, if any.
func (c *Cell) Neighbor(offset Position) (Position, bool) {
	p, ok := c.neighbors[offset]
	return p, ok
}

// NeighborCount returns how many neighbors are linked.
func (c *Cell) NeighborCount() int {
	return len(c.neighbors)
}

// Neighbors returns a copy of the offset-to-position map.
func (c *Cell) Neighbors() map[Position]Position {
	out := make(map[Position]Position, len(c.neighbors))
	for k, v := range c.neighbors {
		out[k] = v
	}
	return out
}

func (c *Cell) clone() Cell {
	return Cell{pos: c.pos, state: c.state, neighbors: c.Neighbors()}
}
