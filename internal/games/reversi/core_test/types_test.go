package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
)

func TestPositionArithmetic(t *testing.T) {
	a, b := core.Pos(2, 3), core.Pos(-1, 4)

	if got := core.Add(a, b); got != core.Pos(1, 7) {
		t.Errorf("Add(%v, %v) = %v, expected (1,7)", a, b, got)
	}
	if got := core.Sub(a, b); got != core.Pos(3, -1) {
		t.Errorf("Sub(%v, %v) = %v, expected (3,-1)", a, b, got)
	}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("a.Add(b).Sub(b) = %v, expected %v", got, a)
	}
	if got := b.Neg(); got != core.Pos(1, -4) {
		t.Errorf("Neg() = %v, expected (1,-4)", got)
	}
	if r, c := a.Pair(); r != 2 || c != 3 {
		t.Errorf("Pair() = (%d, %d), expected (2, 3)", r, c)
	}
	if got := a.String(); got != "(2,3)" {
		t.Errorf("String() = %q, expected %q", got, "(2,3)")
	}
}

func TestDirections(t *testing.T) {
	seen := make(map[core.Position]bool)
	for _, d := range core.Directions {
		if d == core.Pos(0, 0) {
			t.Error("Directions contains (0,0)")
		}
		if d.Row < -1 || d.Row > 1 || d.Col < -1 || d.Col > 1 {
			t.Errorf("direction %v is not a unit offset", d)
		}
		seen[d] = true
	}
	if len(seen) != 8 {
		t.Errorf("Directions has %d distinct offsets, expected 8", len(seen))
	}
}

func TestStateNamesRoundTrip(t *testing.T) {
	for _, s := range []core.State{core.Empty, core.Dark, core.Light, core.LegalPreview} {
		got, ok := core.ParseState(s.String())
		if !ok || got != s {
			t.Errorf("ParseState(%q) = %v, %v, expected %v", s.String(), got, ok, s)
		}
	}
	if _, ok := core.ParseState("purple"); ok {
		t.Error("ParseState(purple) should fail")
	}
}

func TestStateOpponent(t *testing.T) {
	tests := []struct {
		in, expected core.State
	}{
		{core.Dark, core.Light},
		{core.Light, core.Dark},
		{core.Empty, core.Empty},
		{core.LegalPreview, core.LegalPreview},
	}
	for _, tt := range tests {
		if got := tt.in.Opponent(); got != tt.expected {
			t.Errorf("%v.Opponent() = %v, expected %v", tt.in, got, tt.expected)
		}
	}
	if core.Empty.IsColor() || core.LegalPreview.IsColor() || !core.Dark.IsColor() || !core.Light.IsColor() {
		t.Error("IsColor() should hold only for Dark and Light")
	}
}

func TestScore(t *testing.T) {
	s := core.Score{Dark: 5, Light: 3, Empty: 8}
	if s.Of(core.Dark) != 5 || s.Of(core.Light) != 3 || s.Of(core.Empty) != 0 {
		t.Errorf("Of() = %d/%d/%d, expected 5/3/0", s.Of(core.Dark), s.Of(core.Light), s.Of(core.Empty))
	}
	if s.Leader() != core.Dark {
		t.Errorf("Leader() = %v, expected dark", s.Leader())
	}
	if (core.Score{Dark: 2, Light: 2}).Leader() != core.Empty {
		t.Error("Leader() on a tie should be empty")
	}
}

func TestCellNeighbors(t *testing.T) {
	c := core.NewCell(core.Pos(1, 1))
	east := core.NewCell(core.Pos(1, 2))

	if err := c.AddNeighbor(east); err != nil {
		t.Fatalf("AddNeighbor() error = %v", err)
	}
	if p, ok := c.Neighbor(core.Pos(0, 1)); !ok || p != east.Position() {
		t.Errorf("Neighbor(0,1) = %v, %v, expected %v", p, ok, east.Position())
	}
	if _, ok := c.Neighbor(core.Pos(1, 0)); ok {
		t.Error("Neighbor(1,0) should be missing")
	}

	// Re-adding the same offset overwrites instead of growing
	if err := c.AddNeighbor(east); err != nil {
		t.Fatalf("AddNeighbor() error = %v", err)
	}
	if c.NeighborCount() != 1 {
		t.Errorf("NeighborCount() = %d, expected 1", c.NeighborCount())
	}

	if err := c.AddNeighbor(nil); !errors.Is(err, core.ErrInvalidCell) {
		t.Errorf("AddNeighbor(nil) error = %v, expected ErrInvalidCell", err)
	}

	neighbors := c.Neighbors()
	delete(neighbors, core.Pos(0, 1))
	if c.NeighborCount() != 1 {
		t.Error("Neighbors() should return a copy")
	}
}

func TestCellState(t *testing.T) {
	c := core.NewCell(core.Pos(0, 0))
	if c.State() != core.Empty {
		t.Errorf("new cell State() = %v, expected empty", c.State())
	}
	for _, s := range []core.State{core.Dark, core.Light, core.Empty, core.Dark} {
		c.SetState(s)
		if c.State() != s {
			t.Errorf("State() = %v after SetState(%v)", c.State(), s)
		}
	}
}

func TestZeroCellAddNeighbor(t *testing.T) {
	var c core.Cell
	if err := c.AddNeighbor(core.NewCell(core.Pos(0, 1))); err != nil {
		t.Fatalf("AddNeighbor() error = %v", err)
	}
	if p, ok := c.Neighbor(core.Pos(0, 1)); !ok || p != core.Pos(0, 1) {
		t.Errorf("Neighbor(0,1) = %v, %v, expected (0,1)", p, ok)
	}
}
