package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// derived is a cached position set tied to the board version it was built at.
type derived struct {
	version uint64
	color   State
	cells   []Position
	valid   bool
}

func (d derived) fresh(version uint64) bool {
	return d.valid && d.version == version
}

// Board is a width x height grid of cells with origin fixed at (0,0).
// Cell contents change only through Setup and ApplyMove; everything else
// is derived from the grid and cached against a mutation counter.
type Board struct {
	width  int
	height int
	origin Position
	grid   [][]*Cell

	version   uint64
	legal     [2]derived // indexed by colorIndex
	suggested derived
	preview   derived
	lastFlips []Position
}

// NewBoard allocates a board and links cell adjacency.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new board %dx%d: %w", width, height, ErrInvalidDimension)
	}

	b := &Board{
		width:  width,
		height: height,
		grid:   make([][]*Cell, height),
	}
	for r := range height {
		b.grid[r] = make([]*Cell, width)
		for c := range width {
			b.grid[r][c] = NewCell(Pos(r, c))
		}
	}
	b.Link()
	return b, nil
}

// Parse builds a board from rows of '.', 'D' and 'L' runes.
// All rows must have the same length.
func Parse(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse board: no rows: %w", ErrInvalidDimension)
	}
	b, err := NewBoard(utf8.RuneCountInString(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		cells := []rune(row)
		if len(cells) != b.width {
			return nil, fmt.Errorf("parse board: row %d has %d cells, want %d: %w", r, len(cells), b.width, ErrInvalidDimension)
		}
		for c, ch := range cells {
			switch ch {
			case '.':
				b.grid[r][c].SetState(Empty)
			case 'D':
				b.grid[r][c].SetState(Dark)
			case 'L':
				b.grid[r][c].SetState(Light)
			default:
				return nil, fmt.Errorf("parse board: unknown cell %q at %v", ch, Pos(r, c))
			}
		}
	}
	return b, nil
}

// Link populates every cell's neighbor map from the 8 surrounding offsets
// that fall inside the board. Re-running it rewrites identical entries.
func (b *Board) Link() {
	for r := range b.height {
		for c := range b.width {
			cell := b.grid[r][c]
			for _, d := range Directions {
				p := cell.pos.Add(d)
				if !b.InBounds(p) {
					continue
				}
				//nolint:errcheck // grid cells are never nil
				cell.AddNeighbor(b.grid[p.Row][p.Col])
			}
		}
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Origin returns the board origin, always (0,0).
func (b *Board) Origin() Position {
	return b.origin
}

// Version returns the mutation counter.
func (b *Board) Version() uint64 {
	return b.version
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.height && p.Col >= 0 && p.Col < b.width
}

func (b *Board) checkPos(p Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%v on %dx%d board: %w", p, b.width, b.height, ErrInvalidCoordinate)
	}
	return nil
}

func checkColor(color State) error {
	if !color.IsColor() {
		return fmt.Errorf("%v: %w", color, ErrInvalidColor)
	}
	return nil
}

func colorIndex(color State) int {
	if color == Light {
		return 1
	}
	return 0
}

// CellAt returns a copy of the cell at (row, col).
// Changing the copy never touches the board.
func (b *Board) CellAt(row, col int) (Cell, error) {
	if err := b.checkPos(Pos(row, col)); err != nil {
		return Cell{}, err
	}
	return b.grid[row][col].clone(), nil
}

// NeighborsAt returns the linked neighbors of (row, col) keyed by offset.
func (b *Board) NeighborsAt(row, col int) (map[Position]Position, error) {
	if err := b.checkPos(Pos(row, col)); err != nil {
		return nil, err
	}
	return b.grid[row][col].Neighbors(), nil
}

// StateAt returns the content of (row, col).
func (b *Board) StateAt(row, col int) (State, error) {
	if err := b.checkPos(Pos(row, col)); err != nil {
		return Empty, err
	}
	return b.grid[row][col].state, nil
}

// Grid returns a copy of all cell states indexed [row][col].
func (b *Board) Grid() [][]State {
	out := make([][]State, b.height)
	for r := range b.height {
		out[r] = make([]State, b.width)
		for c := range b.width {
			out[r][c] = b.grid[r][c].state
		}
	}
	return out
}

// Setup clears the board and seeds the central 2x2 block: Light on the
// top-left and bottom-right, Dark on the other two. Cells of the block that
// fall off a narrow board are skipped.
func (b *Board) Setup() {
	for r := range b.height {
		for c := range b.width {
			b.grid[r][c].SetState(Empty)
		}
	}

	top := (b.height+1)/2 - 1
	left := (b.width+1)/2 - 1
	seeds := []struct {
		p     Position
		state State
	}{
		{Pos(top, left), Light},
		{Pos(top, left+1), Dark},
		{Pos(top+1, left), Dark},
		{Pos(top+1, left+1), Light},
	}
	for _, s := range seeds {
		if b.InBounds(s.p) {
			b.grid[s.p.Row][s.p.Col].SetState(s.state)
		}
	}

	b.lastFlips = nil
	b.mutated()
}

// CaptivesInDirection walks from origin along dir and returns the contiguous
// opponent disks that end in a disk of color. Hitting the edge, an empty cell
// or any other state yields nothing.
func (b *Board) CaptivesInDirection(origin Position, color State, dir Position) []Position {
	if !b.InBounds(origin) || !color.IsColor() {
		return nil
	}
	opp := color.Opponent()

	var acc []Position
	cur := b.grid[origin.Row][origin.Col]
	for {
		next, ok := cur.Neighbor(dir)
		if !ok {
			return nil
		}
		cur = b.grid[next.Row][next.Col]
		switch cur.state {
		case opp:
			acc = append(acc, next)
		case color:
			return acc
		default:
			return nil
		}
	}
}

// captures returns the union of all directional captures from p.
func (b *Board) captures(p Position, color State) []Position {
	var all []Position
	for _, d := range Directions {
		all = append(all, b.CaptivesInDirection(p, color, d)...)
	}
	return all
}

// isLegal reports whether color may place at p, scanning the grid.
func (b *Board) isLegal(p Position, color State) bool {
	if b.grid[p.Row][p.Col].state != Empty {
		return false
	}
	for _, d := range Directions {
		if len(b.CaptivesInDirection(p, color, d)) > 0 {
			return true
		}
	}
	return false
}

// LegalDestinations returns every empty cell where color captures at least
// one disk, in row-major order.
func (b *Board) LegalDestinations(color State) ([]Position, error) {
	if err := checkColor(color); err != nil {
		return nil, err
	}

	cache := &b.legal[colorIndex(color)]
	if !cache.fresh(b.version) {
		var cells []Position
		for r := range b.height {
			for c := range b.width {
				if p := Pos(r, c); b.isLegal(p, color) {
					cells = append(cells, p)
				}
			}
		}
		*cache = derived{version: b.version, color: color, cells: cells, valid: true}
	}
	return clonePositions(cache.cells), nil
}

// HasLegalMove reports whether color has any legal destination.
func (b *Board) HasLegalMove(color State) bool {
	cells, err := b.LegalDestinations(color)
	return err == nil && len(cells) > 0
}

// IsLegal reports whether color may place at (row, col).
func (b *Board) IsLegal(row, col int, color State) (bool, error) {
	if err := checkColor(color); err != nil {
		return false, err
	}
	p := Pos(row, col)
	if err := b.checkPos(p); err != nil {
		return false, err
	}
	return b.isLegal(p, color), nil
}

// Suggest records the legal destinations of color for display.
// Hint reports them as LegalPreview until the next mutation.
func (b *Board) Suggest(color State) ([]Position, error) {
	cells, err := b.LegalDestinations(color)
	if err != nil {
		return nil, err
	}
	b.suggested = derived{version: b.version, color: color, cells: cells, valid: true}
	return clonePositions(cells), nil
}

// Suggested returns the recorded legal destinations, or nil when stale.
func (b *Board) Suggested() []Position {
	if !b.suggested.fresh(b.version) {
		return nil
	}
	return clonePositions(b.suggested.cells)
}

// Hint returns the state to display at (row, col): LegalPreview for a
// suggested empty cell, otherwise the stored state.
func (b *Board) Hint(row, col int) (State, error) {
	s, err := b.StateAt(row, col)
	if err != nil {
		return Empty, err
	}
	if s == Empty && b.suggested.fresh(b.version) && containsPosition(b.suggested.cells, Pos(row, col)) {
		return LegalPreview, nil
	}
	return s, nil
}

// PreviewCaptures computes the disks a placement at (row, col) would flip
// and records them as the current preview. An illegal target clears the
// preview and returns an empty set.
func (b *Board) PreviewCaptures(row, col int, color State) ([]Position, error) {
	if err := checkColor(color); err != nil {
		return nil, err
	}
	p := Pos(row, col)
	if err := b.checkPos(p); err != nil {
		return nil, err
	}

	var cells []Position
	if b.grid[row][col].state == Empty {
		cells = b.captures(p, color)
	}
	b.preview = derived{version: b.version, color: color, cells: cells, valid: true}
	return clonePositions(cells), nil
}

// Preview returns the recorded capture preview, or nil when stale.
func (b *Board) Preview() []Position {
	if !b.preview.fresh(b.version) {
		return nil
	}
	return clonePositions(b.preview.cells)
}

// ClearTransient drops the suggested and previewed sets.
func (b *Board) ClearTransient() {
	b.suggested = derived{}
	b.preview = derived{}
}

// ApplyMove places a disk of color at (row, col) and flips every captured
// disk. A target that captures nothing returns Failure with ErrIllegalMove
// and leaves the board untouched.
func (b *Board) ApplyMove(row, col int, color State) (Outcome, error) {
	if err := checkColor(color); err != nil {
		return Failure, err
	}
	p := Pos(row, col)
	if err := b.checkPos(p); err != nil {
		return Failure, err
	}
	if b.grid[row][col].state != Empty {
		return Failure, fmt.Errorf("%v %v is occupied: %w", color, p, ErrIllegalMove)
	}

	flips := b.captures(p, color)
	if len(flips) == 0 {
		return Failure, fmt.Errorf("%v %v captures nothing: %w", color, p, ErrIllegalMove)
	}

	b.grid[row][col].SetState(color)
	for _, f := range flips {
		b.grid[f.Row][f.Col].SetState(color)
	}
	b.lastFlips = flips
	b.mutated()
	return Success, nil
}

// LastFlips returns the disks flipped by the last successful move.
func (b *Board) LastFlips() []Position {
	return clonePositions(b.lastFlips)
}

// Count returns the disk counts.
func (b *Board) Count() Score {
	var s Score
	for r := range b.height {
		for c := range b.width {
			switch b.grid[r][c].state {
			case Dark:
				s.Dark++
			case Light:
				s.Light++
			default:
				s.Empty++
			}
		}
	}
	return s
}

// IsGameOver reports whether neither color can move or no empty cell is left.
func (b *Board) IsGameOver() bool {
	if b.Count().Empty == 0 {
		return true
	}
	return !b.HasLegalMove(Dark) && !b.HasLegalMove(Light)
}

// String renders the grid in the format accepted by Parse.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for r := range b.height {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.width {
			switch b.grid[r][c].state {
			case Dark:
				sb.WriteByte('D')
			case Light:
				sb.WriteByte('L')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// mutated invalidates every derived set.
func (b *Board) mutated() {
	b.version++
	b.ClearTransient()
}

func clonePositions(ps []Position) []Position {
	if ps == nil {
		return nil
	}
	out := make([]Position, len(ps))
	copy(out, ps)
	return out
}

func containsPosition(ps []Position, p Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
