// Package t2048 implements the 2048 sliding-tile merge game: the grid, the move
// algorithm, the session manager and the terminal board renderer.
package t2048

import (
	"fmt"
	"math/rand"
)

// Grid is the fixed-size square board. Cells are stored row-major and each
// holds at most one tile.
type Grid struct {
	cells [BoardSize][BoardSize]*Tile
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// GridFromBoard builds a grid from a value matrix. Zero cells stay empty.
func GridFromBoard(b Board) *Grid {
	g := NewGrid()
	for y := range BoardSize {
		for x := range BoardSize {
			if b[y][x] != 0 {
				g.Insert(NewTile(Position{X: x, Y: y}, b[y][x]))
			}
		}
	}
	return g
}

// GridFromState rebuilds a grid from its serialized form. It rejects states of
// the wrong size, ragged rows, values that are not powers of two and tiles whose
// recorded position disagrees with their cell.
func GridFromState(st GridState) (*Grid, error) {
	if st.Size != BoardSize {
		return nil, fmt.Errorf("%w: grid size %d, want %d", ErrInvalidState, st.Size, BoardSize)
	}
	if len(st.Cells) != BoardSize {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidState, len(st.Cells), BoardSize)
	}

	g := NewGrid()
	for y, row := range st.Cells {
		if len(row) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidState, y, len(row), BoardSize)
		}
		for x, ts := range row {
			if ts == nil {
				continue
			}
			if !isPowerOfTwo(ts.Value) {
				return nil, fmt.Errorf("%w: value %d at (%d,%d)", ErrInvalidState, ts.Value, x, y)
			}
			if ts.Position.X != x || ts.Position.Y != y {
				return nil, fmt.Errorf("%w: tile at (%d,%d) records position (%d,%d)",
					ErrInvalidState, x, y, ts.Position.X, ts.Position.Y)
			}
			g.Insert(NewTile(ts.Position, ts.Value))
		}
	}
	return g, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return BoardSize
}

// WithinBounds reports whether pos is a cell of the grid.
func (g *Grid) WithinBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < BoardSize && pos.Y >= 0 && pos.Y < BoardSize
}

// CellAt returns the tile occupying pos, or nil for empty or out-of-bounds cells.
func (g *Grid) CellAt(pos Position) *Tile {
	if !g.WithinBounds(pos) {
		return nil
	}
	return g.cells[pos.Y][pos.X]
}

// IsOccupied reports whether a tile sits at pos.
func (g *Grid) IsOccupied(pos Position) bool {
	return g.CellAt(pos) != nil
}

// IsAvailable reports whether pos is inside the grid and empty.
func (g *Grid) IsAvailable(pos Position) bool {
	return g.WithinBounds(pos) && g.cells[pos.Y][pos.X] == nil
}

// Insert places a tile at its recorded position.
func (g *Grid) Insert(t *Tile) {
	if !g.WithinBounds(t.Pos) {
		return
	}
	g.cells[t.Pos.Y][t.Pos.X] = t
}

// Remove clears the tile's cell. The cell is left untouched when it is held by
// a different tile.
func (g *Grid) Remove(t *Tile) {
	if !g.WithinBounds(t.Pos) {
		return
	}
	if g.cells[t.Pos.Y][t.Pos.X] == t {
		g.cells[t.Pos.Y][t.Pos.X] = nil
	}
}

// EachCell calls fn for every cell in row-major order.
func (g *Grid) EachCell(fn func(pos Position, t *Tile)) {
	for y := range BoardSize {
		for x := range BoardSize {
			fn(Position{X: x, Y: y}, g.cells[y][x])
		}
	}
}

// Tiles returns all tiles in row-major order.
func (g *Grid) Tiles() []*Tile {
	var tiles []*Tile
	g.EachCell(func(_ Position, t *Tile) {
		if t != nil {
			tiles = append(tiles, t)
		}
	})
	return tiles
}

// EmptyCellPositions returns the coordinates of all unoccupied cells.
func (g *Grid) EmptyCellPositions() []Position {
	var cells []Position
	g.EachCell(func(pos Position, t *Tile) {
		if t == nil {
			cells = append(cells, pos)
		}
	})
	return cells
}

// RandomEmptyCell picks an empty cell uniformly at random.
// The second result is false when the grid is full.
func (g *Grid) RandomEmptyCell(rng *rand.Rand) (Position, bool) {
	cells := g.EmptyCellPositions()
	if len(cells) == 0 {
		return Position{}, false
	}
	return cells[rng.Intn(len(cells))], true
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g *Grid) HasEmptyCell() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if g.cells[y][x] == nil {
				return true
			}
		}
	}
	return false
}

// HasMatchingNeighbors returns true if two orthogonally adjacent tiles share a value.
func (g *Grid) HasMatchingNeighbors() bool {
	return HasPossibleMerge(g.Board())
}

// MovesAvailable returns true if any direction could change the grid.
func (g *Grid) MovesAvailable() bool {
	return g.HasEmptyCell() || g.HasMatchingNeighbors()
}

// MaxTile returns the highest tile value on the grid.
func (g *Grid) MaxTile() int {
	return MaxTile(g.Board())
}

// Sum returns the total of all tile values.
func (g *Grid) Sum() int {
	total := 0
	for _, t := range g.Tiles() {
		total += t.Value
	}
	return total
}

// Board returns the value matrix of the grid.
func (g *Grid) Board() Board {
	var b Board
	g.EachCell(func(pos Position, t *Tile) {
		if t != nil {
			b[pos.Y][pos.X] = t.Value
		}
	})
	return b
}

// Clone returns a copy of the grid with fresh tiles and no move history.
func (g *Grid) Clone() *Grid {
	return GridFromBoard(g.Board())
}

// State returns the serializable form of the grid.
func (g *Grid) State() GridState {
	st := GridState{
		Size:  BoardSize,
		Cells: make([][]*TileState, BoardSize),
	}
	for y := range BoardSize {
		st.Cells[y] = make([]*TileState, BoardSize)
		for x := range BoardSize {
			if t := g.cells[y][x]; t != nil {
				ts := t.State()
				st.Cells[y][x] = &ts
			}
		}
	}
	return st
}
