package t2048

// Position is a cell coordinate; X is the column and Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position one step along v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Equal reports whether both positions name the same cell.
func (p Position) Equal(o Position) bool {
	return p.X == o.X && p.Y == o.Y
}

// Tile is a single numbered piece on the grid.
type Tile struct {
	Value int
	Pos   Position

	// Previous is the position before the current move, nil for tiles that
	// were spawned or produced by a merge on this move.
	Previous *Position

	// MergedFrom holds the two tiles consumed to create this tile on the
	// current move. It is cleared at the start of every move.
	MergedFrom []*Tile
}

// NewTile creates a tile with no history.
func NewTile(pos Position, value int) *Tile {
	return &Tile{Value: value, Pos: pos}
}

// SavePosition records the current position as the animation origin.
func (t *Tile) SavePosition() {
	p := t.Pos
	t.Previous = &p
}

// UpdatePosition moves the tile's recorded position.
func (t *Tile) UpdatePosition(pos Position) {
	t.Pos = pos
}

// IsMergeResult reports whether the tile was created by a merge this move.
func (t *Tile) IsMergeResult() bool {
	return len(t.MergedFrom) > 0
}

// IsNew reports whether the tile appeared this move without a merge.
func (t *Tile) IsNew() bool {
	return t.Previous == nil && !t.IsMergeResult()
}

// State returns the serializable form of the tile.
func (t *Tile) State() TileState {
	return TileState{Value: t.Value, Position: t.Pos}
}

// isPowerOfTwo reports whether v is 2, 4, 8, ...
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
