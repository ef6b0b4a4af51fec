package t2048

// MoveResult describes what a single move did to the grid.
type MoveResult struct {
	Moved      bool // Some tile changed cell or merged
	ScoreDelta int  // Sum of merged tile values
	Merges     int  // Number of merges performed
	MaxMerged  int  // Highest value produced by a merge, 0 if none
}

// traversals lists the x and y coordinates in visiting order so that the cells
// farthest along the vector come first.
type traversals struct {
	xs, ys [BoardSize]int
}

func buildTraversals(v Vector) traversals {
	var t traversals
	for i := range BoardSize {
		t.xs[i] = i
		t.ys[i] = i
	}
	if v.X == 1 {
		t.xs = reverseRow(t.xs)
	}
	if v.Y == 1 {
		t.ys = reverseRow(t.ys)
	}
	return t
}

// findFarthestPosition steps from pos along v while cells are empty. It returns
// the last empty cell reached and the first cell beyond it, which is either
// occupied or out of bounds.
func (g *Grid) findFarthestPosition(pos Position, v Vector) (farthest, next Position) {
	previous := pos
	cell := pos.Add(v)
	for g.IsAvailable(cell) {
		previous = cell
		cell = cell.Add(v)
	}
	return previous, cell
}

// prepareTiles clears merge sources and stores the current positions so the
// renderer can animate from them.
func (g *Grid) prepareTiles() {
	for _, t := range g.Tiles() {
		t.MergedFrom = nil
		t.SavePosition()
	}
}

// moveTile relocates a tile to pos.
func (g *Grid) moveTile(t *Tile, pos Position) {
	g.cells[t.Pos.Y][t.Pos.X] = nil
	g.cells[pos.Y][pos.X] = t
	t.UpdatePosition(pos)
}

// Move slides every tile in direction dir, merging equal neighbors, and
// mutates the grid in place. A tile merges at most once per move: a blocking
// tile that already has merge sources is never merged again.
func (g *Grid) Move(dir Direction) MoveResult {
	var res MoveResult
	if !dir.Valid() {
		return res
	}

	vector := dir.Vector()
	order := buildTraversals(vector)

	g.prepareTiles()

	for _, x := range order.xs {
		for _, y := range order.ys {
			cell := Position{X: x, Y: y}
			tile := g.CellAt(cell)
			if tile == nil {
				continue
			}

			farthest, next := g.findFarthestPosition(cell, vector)
			blocking := g.CellAt(next)

			if blocking != nil && blocking.Value == tile.Value && blocking.MergedFrom == nil {
				merged := NewTile(next, tile.Value*2)
				merged.MergedFrom = []*Tile{tile, blocking}

				g.Remove(tile)
				g.Remove(blocking)
				g.Insert(merged)

				// The consumed tile slides into the merge cell for animation.
				tile.UpdatePosition(next)

				res.ScoreDelta += merged.Value
				res.Merges++
				res.MaxMerged = max(res.MaxMerged, merged.Value)
			} else {
				g.moveTile(tile, farthest)
			}

			if !cell.Equal(tile.Pos) {
				res.Moved = true
			}
		}
	}

	return res
}
