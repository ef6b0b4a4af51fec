package t2048

// Phase is the lifecycle state of a session.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhasePlaying     Phase = "playing"
	PhaseWon         Phase = "won"
	PhaseOver        Phase = "over"
	PhaseKeepPlaying Phase = "keep_playing"
)

// TileFrame describes one tile of a rendered frame. From equals To for tiles
// that did not move.
type TileFrame struct {
	Value         int
	From          Position
	To            Position
	IsNew         bool
	IsMergeResult bool
}

// Meta carries the score and flags shown next to the board.
type Meta struct {
	Score       int
	BestScore   int
	ScoreDelta  int
	Over        bool
	Won         bool
	KeepPlaying bool
	Terminated  bool
}

// Frame is a value copy of everything a renderer needs after a state change.
// Tiles are the tiles on the grid; Ghosts are the tiles consumed by merges on
// the last move, sliding into their merge cell.
type Frame struct {
	Seq    uint64
	Board  Board
	Tiles  []TileFrame
	Ghosts []TileFrame
	Meta   Meta
}

// Renderer draws frames. Implementations must not retain the grid.
type Renderer interface {
	Render(f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

func (fn RendererFunc) Render(f Frame) error { return fn(f) }

// buildFrame copies the grid into a Frame.
func buildFrame(g *Grid, seq uint64, meta Meta) Frame {
	f := Frame{
		Seq:   seq,
		Board: g.Board(),
		Meta:  meta,
	}

	for _, t := range g.Tiles() {
		tf := TileFrame{Value: t.Value, From: t.Pos, To: t.Pos}
		switch {
		case t.IsMergeResult():
			tf.IsMergeResult = true
			for _, src := range t.MergedFrom {
				f.Ghosts = append(f.Ghosts, TileFrame{
					Value: src.Value,
					From:  originOf(src),
					To:    src.Pos,
				})
			}
		case t.Previous != nil:
			tf.From = *t.Previous
		default:
			tf.IsNew = true
		}
		f.Tiles = append(f.Tiles, tf)
	}

	return f
}

func originOf(t *Tile) Position {
	if t.Previous != nil {
		return *t.Previous
	}
	return t.Pos
}

// HasMotion reports whether any tile or ghost changes cell in the frame.
func (f Frame) HasMotion() bool {
	for _, t := range f.Tiles {
		if !t.From.Equal(t.To) {
			return true
		}
	}
	for _, t := range f.Ghosts {
		if !t.From.Equal(t.To) {
			return true
		}
	}
	return false
}
