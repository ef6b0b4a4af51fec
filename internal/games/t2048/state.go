package t2048

import (
	"errors"
	"fmt"
)

// StateVersion is the schema version written into every SessionState.
const StateVersion = 1

// ErrInvalidState is returned when a persisted session cannot be restored.
var ErrInvalidState = errors.New("t2048: invalid session state")

// TileState is the serialized form of a tile.
type TileState struct {
	Value    int      `json:"value"`
	Position Position `json:"position"`
}

// GridState is the serialized form of a grid: Cells[y][x], nil for empty cells.
type GridState struct {
	Size  int            `json:"size"`
	Cells [][]*TileState `json:"cells"`
}

// SessionState is a complete snapshot of one game in progress.
type SessionState struct {
	Version     int       `json:"version"`
	GameID      string    `json:"game_id"`
	Grid        GridState `json:"grid"`
	Score       int       `json:"score"`
	Over        bool      `json:"over"`
	Won         bool      `json:"won"`
	KeepPlaying bool      `json:"keep_playing"`
	Moves       int       `json:"moves"`
}

// Terminated reports whether the snapshot describes a finished game.
func (s SessionState) Terminated() bool {
	return s.Over || (s.Won && !s.KeepPlaying)
}

// Validate checks that the snapshot can be restored.
func (s SessionState) Validate() error {
	_, err := s.Restore()
	return err
}

// Restore validates the snapshot and rebuilds its grid. A grid with no tiles
// is rejected: play always leaves at least one tile on the board.
func (s SessionState) Restore() (*Grid, error) {
	if s.Version != StateVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrInvalidState, s.Version, StateVersion)
	}
	if s.Score < 0 {
		return nil, fmt.Errorf("%w: negative score %d", ErrInvalidState, s.Score)
	}
	if s.Moves < 0 {
		return nil, fmt.Errorf("%w: negative move count %d", ErrInvalidState, s.Moves)
	}
	if s.KeepPlaying && !s.Won {
		return nil, fmt.Errorf("%w: keep_playing set without a win", ErrInvalidState)
	}
	g, err := GridFromState(s.Grid)
	if err != nil {
		return nil, err
	}
	if len(g.Tiles()) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidState)
	}
	return g, nil
}
