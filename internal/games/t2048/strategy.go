package t2048

import (
	"fmt"
	"math/rand"
)

// Strategy picks the next move for headless play.
type Strategy interface {
	Name() string
	// Next returns the direction to play and false when no move changes the board.
	Next(b Board) (Direction, bool)
}

// NewStrategy returns the named strategy: "random" or "greedy".
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "random":
		return &RandomStrategy{rng: rng}, nil
	case "greedy":
		return GreedyStrategy{}, nil
	default:
		return nil, fmt.Errorf("t2048: unknown strategy %q", name)
	}
}

// RandomStrategy plays a uniformly random direction among those that move.
type RandomStrategy struct {
	rng *rand.Rand
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Next(b Board) (Direction, bool) {
	var legal []Direction
	for _, d := range Directions {
		if _, _, changed := Slide(b, d); changed {
			legal = append(legal, d)
		}
	}
	if len(legal) == 0 {
		return 0, false
	}
	return legal[s.rng.Intn(len(legal))], true
}

// GreedyStrategy looks one move ahead: most score first, then most empty
// cells. Ties go to the earlier direction in Directions.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) Next(b Board) (Direction, bool) {
	best := Direction(0)
	bestScore, bestEmpty := -1, -1
	found := false

	for _, d := range Directions {
		next, score, changed := Slide(b, d)
		if !changed {
			continue
		}
		empty := len(EmptyCells(next))
		if score > bestScore || (score == bestScore && empty > bestEmpty) {
			best, bestScore, bestEmpty = d, score, empty
			found = true
		}
	}
	return best, found
}

// PlayOptions bound a headless game.
type PlayOptions struct {
	MaxMoves    int  // 0 means no limit
	KeepPlaying bool // Continue past a win
	OnMove      func(m *Manager)
}

// Play drives a started manager with s until the session terminates, the
// strategy finds no move or MaxMoves moves were made. It returns the number
// of moves played.
func Play(m *Manager, s Strategy, opts PlayOptions) int {
	played := 0
	for opts.MaxMoves <= 0 || played < opts.MaxMoves {
		if m.Phase() == PhaseWon && opts.KeepPlaying {
			m.KeepPlaying()
		}
		if m.IsTerminated() {
			break
		}
		dir, ok := s.Next(m.Board())
		if !ok || !m.Move(dir) {
			break
		}
		played++
		if opts.OnMove != nil {
			opts.OnMove(m)
		}
	}
	return played
}
