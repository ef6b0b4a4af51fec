package t2048

import (
	"math/rand"
	"testing"
)

func TestGreedyStrategy(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Direction
		ok    bool
	}{
		{
			name:  "prefers the biggest merge",
			board: Board{{2, 2, 0, 0}, {0, 0, 0, 0}, {8, 0, 0, 0}, {8, 0, 0, 0}},
			want:  DirUp,
			ok:    true,
		},
		{
			name:  "ties go to the first direction",
			board: Board{{0, 2, 0, 0}},
			want:  DirRight,
			ok:    true,
		},
		{
			name: "no legal move",
			board: Board{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GreedyStrategy{}.Next(tt.board)
			if ok != tt.ok {
				t.Fatalf("Next() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRandomStrategyOnlyLegalMoves(t *testing.T) {
	s, err := NewStrategy("random", rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	// Only right and down change this board.
	b := Board{{2, 0, 0, 0}}
	for range 50 {
		d, ok := s.Next(b)
		if !ok {
			t.Fatal("Next() ok = false")
		}
		if d != DirRight && d != DirDown {
			t.Errorf("Next() = %s, want right or down", d)
		}
	}
}

func TestNewStrategyUnknown(t *testing.T) {
	if _, err := NewStrategy("minimax", nil); err == nil {
		t.Error("NewStrategy(minimax) should fail")
	}
}

func TestAutoplayGreedyFinishes(t *testing.T) {
	m := NewManager(Options{Seed: 11})
	m.Setup()
	s := GreedyStrategy{}

	for i := 0; !m.IsTerminated(); i++ {
		if i > 10000 {
			t.Fatal("game did not finish")
		}
		d, ok := s.Next(m.Board())
		if !ok {
			t.Fatalf("strategy found no move on a live board:\n%v", m.Board())
		}
		if !m.Move(d) {
			t.Fatalf("Move(%s) rejected a move the strategy considered legal", d)
		}
	}
	if m.Score() <= 0 {
		t.Errorf("Score() = %d after a full game", m.Score())
	}
}

func TestPlayUntilTerminated(t *testing.T) {
	var results []Result
	m := NewManager(Options{Seed: 11, OnTerminated: func(r Result) { results = append(results, r) }})
	m.Setup()

	calls := 0
	played := Play(m, GreedyStrategy{}, PlayOptions{OnMove: func(*Manager) { calls++ }})

	if !m.IsTerminated() {
		t.Fatalf("Play() returned after %d moves without terminating", played)
	}
	if played != m.Moves() || calls != played {
		t.Errorf("played %d, Moves() %d, OnMove calls %d", played, m.Moves(), calls)
	}
	if len(results) != 1 || results[0].Moves != played {
		t.Errorf("results = %+v, want one result with %d moves", results, played)
	}
}

func TestPlayMaxMoves(t *testing.T) {
	m := NewManager(Options{Seed: 5})
	m.Setup()
	if played := Play(m, GreedyStrategy{}, PlayOptions{MaxMoves: 3}); played != 3 {
		t.Errorf("Play() = %d, want 3", played)
	}
}

func TestPlayKeepPlaying(t *testing.T) {
	m, _ := startFrom(t, Board{{8, 8, 0, 0}}, Options{Rules: Rules{WinValue: 16, Spawn4Probability: 0.1, StartTiles: 2}})

	Play(m, GreedyStrategy{}, PlayOptions{MaxMoves: 1})
	if m.Phase() != PhaseWon {
		t.Fatalf("Phase() = %s, want won", m.Phase())
	}

	played := Play(m, GreedyStrategy{}, PlayOptions{MaxMoves: 2, KeepPlaying: true})
	if !m.KeepPlayingSet() || played == 0 {
		t.Errorf("KeepPlayingSet() = %v after %d moves", m.KeepPlayingSet(), played)
	}
}
