package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func TestMenuItems(t *testing.T) {
	tests := []struct {
		name string
		info MenuInfo
		want []MenuChoice
	}{
		{"no session", MenuInfo{}, []MenuChoice{MenuNewGame, MenuScores, MenuQuit}},
		{"session", MenuInfo{CanContinue: true}, []MenuChoice{MenuContinue, MenuNewGame, MenuScores, MenuQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(tt.info, testConfig)
			if len(m.items) != len(tt.want) {
				t.Fatalf("items = %v, want %v", m.items, tt.want)
			}
			for i := range tt.want {
				if m.items[i] != tt.want[i] {
					t.Errorf("items[%d] = %v, want %v", i, m.items[i], tt.want[i])
				}
			}
		})
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(MenuInfo{Profile: "alice", BestScore: 512}, testConfig)
	if !strings.Contains(m.View(), "best 512") {
		t.Error("menu header should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(MenuModel).Choice(); got != MenuScores || cmd == nil {
		t.Errorf("Choice() = %v, want High Scores", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(MenuModel).Choice(); got != MenuNewGame {
		t.Errorf("Choice() = %v, want cursor clamped at New Game", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(MenuModel).Choice(); got != MenuScores {
		t.Errorf("tab Choice() = %v, want High Scores", got)
	}
}

func TestLoadMenuInfo(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 2, 0, 0}})
	store.SetBestScore(300)

	info := LoadMenuInfo(store, "alice")
	if !info.CanContinue || info.BestScore != 300 || info.Profile != "alice" {
		t.Errorf("LoadMenuInfo() = %+v", info)
	}

	store.ClearSessionState()
	if LoadMenuInfo(store, "alice").CanContinue {
		t.Error("CanContinue without a saved session")
	}
	if info := LoadMenuInfo(nil, "bob"); info.Profile != "bob" || info.CanContinue {
		t.Errorf("LoadMenuInfo(nil) = %+v", info)
	}
}

func TestSessionModelFlow(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "t2048.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	profile := db.Profile("alice")
	var results []t2048.Result
	opts := GameOptions{
		Session: t2048.Options{
			Seed:  3,
			Store: profile,
			OnTerminated: func(r t2048.Result) {
				results = append(results, r)
				profile.RecordResult(r)
			},
		},
		Profile: "alice",
	}

	m := NewSessionModel(opts, db, testConfig)
	if m.menu.items[0] != MenuNewGame {
		t.Fatalf("first item = %v, want New Game with no saved session", m.menu.items[0])
	}

	// New Game
	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.active != screenGame || cmd == nil {
		t.Fatalf("enter should start a game, active = %v", m.active)
	}
	gameID := m.game.Manager().GameID()

	// Back to the menu; the session is saved and can be continued.
	m, cmd = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != screenMenu || m.quitting {
		t.Fatalf("esc should return to the menu, active = %v", m.active)
	}
	if m.menu.items[0] != MenuContinue {
		t.Fatalf("first item = %v, want Continue", m.menu.items[0])
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.game.Manager().GameID(); got != gameID {
		t.Errorf("Continue resumed %q, want %q", got, gameID)
	}

	// Stale ticks from the first game loop are ignored by the new one.
	moves := m.game.Manager().Moves()
	m, cmd = sendSession(t, m, TickMsg{Loop: 0})
	if cmd != nil || m.game.Manager().Moves() != moves {
		t.Error("stale tick was processed")
	}

	// Scoreboard and back.
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.active != screenScores {
		t.Fatalf("tab should open the scoreboard, active = %v", m.active)
	}
	if m.scoreboard.Profile() != "alice" {
		t.Errorf("scoreboard profile = %q, want alice", m.scoreboard.Profile())
	}
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != screenMenu {
		t.Error("esc on the scoreboard should return to the menu")
	}

	m, cmd = sendSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
	if len(results) != 0 {
		t.Errorf("termination hook fired %d times without a finished game", len(results))
	}
}

func TestScoreboardProfiles(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "t2048.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	db.SaveScore(storage.ScoreEntry{Profile: "alice", GameID: "a", Score: 100, MaxTile: 64})
	db.SaveScore(storage.ScoreEntry{Profile: "alice", GameID: "b", Score: 300, MaxTile: 256})
	db.SaveScore(storage.ScoreEntry{Profile: "bob", GameID: "c", Score: 50, MaxTile: 16})

	sb := NewScoreboardModel(db, "bob", 100, 30)
	if sb.Profile() != "bob" || len(sb.Scores()) != 1 {
		t.Fatalf("profile %q with %d scores, want bob with 1", sb.Profile(), len(sb.Scores()))
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.Profile() != "alice" {
		t.Fatalf("tab moved to %q, want alice", sb.Profile())
	}
	if scores := sb.Scores(); len(scores) != 2 || scores[0].Score != 300 {
		t.Errorf("alice scores = %+v", scores)
	}
	out := sb.View()
	for _, want := range []string{"HIGH SCORES - alice", "games 2", "Profiles"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	guest := NewScoreboardModel(nil, "guest", 60, 20)
	if guest.Profile() != "guest" || !strings.Contains(guest.View(), "No scores recorded yet") {
		t.Error("scoreboard without a database should show an empty board")
	}
}
