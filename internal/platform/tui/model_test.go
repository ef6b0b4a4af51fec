package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

// fixtureStore holds a saved session with the given board.
func fixtureStore(t *testing.T, b t2048.Board) *t2048.MemoryStore {
	t.Helper()
	store := t2048.NewMemoryStore()
	err := store.SetSessionState(t2048.SessionState{
		Version: t2048.StateVersion,
		GameID:  "fixture",
		Grid:    t2048.GridFromBoard(b).State(),
		Score:   12,
	})
	if err != nil {
		t.Fatalf("SetSessionState() error = %v", err)
	}
	return store
}

func startModel(t *testing.T, opts GameOptions) Model {
	t.Helper()
	m := NewModel(opts, testConfig)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the tick loop")
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm, cmd
}

func TestModelResumesAndMoves(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 2, 0, 0}})
	m := startModel(t, GameOptions{Session: t2048.Options{Store: store}, Profile: "alice"})

	if got := m.Manager().GameID(); got != "fixture" {
		t.Fatalf("GameID() = %q, want resumed fixture", got)
	}

	m, _ = send(t, m, runeKey('a'))
	if m.Manager().Moves() != 0 {
		t.Fatal("keys must wait for the next tick")
	}
	m, cmd := send(t, m, TickMsg{Loop: m.loop})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Manager().Moves() != 1 || m.Manager().Score() != 16 {
		t.Errorf("after left: moves %d score %d, want 1 and 16", m.Manager().Moves(), m.Manager().Score())
	}
	if m.Manager().Board()[0][0] != 4 {
		t.Errorf("board = %v, want merged 4 at the left", m.Manager().Board())
	}

	out := m.View()
	for _, want := range []string{"Score: 16", "alice", "move"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModelOneActionPerTick(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 0, 0, 2}})
	m := startModel(t, GameOptions{Session: t2048.Options{Store: store}})

	m, _ = send(t, m, runeKey('a'))
	m, _ = send(t, m, runeKey('d'))
	m, _ = send(t, m, TickMsg{Loop: m.loop})
	if got := m.Manager().Moves(); got != 1 {
		t.Errorf("Moves() = %d after one tick, want 1", got)
	}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 2, 0, 0}})
	m := startModel(t, GameOptions{Session: t2048.Options{Store: store}})

	m, _ = send(t, m, runeKey('a'))
	m, cmd := send(t, m, TickMsg{Loop: m.loop + 1000})
	if cmd != nil || m.Manager().Moves() != 0 {
		t.Error("a tick from another loop should be ignored")
	}
}

func TestModelFreshDiscardsSession(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 2, 0, 0}})
	m := startModel(t, GameOptions{Session: t2048.Options{Store: store}, Fresh: true})

	if m.Manager().GameID() == "fixture" || m.Manager().Score() != 0 {
		t.Errorf("fresh game resumed the saved session: id %q score %d", m.Manager().GameID(), m.Manager().Score())
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := startModel(t, GameOptions{})

	back, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || cmd == nil {
		t.Error("esc should leave the standalone program")
	}

	m.nested = true
	back, cmd = send(t, m, runeKey('b'))
	if !back.BackToMenu() || cmd != nil {
		t.Error("nested models go back without quitting the program")
	}

	quit, cmd := send(t, m, runeKey('q'))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	store := fixtureStore(t, t2048.Board{{2, 2, 0, 0}})
	m := startModel(t, GameOptions{Session: t2048.Options{Store: store}})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 100x39", m.screen.Width(), m.screen.Height())
	}
	if m.Manager().GameID() != "fixture" {
		t.Error("resize restarted the game")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := startModel(t, GameOptions{})
	m, _ = send(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	if !strings.Contains(m.View(), "keep playing") {
		t.Error("full help should list keep playing")
	}
}
