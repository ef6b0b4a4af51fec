package t2048

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Rules are the tunable game parameters.
type Rules struct {
	WinValue          int     // Merge result that wins the game
	Spawn4Probability float64 // Chance a spawned tile is a 4 instead of a 2
	StartTiles        int     // Tiles spawned on a fresh grid
}

// DefaultRules returns the classic 2048 rules.
func DefaultRules() Rules {
	return Rules{
		WinValue:          2048,
		Spawn4Probability: 0.1,
		StartTiles:        2,
	}
}

// Result is reported to the termination hook.
type Result struct {
	GameID  string
	Score   int
	Won     bool
	MaxTile int
	Moves   int
}

// Options configure a Manager. Only Rules are needed for a playable session.
type Options struct {
	Rules        Rules        // Zero value means DefaultRules()
	Seed         int64        // 0 seeds from the clock
	Store        Store        // nil means a MemoryStore
	Renderer     Renderer     // nil skips rendering
	OnTerminated func(Result) // Called once per transition into a terminal state
	Logger       *log.Logger  // nil discards logs
}

// Manager owns one game session: the grid, score, flags and collaborators.
// It is not safe for concurrent use.
type Manager struct {
	rules        Rules
	rng          *rand.Rand
	store        Store
	renderer     Renderer
	onTerminated func(Result)
	logger       *log.Logger

	grid        *Grid
	gameID      string
	score       int
	best        int
	lastDelta   int
	moves       int
	over        bool
	won         bool
	keepPlaying bool

	notified bool // Termination hook already fired for the current terminal state
	seq      uint64
}

// NewManager creates an idle manager. Call Setup to start playing.
func NewManager(opts Options) *Manager {
	rules := opts.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	if rules.WinValue <= 0 {
		rules.WinValue = DefaultRules().WinValue
	}
	if rules.StartTiles <= 0 {
		rules.StartTiles = DefaultRules().StartTiles
	}
	rules.Spawn4Probability = min(max(rules.Spawn4Probability, 0), 1)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Manager{
		rules:        rules,
		rng:          rand.New(rand.NewSource(seed)),
		store:        store,
		renderer:     opts.Renderer,
		onTerminated: opts.OnTerminated,
		logger:       logger,
	}
}

// Setup starts a session, resuming the persisted one when it is valid and
// still in progress.
func (m *Manager) Setup() {
	m.setup(true)
}

// Restart discards the current session and starts a fresh one.
func (m *Manager) Restart() {
	if err := m.store.ClearSessionState(); err != nil {
		m.logger.Error("cannot clear session", "error", err)
	}
	m.setup(false)
}

func (m *Manager) setup(resume bool) {
	m.notified = false
	m.lastDelta = 0

	var (
		restored *SessionState
		grid     *Grid
	)
	if resume {
		restored, grid = m.loadSession()
	}

	if restored != nil {
		m.grid = grid
		m.gameID = restored.GameID
		if m.gameID == "" {
			m.gameID = uuid.NewString()
		}
		m.score = restored.Score
		m.moves = restored.Moves
		m.over = restored.Over
		m.won = restored.Won
		m.keepPlaying = restored.KeepPlaying
		if !m.grid.MovesAvailable() {
			m.over = true
		}
		m.logger.Info("session resumed", "game", m.gameID, "score", m.score, "moves", m.moves)
	} else {
		m.grid = NewGrid()
		m.gameID = uuid.NewString()
		m.score = 0
		m.moves = 0
		m.over = false
		m.won = false
		m.keepPlaying = false
		for range m.rules.StartTiles {
			m.addRandomTile()
		}
		m.logger.Debug("session started", "game", m.gameID)
	}

	if best, err := m.store.BestScore(); err != nil {
		m.logger.Error("cannot load best score", "error", err)
	} else {
		m.best = max(m.best, best)
	}

	m.actuate()
}

// loadSession returns the persisted session and its grid when it can be
// resumed. Anything else is dropped from the store.
func (m *Manager) loadSession() (*SessionState, *Grid) {
	st, err := m.store.SessionState()
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			m.logger.Warn("discarding unreadable session", "error", err)
			m.discardSession()
		} else {
			m.logger.Error("cannot load session", "error", err)
		}
		return nil, nil
	}
	if st == nil {
		return nil, nil
	}
	grid, err := st.Restore()
	if err != nil {
		m.logger.Warn("discarding invalid session", "error", err)
		m.discardSession()
		return nil, nil
	}
	if st.Terminated() {
		m.logger.Debug("discarding finished session", "game", st.GameID)
		m.discardSession()
		return nil, nil
	}
	return st, grid
}

func (m *Manager) discardSession() {
	if err := m.store.ClearSessionState(); err != nil {
		m.logger.Error("cannot clear session", "error", err)
	}
}

// Move slides the tiles in dir. It returns false and leaves the session
// untouched when the game is idle or terminated, the direction is invalid,
// or nothing can move that way.
func (m *Manager) Move(dir Direction) bool {
	if m.grid == nil || m.IsTerminated() || !dir.Valid() {
		return false
	}

	res := m.grid.Move(dir)
	if !res.Moved {
		return false
	}

	m.score += res.ScoreDelta
	m.lastDelta = res.ScoreDelta
	m.moves++

	if res.MaxMerged >= m.rules.WinValue {
		m.won = true
	}

	m.addRandomTile()

	if !m.grid.MovesAvailable() {
		m.over = true
	}

	m.actuate()
	return true
}

// KeepPlaying lets a won game continue. It returns false unless the game is
// in the won phase.
func (m *Manager) KeepPlaying() bool {
	if m.Phase() != PhaseWon {
		return false
	}
	m.keepPlaying = true
	m.notified = false
	m.lastDelta = 0
	m.actuate()
	return true
}

// IsTerminated reports whether moves are no longer accepted.
func (m *Manager) IsTerminated() bool {
	return m.over || (m.won && !m.keepPlaying)
}

// addRandomTile spawns a 2 or a 4 on a random empty cell.
func (m *Manager) addRandomTile() {
	pos, ok := m.grid.RandomEmptyCell(m.rng)
	if !ok {
		return
	}
	value := 2
	if m.rng.Float64() < m.rules.Spawn4Probability {
		value = 4
	}
	m.grid.Insert(NewTile(pos, value))
}

// actuate publishes the current state to the store, the renderer and the
// termination hook.
func (m *Manager) actuate() {
	if m.score > m.best {
		m.best = m.score
		if err := m.store.SetBestScore(m.best); err != nil {
			m.logger.Error("cannot save best score", "error", err)
		}
	}

	terminated := m.IsTerminated()
	if terminated {
		m.discardSession()
	} else if err := m.store.SetSessionState(m.State()); err != nil {
		m.logger.Error("cannot save session", "error", err)
	}

	m.render()

	if terminated && !m.notified {
		m.notified = true
		m.fireTerminated()
	}
}

func (m *Manager) render() {
	if m.renderer == nil {
		return
	}
	m.seq++
	frame := buildFrame(m.grid, m.seq, m.meta())

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("renderer panicked", "panic", fmt.Sprint(r))
		}
	}()
	if err := m.renderer.Render(frame); err != nil {
		m.logger.Error("render failed", "error", err)
	}
}

func (m *Manager) fireTerminated() {
	res := Result{
		GameID:  m.gameID,
		Score:   m.score,
		Won:     m.won,
		MaxTile: m.grid.MaxTile(),
		Moves:   m.moves,
	}
	m.logger.Info("game finished", "game", res.GameID, "score", res.Score, "won", res.Won, "max_tile", res.MaxTile)

	if m.onTerminated == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("termination hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	m.onTerminated(res)
}

func (m *Manager) meta() Meta {
	return Meta{
		Score:       m.score,
		BestScore:   m.best,
		ScoreDelta:  m.lastDelta,
		Over:        m.over,
		Won:         m.won,
		KeepPlaying: m.keepPlaying,
		Terminated:  m.IsTerminated(),
	}
}

// Phase returns the lifecycle state.
func (m *Manager) Phase() Phase {
	switch {
	case m.grid == nil:
		return PhaseIdle
	case m.over:
		return PhaseOver
	case m.won && m.keepPlaying:
		return PhaseKeepPlaying
	case m.won:
		return PhaseWon
	default:
		return PhasePlaying
	}
}

func (m *Manager) Score() int           { return m.score }
func (m *Manager) BestScore() int       { return m.best }
func (m *Manager) Over() bool           { return m.over }
func (m *Manager) Won() bool            { return m.won }
func (m *Manager) KeepPlayingSet() bool { return m.keepPlaying }
func (m *Manager) GameID() string       { return m.gameID }
func (m *Manager) Moves() int           { return m.moves }
func (m *Manager) Rules() Rules         { return m.rules }

// Board returns the value view of the grid.
func (m *Manager) Board() Board {
	if m.grid == nil {
		return Board{}
	}
	return m.grid.Board()
}

// Grid returns a copy of the grid. Changes to it do not affect the session.
func (m *Manager) Grid() *Grid {
	if m.grid == nil {
		return NewGrid()
	}
	return m.grid.Clone()
}

// State returns the serializable snapshot of the session.
func (m *Manager) State() SessionState {
	grid := m.grid
	if grid == nil {
		grid = NewGrid()
	}
	return SessionState{
		Version:     StateVersion,
		GameID:      m.gameID,
		Grid:        grid.State(),
		Score:       m.score,
		Over:        m.over,
		Won:         m.won,
		KeepPlaying: m.keepPlaying,
		Moves:       m.moves,
	}
}
