package storage

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// FallbackStore wraps a durable store with an in-memory mirror. Successful
// reads and all writes are copied to memory; after the first primary failure
// the store degrades and serves everything from memory.
type FallbackStore struct {
	mu       sync.Mutex
	primary  t2048.Store
	memory   *t2048.MemoryStore
	degraded bool
	logger   *log.Logger
}

var _ t2048.Store = (*FallbackStore)(nil)

// NewFallbackStore wraps primary. A nil primary starts degraded.
func NewFallbackStore(primary t2048.Store, logger *log.Logger) *FallbackStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FallbackStore{
		primary:  primary,
		memory:   t2048.NewMemoryStore(),
		degraded: primary == nil,
		logger:   logger,
	}
}

// Degraded reports whether the durable store has been abandoned.
func (f *FallbackStore) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

// degrade must be called with f.mu held.
func (f *FallbackStore) degrade(op string, err error) {
	if f.degraded {
		return
	}
	f.degraded = true
	f.logger.Warn("storage unavailable, keeping progress in memory", "op", op, "error", err)
}

func (f *FallbackStore) BestScore() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.degraded {
		best, err := f.primary.BestScore()
		if err == nil {
			mirrored, _ := f.memory.BestScore()
			best = max(best, mirrored)
			f.memory.SetBestScore(best) //nolint:errcheck
			return best, nil
		}
		f.degrade("best score", err)
	}
	return f.memory.BestScore()
}

func (f *FallbackStore) SetBestScore(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.degraded {
		if err := f.primary.SetBestScore(score); err != nil {
			f.degrade("save best score", err)
		}
	}
	return f.memory.SetBestScore(score)
}

// SessionState passes t2048.ErrInvalidState through so the caller can discard
// an unreadable session; any other failure degrades the store.
func (f *FallbackStore) SessionState() (*t2048.SessionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.degraded {
		st, err := f.primary.SessionState()
		switch {
		case err == nil:
			if st == nil {
				f.memory.ClearSessionState() //nolint:errcheck
			} else {
				f.memory.SetSessionState(*st) //nolint:errcheck
			}
			return st, nil
		case errors.Is(err, t2048.ErrInvalidState):
			return nil, err
		default:
			f.degrade("load session", err)
		}
	}
	return f.memory.SessionState()
}

func (f *FallbackStore) SetSessionState(st t2048.SessionState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.degraded {
		if err := f.primary.SetSessionState(st); err != nil {
			f.degrade("save session", err)
		}
	}
	return f.memory.SetSessionState(st)
}

func (f *FallbackStore) ClearSessionState() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.degraded {
		if err := f.primary.ClearSessionState(); err != nil {
			f.degrade("clear session", err)
		}
	}
	return f.memory.ClearSessionState()
}

// OpenSessionStore picks the session store for profile: SQLite at path when
// the database opens, memory only otherwise. db is nil in the second case and
// must be closed by the caller in the first.
func OpenSessionStore(path, profile string, logger *log.Logger) (store *FallbackStore, db *Store) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := Open(path)
	if err != nil {
		logger.Warn("cannot open score database, progress will not be saved", "path", path, "error", err)
		return NewFallbackStore(nil, logger), nil
	}
	return NewFallbackStore(db.Profile(profile), logger), db
}
