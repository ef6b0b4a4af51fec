package t2048

import "sync"

// Store persists the best score and the in-progress session.
// All methods are idempotent. SessionState returns (nil, nil) when nothing is stored.
type Store interface {
	BestScore() (int, error)
	SetBestScore(score int) error
	SessionState() (*SessionState, error)
	SetSessionState(st SessionState) error
	ClearSessionState() error
}

// MemoryStore keeps everything in process memory. It is used when no durable
// store is available and as the mirror behind storage.FallbackStore.
type MemoryStore struct {
	mu      sync.Mutex
	best    int
	session *SessionState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) BestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *MemoryStore) SetBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, score)
	return nil
}

// SessionState returns a deep copy of the stored session.
func (m *MemoryStore) SessionState() (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	st := cloneSessionState(*m.session)
	return &st, nil
}

func (m *MemoryStore) SetSessionState(st SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := cloneSessionState(st)
	m.session = &c
	return nil
}

func (m *MemoryStore) ClearSessionState() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// cloneSessionState copies the grid cells so callers cannot alias stored state.
func cloneSessionState(st SessionState) SessionState {
	out := st
	if st.Grid.Cells != nil {
		out.Grid.Cells = make([][]*TileState, len(st.Grid.Cells))
		for y, row := range st.Grid.Cells {
			out.Grid.Cells[y] = make([]*TileState, len(row))
			for x, ts := range row {
				if ts != nil {
					c := *ts
					out.Grid.Cells[y][x] = &c
				}
			}
		}
	}
	return out
}
