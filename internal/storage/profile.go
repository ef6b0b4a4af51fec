package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// ProfileStore is the durable t2048.Store of one profile.
type ProfileStore struct {
	store   *Store
	profile string
}

var _ t2048.Store = (*ProfileStore)(nil)

// Profile returns the session store of the named profile.
func (s *Store) Profile(name string) *ProfileStore {
	return &ProfileStore{store: s, profile: name}
}

// Name returns the profile name.
func (p *ProfileStore) Name() string {
	return p.profile
}

// BestScore returns the stored best score, 0 if none.
func (p *ProfileStore) BestScore() (int, error) {
	var score int
	err := p.store.db.QueryRow("SELECT score FROM best_scores WHERE profile = ?", p.profile).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score unless a higher best is already recorded.
func (p *ProfileStore) SetBestScore(score int) error {
	_, err := p.store.db.Exec(
		`INSERT INTO best_scores (profile, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
		   score = MAX(best_scores.score, excluded.score),
		   updated_at = CURRENT_TIMESTAMP`,
		p.profile, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// SessionState returns the stored session, or nil when there is none.
func (p *ProfileStore) SessionState() (*t2048.SessionState, error) {
	raw, err := p.rawSession()
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeSession(raw)
}

func (p *ProfileStore) rawSession() (string, error) {
	var raw string
	err := p.store.db.QueryRow("SELECT state FROM sessions WHERE profile = ?", p.profile).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query session: %w", err)
	}
	return raw, nil
}

// SetSessionState replaces the stored session.
func (p *ProfileStore) SetSessionState(st t2048.SessionState) error {
	raw, err := EncodeSession(st)
	if err != nil {
		return err
	}
	_, err = p.store.db.Exec(
		`INSERT INTO sessions (profile, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP`,
		p.profile, raw,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// ClearSessionState deletes the stored session. Clearing a missing session is not an error.
func (p *ProfileStore) ClearSessionState() error {
	if _, err := p.store.db.Exec("DELETE FROM sessions WHERE profile = ?", p.profile); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// RecordResult stores a finished game in the history.
func (p *ProfileStore) RecordResult(res t2048.Result) error {
	_, err := p.store.SaveScore(ScoreEntry{
		Profile: p.profile,
		GameID:  res.GameID,
		Score:   res.Score,
		MaxTile: res.MaxTile,
		Won:     res.Won,
		Moves:   res.Moves,
	})
	return err
}
