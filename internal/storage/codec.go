package storage

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// EncodeSession serializes a session snapshot to JSON.
func EncodeSession(st t2048.SessionState) (string, error) {
	s, err := sonic.MarshalString(st)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode session: %w", err)
	}
	return s, nil
}

// DecodeSession parses a stored snapshot. Malformed input is reported as
// t2048.ErrInvalidState so callers can discard it.
func DecodeSession(s string) (*t2048.SessionState, error) {
	var st t2048.SessionState
	if err := sonic.UnmarshalString(s, &st); err != nil {
		return nil, fmt.Errorf("storage: cannot decode session: %w: %v", t2048.ErrInvalidState, err)
	}
	return &st, nil
}

// EncodeScores serializes score history for export.
func EncodeScores(entries []ScoreEntry) (string, error) {
	if entries == nil {
		entries = []ScoreEntry{}
	}
	s, err := sonic.MarshalString(entries)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode scores: %w", err)
	}
	return s, nil
}
