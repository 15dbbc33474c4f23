package storage

import (
	"context"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// DefaultKey is the key scores are stored under unless configured otherwise.
const DefaultKey = "snake"

// KeyedScores binds a Store to one key so the engine can use it as its
// ScoreStore without knowing about keys.
type KeyedScores struct {
	store *Store
	key   string
}

var (
	_ snake.ScoreStore    = (*KeyedScores)(nil)
	_ snake.ScoreRecorder = (*KeyedScores)(nil)
)

// Keyed returns the scores stored under key. An empty key means DefaultKey.
func (s *Store) Keyed(key string) *KeyedScores {
	if key == "" {
		key = DefaultKey
	}
	return &KeyedScores{store: s, key: key}
}

// Key returns the key this view reads and writes.
func (k *KeyedScores) Key() string {
	return k.key
}

// HighScore returns the stored best score for the key.
func (k *KeyedScores) HighScore(ctx context.Context) (int, error) {
	return k.store.HighScore(ctx, k.key)
}

// SetHighScore raises the stored best score for the key.
func (k *KeyedScores) SetHighScore(ctx context.Context, score int) error {
	return k.store.SetHighScore(ctx, k.key, score)
}

// RecordScore appends a finished game to the key's history.
func (k *KeyedScores) RecordScore(ctx context.Context, score int) error {
	_, err := k.store.SaveScore(ctx, k.key, score)
	return err
}

// TopScores returns the key's best history entries.
func (k *KeyedScores) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	return k.store.TopScores(ctx, k.key, limit)
}

// Stats returns the key's aggregated statistics.
func (k *KeyedScores) Stats(ctx context.Context) (*GameStats, error) {
	return k.store.GetGameStats(ctx, k.key)
}
