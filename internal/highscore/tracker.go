// Package highscore keeps the best score of a variant in sync with storage.
package highscore

import (
	"fmt"
	"sync"
)

// BestStore persists one best score per variant. *storage.Store implements it.
type BestStore interface {
	BestScore(gameID string) (int, error)
	UpdateBestScore(gameID string, score int) (bool, error)
}

// Tracker caches the best score of one variant and writes through to the
// store as soon as it is beaten. A nil store keeps the best in memory only.
type Tracker struct {
	mu     sync.Mutex
	store  BestStore
	gameID string
	best   int
}

// NewTracker loads the persisted best score for gameID.
func NewTracker(store BestStore, gameID string) (*Tracker, error) {
	t := &Tracker{store: store, gameID: gameID}
	if store == nil {
		return t, nil
	}

	best, err := store.BestScore(gameID)
	if err != nil {
		return t, fmt.Errorf("highscore: load %s: %w", gameID, err)
	}
	t.best = best
	return t, nil
}

// Best returns the best score seen so far.
func (t *Tracker) Best() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best
}

// Observe records a current score. It reports whether the best improved;
// the in-memory best is updated even if persisting fails.
func (t *Tracker) Observe(score int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if score <= t.best {
		return false, nil
	}
	t.best = score

	if t.store == nil {
		return true, nil
	}
	if _, err := t.store.UpdateBestScore(t.gameID, score); err != nil {
		return true, fmt.Errorf("highscore: save %s: %w", t.gameID, err)
	}
	return true, nil
}
