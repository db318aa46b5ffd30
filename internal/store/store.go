// apps/go-solver/internal/store/store.go
//
// Persistence for precomputed scorer tables.
// Responsibilities:
//   - Store interface: save and reload a named word -> score mapping so
//     the dictionary-wide eliminations precompute is paid once, not on
//     every process start.
//   - Implementations: SQLite (sqlite.go) and in-memory (memory.go).

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no table with the requested name exists.
var ErrNotFound = errors.New("score table not found")

// Store persists named score tables.
type Store interface {
	// SaveScores stores the table under name, replacing any previous
	// table with that name.
	SaveScores(ctx context.Context, name string, scores map[string]float64) error
	// LoadScores returns the table stored under name, or ErrNotFound.
	LoadScores(ctx context.Context, name string) (map[string]float64, error)
	// Close releases any underlying resources.
	Close() error
}
