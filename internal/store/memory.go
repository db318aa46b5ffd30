// apps/go-solver/internal/store/memory.go
//
// In-memory Store implementation, used in tests and when no database
// path is configured.

package store

import (
	"context"
	"sync"
)

// Memory is a Store backed by a map. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string]float64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string]float64)}
}

func (m *Memory) SaveScores(_ context.Context, name string, scores map[string]float64) error {
	copied := make(map[string]float64, len(scores))
	for word, score := range scores {
		copied[word] = score
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = copied
	return nil
}

func (m *Memory) LoadScores(_ context.Context, name string) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[name]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make(map[string]float64, len(table))
	for word, score := range table {
		copied[word] = score
	}
	return copied, nil
}

func (m *Memory) Close() error { return nil }
