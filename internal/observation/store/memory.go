package store

import (
	"sync"

	"github.com/smallbiznis/agritatva/internal/observation/domain"
)

// Memory keeps observations in a slice guarded by a RWMutex.
type Memory struct {
	mu    sync.RWMutex
	items []domain.FieldObservation
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(obs domain.FieldObservation) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, obs)
	return len(m.items) - 1
}

func (m *Memory) All() []domain.FieldObservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.FieldObservation, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

var _ domain.Store = (*Memory)(nil)
