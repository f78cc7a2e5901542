package session

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. It ignores TTLs; entries live as
// long as the process does.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.sessions[sessionID]
	out := make([]Turn, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, sessionID string, turns ...Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionID] = capTurns(append(m.sessions[sessionID], turns...))
	return nil
}

func (m *MemoryStore) HealthCheck(_ context.Context) error {
	return nil
}
