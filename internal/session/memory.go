package session

import (
	"context"
	"sync"

	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Set(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Replace(_ context.Context, oldID string, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, oldID)
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
