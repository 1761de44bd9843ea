package identity

import (
	"context"
	"sync"

	"github.com/nhle/studentpro/internal/session"
)

// MemoryStore keeps the identity in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	current session.Session
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, nil
}

func (m *MemoryStore) Set(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = session.Session{UserID: userID, Token: token}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = session.Session{}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
