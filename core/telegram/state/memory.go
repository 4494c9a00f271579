package state

import (
	"context"
	"sync"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryManager constructs the in-process Manager. Sessions live for the
// lifetime of the process only.
func NewMemoryManager() Manager {
	return &memoryManager{sessions: make(map[int64]Session)}
}

func (m *memoryManager) Get(_ context.Context, userID int64) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.Clone(), nil
	}
	return NewSession(), nil
}

func (m *memoryManager) Set(_ context.Context, userID int64, st State, patch map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = NewSession()
	}
	sess.State = st
	for k, v := range patch {
		sess.Data[k] = v
	}
	m.sessions[userID] = sess
	return nil
}

func (m *memoryManager) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
