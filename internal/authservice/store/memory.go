package store

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-memory Store suitable for tests and as
// the development fallback when Redis is unreachable.  Nothing survives a
// restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (m *MemoryStore) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.Username]; exists {
		return ErrUserExists
	}
	m.users[u.Username] = u
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *MemoryStore) UpdateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; !ok {
		return ErrUserNotFound
	}
	m.users[u.Username] = u
	return nil
}

func (m *MemoryStore) Rename(_ context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[oldName]
	if !ok {
		return ErrUserNotFound
	}
	if _, taken := m.users[newName]; taken {
		return ErrUserExists
	}
	delete(m.users, oldName)
	u.Username = newName
	m.users[newName] = u
	return nil
}

// Ping always succeeds: memory is never unreachable.
func (m *MemoryStore) Ping(context.Context) error { return nil }
