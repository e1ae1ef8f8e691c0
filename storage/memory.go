package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the token in process memory. It does not survive restarts.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) Get(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", false, nil
	}
	if !m.expiresAt.IsZero() && !m.now().Before(m.expiresAt) {
		m.token = ""
		m.expiresAt = time.Time{}
		return "", false, nil
	}
	return m.token, true, nil
}

// Set stores token. A ttl <= 0 keeps the token until Clear.
func (m *MemoryStore) Set(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.expiresAt = time.Time{}
	if ttl > 0 {
		m.expiresAt = m.now().Add(ttl)
	}
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
	return nil
}
