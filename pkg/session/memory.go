package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory store. It is the default and suits
// single-server deployments; use RedisStore when sessions must survive
// the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*storedSnapshot
	closed   bool
	done     chan struct{}
}

type storedSnapshot struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStoreOption configures MemoryStore behavior.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired snapshots are swept.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		c.cleanupInterval = d
	}
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := &memoryStoreConfig{
		cleanupInterval: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := &MemoryStore{
		sessions: make(map[string]*storedSnapshot),
		done:     make(chan struct{}),
	}
	go store.cleanupLoop(cfg.cleanupInterval)
	return store
}

// Save stores snapshot bytes with an expiration time.
func (m *MemoryStore) Save(_ context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	// Copy so later caller mutation cannot corrupt the stored snapshot.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	m.sessions[sessionID] = &storedSnapshot{
		data:      dataCopy,
		expiresAt: expiresAt,
	}
	return nil
}

// Load retrieves snapshot bytes if present and not expired.
func (m *MemoryStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed{}
	}

	s, ok := m.sessions[sessionID]
	if !ok || time.Now().After(s.expiresAt) {
		return nil, nil
	}

	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}
	delete(m.sessions, sessionID)
	return nil
}

// Touch extends a session's expiration.
func (m *MemoryStore) Touch(_ context.Context, sessionID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}
	if s, ok := m.sessions[sessionID]; ok {
		s.expiresAt = expiresAt
	}
	return nil
}

// Close stops the cleanup loop and drops all snapshots.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.sessions = nil
	return nil
}

// Len returns the number of stored snapshots, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) sweep() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
