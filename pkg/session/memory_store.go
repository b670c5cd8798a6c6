package session

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore implements Store with a mutex-guarded map. It backs tests and
// single-process development setups; production uses PGStore or RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = copySession(s)
	return nil
}

func (m *MemoryStore) Resume(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	out := copySession(s)
	out.State = StateResumed
	return out, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" || s.Federated {
		return nil
	}
	s.Touch()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = copySession(s)
	return nil
}

func (m *MemoryStore) Destroy(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteExpired(ctx context.Context, cutoff int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.Updated+int64(s.Idle) < cutoff {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *MemoryStore) EnsureSchema(ctx context.Context) error { return nil }

// Len reports the number of live records; used by tests and the janitor's
// sweep assertions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// copySession deep-copies the record so callers never share the stored map.
func copySession(s *Session) *Session {
	out := *s
	out.Data = make(map[string]any, len(s.Data))
	maps.Copy(out.Data, s.Data)
	return &out
}
