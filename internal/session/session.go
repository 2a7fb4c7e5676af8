package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the per-user aggregate the engine operates on: the slot-filling
// context plus the conversation memory. One turn at a time is processed per
// session; the engine holds the session lock for the duration of a turn.
type Session struct {
	ID      string
	Context Context
	Memory  *Memory

	mu sync.Mutex
}

// Lock serializes turn processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the turn lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager owns the live sessions. Sessions are independent of each other;
// the manager lock only guards the map itself.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session with the given ID, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create starts a fresh session with a generated ID.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:     uuid.New().String(),
		Memory: NewMemory(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// GetOrCreate returns the existing session for id, or creates one. An empty
// id always creates a new session.
func (m *Manager) GetOrCreate(id string) *Session {
	if id == "" {
		return m.Create()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id, Memory: NewMemory()}
	m.sessions[id] = s
	return s
}

// Remove discards a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
