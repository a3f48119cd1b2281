package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/warikan/internal/models"
)

// Manager owns every live session of the process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session with the given member names.
func (m *Manager) Create(names []string) (*Session, error) {
	s, err := New(uuid.New().String(), names, m.now())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, sessionID)
	}
	return s, nil
}

// Delete discards a session and all of its state.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time { return m.now() }
