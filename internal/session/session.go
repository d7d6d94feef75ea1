// Package session scopes booking state: each session exclusively owns
// one wizard (and therefore one BookingRecord), plus a single named
// slot holding the current-user object.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smartwings/booking-system/internal/booking"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one active booking flow. Its context is cancelled on
// teardown so no in-flight simulated delay can complete a stage
// transition afterwards.
type Session struct {
	ID        string
	Wizard    *booking.Wizard
	CreatedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the session's lifetime context.
func (s *Session) Context() context.Context { return s.ctx }

// Manager tracks active sessions. Sessions never share a wizard.
type Manager struct {
	newWizard func() *booking.Wizard

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager that builds a fresh wizard for every
// session using the given factory.
func NewManager(newWizard func() *booking.Wizard) *Manager {
	return &Manager{
		newWizard: newWizard,
		sessions:  make(map[string]*Session),
	}
}

// Start opens a new session with its own wizard.
func (m *Manager) Start() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		ID:        uuid.New().String(),
		Wizard:    m.newWizard(),
		CreatedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess
}

// Get looks up an active session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// End tears a session down, cancelling any operation still waiting on
// its simulated delays.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.cancel()
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RequestContext derives a context for one operation on the session:
// it is cancelled when either the request or the session ends.
func (s *Session) RequestContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
