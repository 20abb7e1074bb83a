package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
)

// Manager owns live sessions by id
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Controller
	deps      Dependencies
	idleTTL   time.Duration
	publisher event.Publisher
	now       func() time.Time // Injectable for testing
}

// NewManager creates a manager whose sessions share deps
func NewManager(deps Dependencies, idleTTL time.Duration, publisher event.Publisher) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		sessions:  make(map[string]*Controller),
		deps:      deps,
		idleTTL:   idleTTL,
		publisher: publisher,
		now:       time.Now,
	}
}

// Login creates a session for mobile. Failed logins leave nothing behind.
func (m *Manager) Login(ctx context.Context, mobile string) (*Controller, error) {
	c := newController(uuid.NewString(), m.deps, m.now)
	if err := c.Login(ctx, mobile); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[c.ID()] = c
	m.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgSessionCreated, "session_id", c.ID(), "mobile", mobile)
	return c, nil
}

// Get returns the session with id
func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return c, nil
}

// End closes the session and forgets it. Logged-out kiosks log in again
// through Login, which always mints a fresh session.
func (m *Manager) End(ctx context.Context, id string) {
	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}
	c.Close(ctx)
	logger.FromContext(ctx).Info(LogMsgSessionEnded, "session_id", id)
}

// Len reports the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle drops sessions idle longer than the TTL and cancels their timers
func (m *Manager) EvictIdle(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	var evicted []*Controller
	for id, c := range m.sessions {
		if c.LastActivity().Before(cutoff) {
			evicted = append(evicted, c)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	log := logger.FromContext(ctx)
	for _, c := range evicted {
		mobile := c.Mobile()
		c.Close(ctx)
		log.Info(LogMsgSessionEvicted, "session_id", c.ID(), "mobile", mobile)
		if m.publisher != nil {
			m.publisher.PublishWithRetry(ctx, event.NewSessionEvictedEvent(c.ID(), mobile))
		}
	}
	return len(evicted)
}

// Shutdown cancels every session's pending callbacks
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close(ctx)
	}
}

// JanitorJob runs EvictIdle on the worker pool
type JanitorJob struct {
	Manager *Manager
}

func (j *JanitorJob) Name() string { return JanitorJobName }

func (j *JanitorJob) Process(ctx context.Context) error {
	j.Manager.EvictIdle(ctx)
	return nil
}
