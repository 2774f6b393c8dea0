package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

// SessionStore owns the staff session lifecycle: creation on login, idle
// expiry on validation, and a periodic sweep that bounds memory from sessions
// nobody re-validates.
//
// Expiry is deliberately a double mechanism. Validate checks staleness itself,
// so correctness does not depend on the sweep; the sweep only reclaims memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	timeout       time.Duration
	sweepInterval time.Duration
	now           func() time.Time
	logger        *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionStore builds a store and starts its background sweep.
func NewSessionStore(timeout, sweepInterval time.Duration, logger *zap.Logger) *SessionStore {
	return newSessionStore(timeout, sweepInterval, logger, time.Now)
}

func newSessionStore(timeout, sweepInterval time.Duration, logger *zap.Logger, now func() time.Time) *SessionStore {
	s := &SessionStore{
		sessions:      make(map[string]*domain.Session),
		timeout:       timeout,
		sweepInterval: sweepInterval,
		now:           now,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Create inserts a new session for the role and returns its id.
func (s *SessionStore) Create(role domain.StaffRole) string {
	id := uuid.NewString()
	now := s.now()
	sess := &domain.Session{
		ID:           id,
		Role:         role,
		CreatedAt:    now,
		LastAccessAt: now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id
}

// Validate looks up a session by id. Sessions idle past the timeout are
// removed and reported absent even if the sweep has not run yet. A successful
// validation refreshes LastAccessAt.
func (s *SessionStore) Validate(id string) (domain.Session, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	if now.Sub(sess.LastAccessAt) > s.timeout {
		delete(s.sessions, id)
		return domain.Session{}, false
	}
	if now.After(sess.LastAccessAt) {
		sess.LastAccessAt = now
	}
	return *sess, true
}

// Terminate removes a session. Unknown ids are a no-op.
func (s *SessionStore) Terminate(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweep.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *SessionStore) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SessionStore) sweep() {
	now := s.now()

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastAccessAt) > s.timeout {
			delete(s.sessions, id)
			evicted++
		}
	}
	s.mu.Unlock()

	if evicted > 0 && s.logger != nil {
		s.logger.Debug("swept idle staff sessions", zap.Int("evicted", evicted))
	}
}
