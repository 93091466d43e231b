package services

import (
	"easy-shop/models"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxSweepInterval = time.Minute

// SessionService is the in-process registry of live sessions. A session is
// created at login and dropped at logout or once it expires, taking its cart
// with it.
type SessionService struct {
	adminEmail string
	ttl        time.Duration
	now        func() time.Time

	mu        sync.Mutex
	sessions  map[string]*models.Session
	lastSweep time.Time
}

// NewSessionService builds the registry. Sessions live for ttl, which should
// match the lifetime of the tokens handed out for them; zero means forever.
func NewSessionService(adminEmail string, ttl time.Duration) *SessionService {
	return &SessionService{
		adminEmail: strings.TrimSpace(adminEmail),
		ttl:        ttl,
		now:        time.Now,
		sessions:   make(map[string]*models.Session),
	}
}

// Create opens a new session for email with an empty cart. The role is
// fixed here and never re-evaluated for the life of the session.
func (s *SessionService) Create(email string) *models.Session {
	session := models.NewSession(uuid.NewString(), email, s.ResolveRole(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session.CreatedAt = now
	if s.ttl > 0 {
		session.ExpiresAt = now.Add(s.ttl)
		if now.Sub(s.lastSweep) >= s.sweepInterval() {
			s.sweepLocked(now)
		}
	}
	s.sessions[session.ID] = session

	return session
}

func (s *SessionService) Get(id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep drops every expired session and reports how many were removed.
func (s *SessionService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *SessionService) sweepLocked(now time.Time) int {
	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.lastSweep = now
	return removed
}

func (s *SessionService) sweepInterval() time.Duration {
	if s.ttl < maxSweepInterval {
		return s.ttl
	}
	return maxSweepInterval
}

// ResolveRole grants admin only to the configured administrator email.
func (s *SessionService) ResolveRole(email string) models.Role {
	if s.adminEmail != "" && email == s.adminEmail {
		return models.RoleAdmin
	}
	return models.RoleCustomer
}

// IsAdminEmail reports whether email is the reserved administrator identity.
func (s *SessionService) IsAdminEmail(email string) bool {
	return s.ResolveRole(email) == models.RoleAdmin
}

// Count reports the number of sessions still registered.
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
