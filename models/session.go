package models

import (
	"sync"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

const (
	LandingAdmin   = "admin"
	LandingCatalog = "catalog"
)

// Session is the live identity of one login. The cart lives and dies with it.
type Session struct {
	ID        string
	Email     string
	Role      Role
	CreatedAt time.Time
	// ExpiresAt is zero for a session that never expires.
	ExpiresAt time.Time

	mu   sync.Mutex
	cart *Cart
}

func NewSession(id, email string, role Role) *Session {
	return &Session{
		ID:        id,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		cart:      NewCart(),
	}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Landing names the top-level view the session is routed to after login.
func (s *Session) Landing() string {
	if s.IsAdmin() {
		return LandingAdmin
	}
	return LandingCatalog
}

// WithCart runs fn while holding the session lock.
func (s *Session) WithCart(fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

type SessionView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Landing   string    `json:"landing"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) View() SessionView {
	return SessionView{
		ID:        s.ID,
		Email:     s.Email,
		Role:      s.Role,
		Landing:   s.Landing(),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
