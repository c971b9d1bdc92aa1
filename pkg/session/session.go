package session

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to one user with an absolute expiry.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session's absolute expiry has passed.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}

// Identity is the resolved owner of a valid session, as attached to the
// request context for downstream authorization checks.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	MFAEnabled bool      `json:"mfa_enabled"`
}
