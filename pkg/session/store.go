package session

import (
	"context"
	"time"
)

// Store persists sessions keyed by token. Implementations must be safe for
// concurrent use.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound when
	// the token is unknown.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting an absent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired bulk-removes all sessions past their expiry.
	DeleteExpired(ctx context.Context, now time.Time) error

	// DeleteByUserID removes every session owned by a user, for forced
	// logout on deactivation.
	DeleteByUserID(ctx context.Context, userID string) error
}

// UserSource resolves session owners. FindIdentity reports ok=false for a
// missing or deactivated user, which invalidates any session pointing at it.
type UserSource interface {
	FindIdentity(ctx context.Context, userID string) (Identity, bool, error)

	// TouchLastLogin stamps the user's last-login time. Called as part of
	// session creation.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}
