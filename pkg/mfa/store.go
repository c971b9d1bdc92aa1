package mfa

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a pending challenge stays valid.
const DefaultTTL = 5 * time.Minute

// Challenge is the pending second-factor state for one login attempt.
type Challenge struct {
	UserID    uuid.UUID `json:"user_id"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the holding area for pending challenges. Implementations must be
// safe for concurrent use.
type Store interface {
	// Create inserts a fresh unverified challenge for the user and returns
	// its opaque token. The challenge is removed automatically after the
	// store's TTL regardless of outcome.
	Create(ctx context.Context, userID uuid.UUID) (string, error)

	// Get returns the challenge for a token. The second result is false
	// when the token is unknown or expired.
	Get(ctx context.Context, token string) (Challenge, bool, error)

	// MarkVerified flips the verified flag. It reports false when the
	// token is unknown or expired.
	MarkVerified(ctx context.Context, token string) (bool, error)

	// Clear removes a challenge once it has been consumed. Clearing an
	// absent token is not an error.
	Clear(ctx context.Context, token string) error
}

// generateToken creates a cryptographically secure challenge token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
