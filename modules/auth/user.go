package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salescoach/authkit/pkg/session"
)

// User is the identity record owned by the persistence layer.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	MFAEnabled   bool
	// MFASecret is the stored TOTP secret, sealed when an encryption key
	// is configured.
	MFASecret string
	// RecoveryCodes holds SHA-256 digests, never plaintext.
	RecoveryCodes []string
	Active        bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
}

// UserStore is the persistence contract for identity records.
type UserStore interface {
	// FindByEmail returns ErrUserNotFound for unknown emails.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns ErrUserNotFound for unknown ids.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdatePasswordHash replaces the stored credential, used by the lazy
	// legacy-hash upgrade on login.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// SaveMFASecret stores a fresh secret and recovery digests without
	// enabling MFA; activation flips the flag separately.
	SaveMFASecret(ctx context.Context, id uuid.UUID, secret string, recoveryDigests []string) error

	// SetMFAEnabled flips the user's MFA flag.
	SetMFAEnabled(ctx context.Context, id uuid.UUID, enabled bool) error

	// SaveRecoveryCodes replaces the stored digest set, used to consume a
	// spent code.
	SaveRecoveryCodes(ctx context.Context, id uuid.UUID, recoveryDigests []string) error

	// TouchLastLogin stamps the last-login time.
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	return id, nil
}

// SessionSource adapts a UserStore to the session manager's UserSource
// contract.
type SessionSource struct {
	users UserStore
}

// NewSessionSource wraps a user store for session resolution.
func NewSessionSource(users UserStore) *SessionSource {
	if users == nil {
		panic("auth: user store is required")
	}
	return &SessionSource{users: users}
}

func (s *SessionSource) FindIdentity(ctx context.Context, userID string) (session.Identity, bool, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return session.Identity{}, false, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return session.Identity{}, false, nil
		}
		return session.Identity{}, false, err
	}
	if !user.Active {
		return session.Identity{}, false, nil
	}

	return session.Identity{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		MFAEnabled: user.MFAEnabled,
	}, true, nil
}

func (s *SessionSource) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return s.users.TouchLastLogin(ctx, id, at)
}
