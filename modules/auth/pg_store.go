package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescoach/authkit/pkg/pg"
)

// PGUserStore persists users in the users table.
type PGUserStore struct {
	pool *pgxpool.Pool
}

// NewPGUserStore creates a Postgres-backed user store.
func NewPGUserStore(pool *pgxpool.Pool) *PGUserStore {
	return &PGUserStore{pool: pool}
}

const userColumns = `id, email, name, password_hash, role, mfa_enabled,
	mfa_secret, recovery_codes, active, last_login_at, created_at`

// Create inserts a new user. Returns ErrEmailTaken when the email is
// already registered.
func (s *PGUserStore) Create(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
		user.MFAEnabled, user.MFASecret, user.RecoveryCodes, user.Active,
		user.LastLoginAt, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PGUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findWhere(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (s *PGUserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findWhere(ctx, `id = $1`, id)
}

func (s *PGUserStore) findWhere(ctx context.Context, where string, arg any) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role,
		&user.MFAEnabled, &user.MFASecret, &user.RecoveryCodes, &user.Active,
		&user.LastLoginAt, &user.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return &user, nil
}

func (s *PGUserStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return s.exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (s *PGUserStore) SaveMFASecret(ctx context.Context, id uuid.UUID, secret string, recoveryDigests []string) error {
	return s.exec(ctx,
		`UPDATE users SET mfa_secret = $2, recovery_codes = $3 WHERE id = $1`,
		id, secret, recoveryDigests)
}

func (s *PGUserStore) SetMFAEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	return s.exec(ctx,
		`UPDATE users SET mfa_enabled = $2 WHERE id = $1`, id, enabled)
}

func (s *PGUserStore) SaveRecoveryCodes(ctx context.Context, id uuid.UUID, recoveryDigests []string) error {
	return s.exec(ctx,
		`UPDATE users SET recovery_codes = $2 WHERE id = $1`, id, recoveryDigests)
}

func (s *PGUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.exec(ctx,
		`UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
}

func (s *PGUserStore) exec(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
