package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Manager creates, resolves and revokes sessions.
type Manager struct {
	store Store
	users UserSource
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used by the background sweeper.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager over the given store and user source.
func NewManager(store Store, users UserSource, cfg Config, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}
	if users == nil {
		panic("session: user source is required")
	}

	m := &Manager{
		store: store,
		users: users,
		cfg:   cfg,
		log:   slog.Default(),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Create mints a session for the user. Lifetime is Config.TTL, or
// Config.RememberTTL when remember is set. Stamping the user's last-login
// time is part of the same logical operation.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, remember bool) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := m.now()
	session := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(m.cfg.ttlFor(remember)),
		CreatedAt: now,
	}

	if err := m.store.Create(ctx, session); err != nil {
		return "", errors.Join(ErrStoreFailure, err)
	}

	if err := m.users.TouchLastLogin(ctx, userID.String(), now); err != nil {
		return "", errors.Join(ErrStoreFailure, err)
	}

	return token, nil
}

// Resolve looks up a token and returns the owning identity. A missing,
// expired or orphaned session (deleted or deactivated user) resolves as
// absent, not as an error.
func (m *Manager) Resolve(ctx context.Context, token string) (Identity, bool, error) {
	if token == "" {
		return Identity{}, false, nil
	}

	session, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, errors.Join(ErrStoreFailure, err)
	}

	if session.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return Identity{}, false, nil
	}

	identity, ok, err := m.users.FindIdentity(ctx, session.UserID.String())
	if err != nil {
		return Identity{}, false, errors.Join(ErrStoreFailure, err)
	}
	if !ok {
		return Identity{}, false, nil
	}

	return identity, true, nil
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// DestroyAllForUser removes every session owned by the user.
func (m *Manager) DestroyAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := m.store.DeleteByUserID(ctx, userID.String()); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// SweepExpired bulk-deletes all expired sessions.
func (m *Manager) SweepExpired(ctx context.Context) error {
	if err := m.store.DeleteExpired(ctx, m.now()); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// RunSweeper deletes expired sessions on the configured interval until the
// context is cancelled. Intended to run in its own goroutine at startup.
func (m *Manager) RunSweeper(ctx context.Context) {
	interval := m.cfg.SweepInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.SweepExpired(ctx); err != nil {
				m.log.ErrorContext(ctx, "session sweep failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// generateToken creates a 256-bit random session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
