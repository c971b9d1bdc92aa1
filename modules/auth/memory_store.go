package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserStore keeps users in process memory, for tests and demos.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]*User)}
}

// Add inserts a user, assigning an ID when unset. Returns ErrEmailTaken
// on a duplicate email.
func (s *MemoryUserStore) Add(user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, existing := range s.users {
		if strings.ToLower(existing.Email) == email {
			return nil, ErrEmailTaken
		}
	}

	stored := *user
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range s.users {
		if strings.ToLower(user.Email) == email {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryUserStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return s.update(id, func(u *User) { u.PasswordHash = hash })
}

func (s *MemoryUserStore) SaveMFASecret(ctx context.Context, id uuid.UUID, secret string, recoveryDigests []string) error {
	digests := make([]string, len(recoveryDigests))
	copy(digests, recoveryDigests)
	return s.update(id, func(u *User) {
		u.MFASecret = secret
		u.RecoveryCodes = digests
	})
}

func (s *MemoryUserStore) SetMFAEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	return s.update(id, func(u *User) { u.MFAEnabled = enabled })
}

func (s *MemoryUserStore) SaveRecoveryCodes(ctx context.Context, id uuid.UUID, recoveryDigests []string) error {
	digests := make([]string, len(recoveryDigests))
	copy(digests, recoveryDigests)
	return s.update(id, func(u *User) { u.RecoveryCodes = digests })
}

func (s *MemoryUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.update(id, func(u *User) { u.LastLoginAt = &at })
}

func (s *MemoryUserStore) update(id uuid.UUID, mutate func(*User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	mutate(user)
	return nil
}
