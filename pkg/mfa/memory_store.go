package mfa

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with a mutex-guarded in-process map.
// Suitable for single-instance deployments only.
type MemoryStore struct {
	mu         sync.RWMutex
	challenges map[string]Challenge
	ttl        time.Duration
	ticker     *time.Ticker
	done       chan struct{}
}

// NewMemoryStore creates an in-memory challenge store. A background janitor
// removes expired entries every ttl/2 so abandoned challenges do not pile up.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &MemoryStore{
		challenges: make(map[string]Challenge),
		ttl:        ttl,
		done:       make(chan struct{}),
	}

	s.ticker = time.NewTicker(ttl / 2)
	go s.janitor()

	return s
}

func (s *MemoryStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.challenges[token] = Challenge{
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (Challenge, bool, error) {
	s.mu.RLock()
	challenge, exists := s.challenges[token]
	s.mu.RUnlock()

	if !exists {
		return Challenge{}, false, nil
	}

	if s.expired(challenge) {
		s.mu.Lock()
		delete(s.challenges, token)
		s.mu.Unlock()
		return Challenge{}, false, nil
	}

	return challenge, true, nil
}

func (s *MemoryStore) MarkVerified(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, exists := s.challenges[token]
	if !exists || s.expired(challenge) {
		delete(s.challenges, token)
		return false, nil
	}

	challenge.Verified = true
	s.challenges[token] = challenge
	return true, nil
}

func (s *MemoryStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.challenges, token)
	s.mu.Unlock()
	return nil
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() error {
	select {
	case <-s.done:
	default:
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *MemoryStore) expired(c Challenge) bool {
	return time.Since(c.CreatedAt) > s.ttl
}

func (s *MemoryStore) janitor() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			for token, challenge := range s.challenges {
				if s.expired(challenge) {
					delete(s.challenges, token)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}
