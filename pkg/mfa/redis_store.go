package mfa

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mfa:challenge:"

// RedisStore implements Store on Redis, letting multiple instances share
// pending challenges. Expiry is enforced by Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed challenge store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(Challenge{
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", errors.Join(ErrStoreUnavailable, err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", errors.Join(ErrStoreUnavailable, err)
	}

	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (Challenge, bool, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Challenge{}, false, nil
	}
	if err != nil {
		return Challenge{}, false, errors.Join(ErrStoreUnavailable, err)
	}

	var challenge Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return Challenge{}, false, errors.Join(ErrStoreUnavailable, err)
	}

	return challenge, true, nil
}

func (s *RedisStore) MarkVerified(ctx context.Context, token string) (bool, error) {
	challenge, exists, err := s.Get(ctx, token)
	if err != nil || !exists {
		return false, err
	}

	challenge.Verified = true
	payload, err := json.Marshal(challenge)
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}

	// Preserve the original expiry: KEEPTTL keeps the remaining TTL set
	// at creation rather than restarting the window.
	if err := s.client.Set(ctx, redisKeyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}

	return true, nil
}

func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
