package mfa

import "errors"

var (
	// ErrChallengeNotFound indicates the token is unknown or already expired.
	ErrChallengeNotFound = errors.New("mfa.challenge_not_found")

	// ErrTokenGeneration indicates challenge token generation failed.
	ErrTokenGeneration = errors.New("mfa.token_generation_failed")

	// ErrStoreUnavailable indicates the backing store rejected the operation.
	ErrStoreUnavailable = errors.New("mfa.store_unavailable")
)
