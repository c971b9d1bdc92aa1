package password

import "errors"

var (
	// ErrMismatch indicates the password does not match the stored hash.
	ErrMismatch = errors.New("password.mismatch")

	// ErrUnknownFormat indicates the stored hash is neither bcrypt nor
	// legacy SHA-256 hex.
	ErrUnknownFormat = errors.New("password.unknown_hash_format")

	// ErrHashingFailed indicates bcrypt hashing failed.
	ErrHashingFailed = errors.New("password.hashing_failed")
)
