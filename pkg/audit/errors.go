package audit

import "errors"

var (
	// ErrStorageFailure wraps errors from the underlying storage.
	ErrStorageFailure = errors.New("audit.storage_failure")

	// ErrInvalidEntry is returned when an entry lacks its action verb.
	ErrInvalidEntry = errors.New("audit.invalid_entry")
)
