package guard

import "errors"

var (
	// ErrUnauthenticated signals a request without a resolved identity.
	ErrUnauthenticated = errors.New("guard.unauthenticated")

	// ErrForbidden signals an identity lacking the required permission.
	ErrForbidden = errors.New("guard.forbidden")
)
