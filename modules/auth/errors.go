package auth

import "errors"

var (
	// ErrInvalidCredentials covers unknown email, wrong password, and
	// deactivated accounts alike, so responses do not leak which it was.
	ErrInvalidCredentials = errors.New("auth.invalid_credentials")

	// ErrInvalidMFACode indicates the second factor did not verify.
	ErrInvalidMFACode = errors.New("auth.invalid_mfa_code")

	// ErrChallengeExpired indicates the MFA challenge token is unknown or
	// past its TTL; the user must re-authenticate.
	ErrChallengeExpired = errors.New("auth.challenge_expired")

	// ErrMFANotEnrolled indicates an MFA operation on a user without a
	// stored secret.
	ErrMFANotEnrolled = errors.New("auth.mfa_not_enrolled")

	// ErrUserNotFound is returned by user stores for unknown ids/emails.
	ErrUserNotFound = errors.New("auth.user_not_found")

	// ErrEmailTaken indicates a registration conflict on the email column.
	ErrEmailTaken = errors.New("auth.email_taken")

	// ErrStoreFailure wraps persistence errors from the user store.
	ErrStoreFailure = errors.New("auth.store_failure")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
