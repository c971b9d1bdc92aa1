package totp

import "errors"

var (
	ErrFailedToGenerateSecret       = errors.New("totp: failed to generate secret")
	ErrEmptySecret                  = errors.New("totp: empty secret")
	ErrMissingAccountName           = errors.New("totp: missing account name")
	ErrMissingIssuer                = errors.New("totp: missing issuer")
	ErrInvalidRecoveryCodeCount     = errors.New("totp: recovery code count must be greater than 0")
	ErrFailedToGenerateRecoveryCode = errors.New("totp: failed to generate recovery code")
	ErrFailedToEncryptSecret        = errors.New("totp: failed to encrypt secret")
	ErrFailedToDecryptSecret        = errors.New("totp: failed to decrypt secret")
	ErrInvalidEncryptionKeyLength   = errors.New("totp: invalid encryption key length")
	ErrEncryptionKeyNotSet          = errors.New("totp: encryption key not set")
	ErrCipherTooShort               = errors.New("totp: cipher text too short")
)
