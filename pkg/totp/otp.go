package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/salescoach/authkit/pkg/base32x"
)

const (
	// SecretLength is the raw key size in bytes (160 bits, RFC 4226 recommendation).
	SecretLength = 20

	DefaultDigits    = 6
	DefaultPeriod    = 30 // seconds per time step (RFC 6238 standard)
	DefaultWindow    = 1  // accepted drift in steps on each side of now
	DefaultAlgorithm = "SHA1"
)

// GenerateSecret returns a fresh base32-encoded TOTP secret.
func GenerateSecret() (string, error) {
	secret := make([]byte, SecretLength)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return base32x.Encode(secret), nil
}

// GenerateCode computes the 6-digit code for the 30-second window containing t.
// The secret is decoded permissively, so incidental formatting is tolerated.
func GenerateCode(secret string, t time.Time) (string, error) {
	key := base32x.Decode(secret)
	if len(key) == 0 {
		return "", ErrEmptySecret
	}

	counter := t.Unix() / DefaultPeriod
	return fmt.Sprintf("%06d", hotp(key, counter, DefaultDigits)), nil
}

// VerifyCode checks a candidate code against the windows
// [now-window*30s, now+window*30s]. Each expected code is compared in
// constant time; only the length check may short-circuit.
func VerifyCode(secret, candidate string, window int) (bool, error) {
	return VerifyCodeAt(secret, candidate, window, time.Now())
}

// VerifyCodeAt is VerifyCode with an explicit reference time.
func VerifyCodeAt(secret, candidate string, window int, at time.Time) (bool, error) {
	key := base32x.Decode(secret)
	if len(key) == 0 {
		return false, ErrEmptySecret
	}
	if window < 0 {
		window = DefaultWindow
	}

	counter := at.Unix() / DefaultPeriod

	// Check every window even after a match so total work does not depend
	// on which step matched.
	matched := 0
	for i := -window; i <= window; i++ {
		expected := fmt.Sprintf("%06d", hotp(key, counter+int64(i), DefaultDigits))
		matched |= subtle.ConstantTimeCompare([]byte(expected), []byte(candidate))
	}

	return matched == 1, nil
}

// EnrollmentParams describes a TOTP enrollment for authenticator apps.
type EnrollmentParams struct {
	Secret      string // base32-encoded secret (required)
	AccountName string // user identifier such as email (required)
	Issuer      string // service name shown in the authenticator (required)
}

// EnrollmentURI builds the otpauth:// URI for QR-code enrollment, following
// the Key Uri Format used by authenticator apps.
func EnrollmentURI(params EnrollmentParams) (string, error) {
	if params.Secret == "" {
		return "", ErrEmptySecret
	}
	if params.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if params.Issuer == "" {
		return "", ErrMissingIssuer
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", base32x.Normalize(params.Secret))
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", DefaultAlgorithm)
	query.Set("digits", fmt.Sprintf("%d", DefaultDigits))
	query.Set("period", fmt.Sprintf("%d", DefaultPeriod))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// hotp implements RFC 4226 dynamic truncation over HMAC-SHA1.
func hotp(key []byte, counter int64, digits int) int {
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	mod := 1
	for range digits {
		mod *= 10
	}
	return code % mod
}
