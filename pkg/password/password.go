package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for new hashes.
const Cost = 12

// format identifies the stored credential encoding.
type format int

const (
	formatUnknown format = iota
	formatBcrypt
	formatLegacySHA256
)

// Hash returns the bcrypt hash of a plaintext password at the package cost.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(hash), nil
}

// Verify checks a plaintext password against a stored hash, dispatching on
// the hash format. needsRehash is true when the hash verified but is in the
// legacy format; the caller should Hash the plaintext again and persist the
// result.
func Verify(plain, stored string) (ok, needsRehash bool, err error) {
	switch detectFormat(stored) {
	case formatBcrypt:
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return false, false, nil
			}
			return false, false, errors.Join(ErrMismatch, err)
		}
		return true, false, nil

	case formatLegacySHA256:
		sum := sha256.Sum256([]byte(plain))
		computed := hex.EncodeToString(sum[:])
		if subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(stored))) != 1 {
			return false, false, nil
		}
		return true, true, nil

	default:
		return false, false, ErrUnknownFormat
	}
}

func detectFormat(stored string) format {
	if strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$") {
		return formatBcrypt
	}
	if len(stored) == sha256.Size*2 && isHex(stored) {
		return formatLegacySHA256
	}
	return formatUnknown
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
