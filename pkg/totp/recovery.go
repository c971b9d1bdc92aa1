package totp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// DefaultRecoveryCodeCount is the number of codes issued at MFA enrollment.
const DefaultRecoveryCodeCount = 10

// GenerateRecoveryCodes creates single-use backup codes, formatted as
// uppercase hex grouped XXXX-XXXX. The plaintext codes are returned exactly
// once; callers must store only their hashes.
func GenerateRecoveryCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidRecoveryCodeCount
	}

	codes := make([]string, count)
	for i := range count {
		raw := make([]byte, 4)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		hexed := fmt.Sprintf("%X", raw)
		codes[i] = hexed[:4] + "-" + hexed[4:]
	}
	return codes, nil
}

// HashRecoveryCode returns the SHA-256 hex digest of a normalized code.
// Separators are stripped and the code upper-cased first, so a code typed
// with or without its dash hashes identically.
func HashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(normalizeRecoveryCode(code)))
	return hex.EncodeToString(sum[:])
}

// VerifyRecoveryCode checks a candidate against a set of stored digests.
// It reports whether the candidate matched and the index of the matched
// digest. Removing the consumed digest is the caller's responsibility;
// this function never mutates the set.
func VerifyRecoveryCode(candidate string, digests []string) (bool, int) {
	computed := HashRecoveryCode(candidate)
	for i, digest := range digests {
		if computed == digest {
			return true, i
		}
	}
	return false, -1
}

func normalizeRecoveryCode(code string) string {
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return strings.ToUpper(code)
}
