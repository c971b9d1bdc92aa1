// Command totpkeygen prints a fresh base64-encoded AES-256 key for the
// TOTP_ENCRYPTION_KEY environment variable.
package main

import (
	"fmt"
	"log"

	"github.com/salescoach/authkit/pkg/totp"
)

func main() {
	key, err := totp.GenerateEncryptionKey()
	if err != nil {
		log.Fatalf("failed to generate encryption key: %v", err)
	}

	fmt.Printf("TOTP_ENCRYPTION_KEY=%s\n", key)
}
