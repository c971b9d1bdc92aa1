package mfa

import "time"

// Config holds challenge store settings.
type Config struct {
	// TTL bounds how long a pending challenge may wait for its second factor.
	TTL time.Duration `env:"MFA_CHALLENGE_TTL" envDefault:"5m"`
}
