package session

import "time"

// Config holds session lifetime settings.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the lifetime of an ordinary session.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// RememberTTL is the lifetime when the user asked to stay signed in.
	RememberTTL time.Duration `env:"SESSION_REMEMBER_TTL" envDefault:"720h"`

	// SweepInterval is how often expired sessions are bulk-deleted.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"15m"`

	// SecureCookies enables the Secure flag on session cookies.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the standard 24h/30d session lifetimes.
func DefaultConfig() Config {
	return Config{
		CookieName:    "sid",
		TTL:           24 * time.Hour,
		RememberTTL:   30 * 24 * time.Hour,
		SweepInterval: 15 * time.Minute,
	}
}

// ttlFor picks the session lifetime for a login.
func (c Config) ttlFor(remember bool) time.Duration {
	if remember {
		return c.RememberTTL
	}
	return c.TTL
}
