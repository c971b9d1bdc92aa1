package csrf

import "time"

// Config holds CSRF guard settings loaded from the environment.
type Config struct {
	CookieName   string        `env:"CSRF_COOKIE_NAME" envDefault:"_csrf"`
	CookieTTL    time.Duration `env:"CSRF_COOKIE_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"CSRF_COOKIE_SECURE" envDefault:"false"`
	HeaderName   string        `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
	FieldName    string        `env:"CSRF_FIELD_NAME" envDefault:"_csrf"`
}
