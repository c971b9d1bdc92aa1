package totp

// Config carries the MFA settings loaded from the environment.
type Config struct {
	// Issuer is the service name embedded in enrollment URIs.
	Issuer string `env:"TOTP_ISSUER" envDefault:"SalesCoach"`

	// EncryptionKey is the base64-encoded AES-256 key used to seal
	// secrets at rest. Required when secret encryption is enabled.
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"`

	// Window is the accepted clock drift in 30-second steps.
	Window int `env:"TOTP_WINDOW" envDefault:"1"`

	// RecoveryCodes is the number of backup codes issued at enrollment.
	RecoveryCodes int `env:"TOTP_RECOVERY_CODES" envDefault:"10"`
}
