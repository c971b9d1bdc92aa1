package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/salescoach/authkit/pkg/mfa"
	"github.com/salescoach/authkit/pkg/password"
	"github.com/salescoach/authkit/pkg/session"
	"github.com/salescoach/authkit/pkg/totp"
)

// Service runs the login ceremony and MFA lifecycle over injected
// collaborators.
type Service struct {
	users      UserStore
	sessions   *session.Manager
	challenges mfa.Store
	cfg        totp.Config
	encKey     []byte
	log        *slog.Logger
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger overrides the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates the auth service. When cfg carries an encryption key
// TOTP secrets are sealed at rest; otherwise they are stored as issued.
func NewService(users UserStore, sessions *session.Manager, challenges mfa.Store, cfg totp.Config, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		panic("auth: user store is required")
	}
	if sessions == nil {
		panic("auth: session manager is required")
	}
	if challenges == nil {
		panic("auth: challenge store is required")
	}

	s := &Service{
		users:      users,
		sessions:   sessions,
		challenges: challenges,
		cfg:        cfg,
		log:        slog.Default(),
		now:        time.Now,
	}

	if cfg.EncryptionKey != "" {
		key, err := totp.DecodeEncryptionKey(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		s.encKey = key
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// LoginResult is the outcome of a successful password check: either a
// ready session token or a pending MFA challenge.
type LoginResult struct {
	SessionToken   string
	MFARequired    bool
	ChallengeToken string
}

// Login verifies the password and either issues a session or opens an MFA
// challenge. Unknown email, wrong password, and inactive account all
// return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plain string, remember bool) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, errors.Join(ErrStoreFailure, err)
	}
	if !user.Active {
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, needsRehash, err := password.Verify(plain, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	if needsRehash {
		s.upgradeHash(ctx, user, plain)
	}

	if user.MFAEnabled {
		challenge, err := s.challenges.Create(ctx, user.ID)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{MFARequired: true, ChallengeToken: challenge}, nil
	}

	token, err := s.sessions.Create(ctx, user.ID, remember)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{SessionToken: token}, nil
}

// upgradeHash rewrites a verified legacy hash as bcrypt. Failures are
// logged and ignored; the login already succeeded.
func (s *Service) upgradeHash(ctx context.Context, user *User, plain string) {
	hash, err := password.Hash(plain)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.log.WarnContext(ctx, "legacy hash upgrade failed",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
	}
}

// VerifyMFA completes a pending challenge with a TOTP code or a recovery
// code and issues the session. The challenge is consumed either way a
// session is issued; a spent recovery digest is removed from the stored
// set.
func (s *Service) VerifyMFA(ctx context.Context, challengeToken, code, recoveryCode string, remember bool) (string, error) {
	challenge, ok, err := s.challenges.Get(ctx, challengeToken)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrChallengeExpired
	}

	user, err := s.users.FindByID(ctx, challenge.UserID)
	if err != nil {
		if isNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", errors.Join(ErrStoreFailure, err)
	}
	if !user.Active {
		_ = s.challenges.Clear(ctx, challengeToken)
		return "", ErrInvalidCredentials
	}

	switch {
	case code != "":
		secret, err := s.openSecret(user)
		if err != nil {
			return "", err
		}
		ok, err := totp.VerifyCodeAt(secret, code, s.cfg.Window, s.now())
		if err != nil || !ok {
			return "", ErrInvalidMFACode
		}

	case recoveryCode != "":
		ok, index := totp.VerifyRecoveryCode(recoveryCode, user.RecoveryCodes)
		if !ok {
			return "", ErrInvalidMFACode
		}
		remaining := make([]string, 0, len(user.RecoveryCodes)-1)
		remaining = append(remaining, user.RecoveryCodes[:index]...)
		remaining = append(remaining, user.RecoveryCodes[index+1:]...)
		if err := s.users.SaveRecoveryCodes(ctx, user.ID, remaining); err != nil {
			return "", errors.Join(ErrStoreFailure, err)
		}

	default:
		return "", ErrInvalidMFACode
	}

	if _, err := s.challenges.MarkVerified(ctx, challengeToken); err != nil {
		return "", err
	}
	if err := s.challenges.Clear(ctx, challengeToken); err != nil {
		return "", err
	}

	return s.sessions.Create(ctx, user.ID, remember)
}

// Enrollment is the one-time MFA setup payload shown to the user.
type Enrollment struct {
	Secret        string   `json:"secret"`
	EnrollmentURI string   `json:"enrollment_uri"`
	RecoveryCodes []string `json:"recovery_codes"`
}

// EnrollMFA issues a fresh secret and recovery codes for the user and
// stores them without enabling MFA; ActivateMFA flips the flag once the
// user proves their authenticator works.
func (s *Service) EnrollMFA(ctx context.Context, userID string) (Enrollment, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return Enrollment{}, err
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return Enrollment{}, err
	}

	uri, err := totp.EnrollmentURI(totp.EnrollmentParams{
		Secret:      secret,
		AccountName: user.Email,
		Issuer:      s.cfg.Issuer,
	})
	if err != nil {
		return Enrollment{}, err
	}

	count := s.cfg.RecoveryCodes
	if count <= 0 {
		count = totp.DefaultRecoveryCodeCount
	}
	codes, err := totp.GenerateRecoveryCodes(count)
	if err != nil {
		return Enrollment{}, err
	}

	digests := make([]string, len(codes))
	for i, c := range codes {
		digests[i] = totp.HashRecoveryCode(c)
	}

	stored, err := s.sealSecret(secret)
	if err != nil {
		return Enrollment{}, err
	}
	if err := s.users.SaveMFASecret(ctx, user.ID, stored, digests); err != nil {
		return Enrollment{}, errors.Join(ErrStoreFailure, err)
	}

	return Enrollment{
		Secret:        secret,
		EnrollmentURI: uri,
		RecoveryCodes: codes,
	}, nil
}

// EnrollmentURIFor rebuilds the otpauth URI for the user's stored secret,
// for rendering the QR code during setup.
func (s *Service) EnrollmentURIFor(ctx context.Context, userID string) (string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.MFASecret == "" {
		return "", ErrMFANotEnrolled
	}

	secret, err := s.openSecret(user)
	if err != nil {
		return "", err
	}

	return totp.EnrollmentURI(totp.EnrollmentParams{
		Secret:      secret,
		AccountName: user.Email,
		Issuer:      s.cfg.Issuer,
	})
}

// ActivateMFA verifies the first code from the user's authenticator and
// enables MFA on the account.
func (s *Service) ActivateMFA(ctx context.Context, userID, code string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFASecret == "" {
		return ErrMFANotEnrolled
	}

	secret, err := s.openSecret(user)
	if err != nil {
		return err
	}

	ok, err := totp.VerifyCodeAt(secret, code, s.cfg.Window, s.now())
	if err != nil || !ok {
		return ErrInvalidMFACode
	}

	if err := s.users.SetMFAEnabled(ctx, user.ID, true); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Logout destroys the session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *Service) findUser(ctx context.Context, userID string) (*User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return user, nil
}

func (s *Service) sealSecret(secret string) (string, error) {
	if len(s.encKey) == 0 {
		return secret, nil
	}
	return totp.EncryptSecret(secret, s.encKey)
}

func (s *Service) openSecret(user *User) (string, error) {
	if user.MFASecret == "" {
		return "", ErrMFANotEnrolled
	}
	if len(s.encKey) == 0 {
		return user.MFASecret, nil
	}
	return totp.DecryptSecret(user.MFASecret, s.encKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
