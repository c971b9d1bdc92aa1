package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/authkit/modules/auth"
	"github.com/salescoach/authkit/pkg/mfa"
	"github.com/salescoach/authkit/pkg/password"
	"github.com/salescoach/authkit/pkg/session"
	"github.com/salescoach/authkit/pkg/totp"
)

type fixture struct {
	svc        *auth.Service
	users      *auth.MemoryUserStore
	challenges *mfa.MemoryStore
	sessions   *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := auth.NewMemoryUserStore()
	challenges := mfa.NewMemoryStore(mfa.DefaultTTL)
	t.Cleanup(func() { _ = challenges.Close() })

	sessions := session.NewManager(
		session.NewMemoryStore(),
		auth.NewSessionSource(users),
		session.DefaultConfig(),
	)

	svc, err := auth.NewService(users, sessions, challenges, totp.Config{
		Issuer: "SalesCoach",
		Window: 1,
	})
	require.NoError(t, err)

	return &fixture{svc: svc, users: users, challenges: challenges, sessions: sessions}
}

func (f *fixture) addUser(t *testing.T, email, plain string, mutate func(*auth.User)) *auth.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	user := &auth.User{
		Email:        email,
		Name:         "Test Coach",
		PasswordHash: hash,
		Role:         "user",
		Active:       true,
	}
	if mutate != nil {
		mutate(user)
	}

	stored, err := f.users.Add(user)
	require.NoError(t, err)
	return stored
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	user := f.addUser(t, "coach@example.com", "correct horse", nil)
	ctx := context.Background()

	result, err := f.svc.Login(ctx, "coach@example.com", "correct horse", false)
	require.NoError(t, err)
	assert.False(t, result.MFARequired)
	assert.NotEmpty(t, result.SessionToken)

	identity, ok, err := f.sessions.Resolve(ctx, result.SessionToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, identity.ID)

	// Login stamps last-login as part of the same operation.
	fresh, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLoginAt)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addUser(t, "coach@example.com", "correct horse", nil)

	result, err := f.svc.Login(context.Background(), "  Coach@Example.COM ", "correct horse", false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionToken)
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addUser(t, "coach@example.com", "correct horse", nil)
	f.addUser(t, "gone@example.com", "whatever", func(u *auth.User) { u.Active = false })
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "correct horse"},
		{"wrong password", "coach@example.com", "wrong"},
		{"deactivated user", "gone@example.com", "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := f.svc.Login(ctx, tt.email, tt.password, false)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	sum := sha256.Sum256([]byte("legacy pass"))
	legacyHash := hex.EncodeToString(sum[:])

	user := f.addUser(t, "legacy@example.com", "placeholder", func(u *auth.User) {
		u.PasswordHash = legacyHash
	})

	result, err := f.svc.Login(ctx, "legacy@example.com", "legacy pass", false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionToken)

	fresh, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, legacyHash, fresh.PasswordHash, "hash must be upgraded to bcrypt")

	// The same password verifies against the upgraded hash without rehash.
	ok, needsRehash, err := password.Verify("legacy pass", fresh.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, needsRehash)
}

func TestLoginWithMFAOpensChallenge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	f.addUser(t, "mfa@example.com", "correct horse", func(u *auth.User) {
		u.MFAEnabled = true
		u.MFASecret = secret
	})

	result, err := f.svc.Login(ctx, "mfa@example.com", "correct horse", false)
	require.NoError(t, err)
	assert.True(t, result.MFARequired)
	assert.NotEmpty(t, result.ChallengeToken)
	assert.Empty(t, result.SessionToken, "no session before the second factor")
}

func TestVerifyMFAWithTOTP(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	user := f.addUser(t, "mfa@example.com", "correct horse", func(u *auth.User) {
		u.MFAEnabled = true
		u.MFASecret = secret
	})

	result, err := f.svc.Login(ctx, "mfa@example.com", "correct horse", false)
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	token, err := f.svc.VerifyMFA(ctx, result.ChallengeToken, code, "", false)
	require.NoError(t, err)

	identity, ok, err := f.sessions.Resolve(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, identity.ID)

	// The challenge is consumed; replaying it fails.
	_, err = f.svc.VerifyMFA(ctx, result.ChallengeToken, code, "", false)
	assert.ErrorIs(t, err, auth.ErrChallengeExpired)
}

func TestVerifyMFAWithRecoveryCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	codes, err := totp.GenerateRecoveryCodes(3)
	require.NoError(t, err)
	digests := make([]string, len(codes))
	for i, c := range codes {
		digests[i] = totp.HashRecoveryCode(c)
	}

	user := f.addUser(t, "mfa@example.com", "correct horse", func(u *auth.User) {
		u.MFAEnabled = true
		u.MFASecret = secret
		u.RecoveryCodes = digests
	})

	result, err := f.svc.Login(ctx, "mfa@example.com", "correct horse", false)
	require.NoError(t, err)

	token, err := f.svc.VerifyMFA(ctx, result.ChallengeToken, "", codes[1], false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The spent digest is gone; the other two survive.
	fresh, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.RecoveryCodes, 2)
	assert.NotContains(t, fresh.RecoveryCodes, digests[1])

	// The same code cannot be used twice.
	second, err := f.svc.Login(ctx, "mfa@example.com", "correct horse", false)
	require.NoError(t, err)
	_, err = f.svc.VerifyMFA(ctx, second.ChallengeToken, "", codes[1], false)
	assert.ErrorIs(t, err, auth.ErrInvalidMFACode)
}

func TestVerifyMFARejectsWrongCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	f.addUser(t, "mfa@example.com", "correct horse", func(u *auth.User) {
		u.MFAEnabled = true
		u.MFASecret = secret
	})

	result, err := f.svc.Login(ctx, "mfa@example.com", "correct horse", false)
	require.NoError(t, err)

	_, err = f.svc.VerifyMFA(ctx, result.ChallengeToken, "000000", "", false)
	assert.ErrorIs(t, err, auth.ErrInvalidMFACode)

	// A failed attempt does not consume the challenge.
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	_, err = f.svc.VerifyMFA(ctx, result.ChallengeToken, code, "", false)
	assert.NoError(t, err)
}

func TestVerifyMFAUnknownChallenge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.VerifyMFA(context.Background(), "no-such-token", "123456", "", false)
	assert.ErrorIs(t, err, auth.ErrChallengeExpired)
}

func TestEnrollAndActivateMFA(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user := f.addUser(t, "coach@example.com", "correct horse", nil)

	enrollment, err := f.svc.EnrollMFA(ctx, user.ID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.EnrollmentURI, "otpauth://totp/")
	assert.Contains(t, enrollment.EnrollmentURI, "SalesCoach")
	assert.Len(t, enrollment.RecoveryCodes, totp.DefaultRecoveryCodeCount)

	// Enrollment alone does not enable MFA.
	fresh, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, fresh.MFAEnabled)
	assert.Len(t, fresh.RecoveryCodes, totp.DefaultRecoveryCodeCount)

	// Stored digests never equal the plaintext codes.
	for _, code := range enrollment.RecoveryCodes {
		assert.NotContains(t, fresh.RecoveryCodes, code)
	}

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.svc.ActivateMFA(ctx, user.ID.String(), code))

	fresh, err = f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.MFAEnabled)
}

func TestActivateMFARejectsWrongCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user := f.addUser(t, "coach@example.com", "correct horse", nil)

	_, err := f.svc.EnrollMFA(ctx, user.ID.String())
	require.NoError(t, err)

	err = f.svc.ActivateMFA(ctx, user.ID.String(), "000000")
	assert.ErrorIs(t, err, auth.ErrInvalidMFACode)

	fresh, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, fresh.MFAEnabled)
}

func TestActivateMFAWithoutEnrollment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	user := f.addUser(t, "coach@example.com", "correct horse", nil)

	err := f.svc.ActivateMFA(context.Background(), user.ID.String(), "123456")
	assert.ErrorIs(t, err, auth.ErrMFANotEnrolled)
}

func TestEncryptedSecretRoundTrip(t *testing.T) {
	t.Parallel()

	users := auth.NewMemoryUserStore()
	challenges := mfa.NewMemoryStore(mfa.DefaultTTL)
	t.Cleanup(func() { _ = challenges.Close() })

	sessions := session.NewManager(
		session.NewMemoryStore(),
		auth.NewSessionSource(users),
		session.DefaultConfig(),
	)

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	svc, err := auth.NewService(users, sessions, challenges, totp.Config{
		Issuer:        "SalesCoach",
		Window:        1,
		EncryptionKey: key,
	})
	require.NoError(t, err)

	ctx := context.Background()
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)
	user, err := users.Add(&auth.User{
		Email: "sealed@example.com", PasswordHash: hash, Role: "user", Active: true,
	})
	require.NoError(t, err)

	enrollment, err := svc.EnrollMFA(ctx, user.ID.String())
	require.NoError(t, err)

	// At rest the secret is sealed, not the plaintext.
	fresh, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, enrollment.Secret, fresh.MFASecret)

	// Activation still verifies codes generated from the plaintext secret.
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.ActivateMFA(ctx, user.ID.String(), code))
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "coach@example.com", "correct horse", nil)

	result, err := f.svc.Login(ctx, "coach@example.com", "correct horse", false)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, result.SessionToken))

	_, ok, err := f.sessions.Resolve(ctx, result.SessionToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// Logging out twice is a no-op.
	assert.NoError(t, f.svc.Logout(ctx, result.SessionToken))
}
