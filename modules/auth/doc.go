// Package auth implements the login ceremony: password verification,
// the optional second factor, session issuance, and MFA enrollment.
//
// The HTTP surface mounts on chi:
//
//	r.Mount("/auth", authSvc.Handler())
//
// POST /login either issues a session directly or, for MFA-enabled users,
// returns a short-lived challenge token the client must complete via
// POST /login/mfa with a TOTP code or a recovery code. Enrollment hands
// the secret, the otpauth URI, and the recovery codes to the client
// exactly once; GET /mfa/qr renders the URI as a PNG.
package auth
