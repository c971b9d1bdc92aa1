// Package totp implements RFC 6238 time-based one-time passwords and the
// one-time recovery codes backing multi-factor login.
//
// Secrets are generated as 20 random bytes and handled in the permissive
// base32 form provided by pkg/base32x, so verification survives secrets
// re-entered with spaces or dashes. Code verification tolerates clock
// drift of one period in each direction by default and compares candidate
// codes in constant time.
//
// Recovery codes are single-use: this package only generates, hashes and
// checks membership; consuming a matched digest is the caller's job.
package totp
