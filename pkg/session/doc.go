// Package session manages authenticated sessions: opaque high-entropy
// tokens bound to a single user with an absolute expiry.
//
// A session is valid only while its token exists in the store, is
// unexpired, and its owning user is still active; anything else resolves
// as absent rather than an error. Token lifetime is 24 hours by default
// and 30 days for "remember me" logins. Expired rows are removed by a
// periodic sweep, never per request.
//
// Stores are pluggable: MemoryStore for tests and single-process use,
// PGStore for production.
package session
