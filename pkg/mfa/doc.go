// Package mfa holds the short-lived "password verified, awaiting second
// factor" state between the two steps of a multi-factor login.
//
// A challenge is keyed by an opaque random token handed to the client after
// the password check. It expires after a fixed TTL (five minutes by
// default) whether or not the second factor ever arrives.
//
// The Store interface has two implementations: MemoryStore for
// single-process deployments and RedisStore for multi-instance ones.
// Callers depend only on the interface, so the backing store can be
// swapped without touching call sites. Challenges are deliberately not
// durable; after a restart the user simply authenticates again.
package mfa
