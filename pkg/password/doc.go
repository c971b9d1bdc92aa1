// Package password hashes and verifies user passwords.
//
// New hashes use bcrypt with cost 12. Verification also understands the
// legacy unsalted SHA-256 hex format from the platform's first release:
// when a password verifies against a legacy hash, Verify reports
// needsRehash=true and the caller is expected to re-hash with Hash and
// persist the upgraded form. The migration is lazy; nothing rewrites
// hashes in bulk.
package password
