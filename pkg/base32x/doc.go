// Package base32x implements the base32 codec used for TOTP secret storage
// and display.
//
// Encoding follows RFC 4648 with padding. Decoding is deliberately
// permissive: any character outside the 32-symbol alphabet (spaces, dashes,
// padding, garbage) is silently dropped and the remaining symbols are
// decoded best-effort. This tolerates secrets re-entered by hand with
// incidental formatting, so callers must not rely on Decode failing for
// malformed input.
package base32x
