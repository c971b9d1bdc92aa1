package base32x

import (
	"encoding/base32"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// decodeTable maps ASCII bytes to their 5-bit symbol value, or -1 for
// characters outside the alphabet. Lowercase letters map to their
// uppercase symbol.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
	for c := byte('a'); c <= 'z'; c++ {
		decodeTable[c] = decodeTable[c-'a'+'A']
	}
}

// Encode returns the RFC 4648 base32 encoding of b, padded with '='.
func Encode(b []byte) string {
	return base32.StdEncoding.EncodeToString(b)
}

// Decode converts a base32 string back to bytes. Unrecognized characters
// are skipped rather than rejected, and trailing bits that do not fill a
// whole byte are discarded, so Decode never fails. For any b,
// Decode(Encode(b)) returns b.
func Decode(s string) []byte {
	out := make([]byte, 0, len(s)*5/8)

	var acc uint16
	var bits uint
	for i := 0; i < len(s); i++ {
		v := decodeTable[s[i]]
		if v < 0 {
			continue
		}
		acc = acc<<5 | uint16(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}

	return out
}

// Normalize strips whitespace and separators commonly introduced when a
// secret is copied by hand and upper-cases the rest. The result is not
// guaranteed to be valid base32; it is a convenience for display round-trips.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if v := decodeTable[s[i]]; v >= 0 {
			sb.WriteByte(alphabet[v])
		}
	}
	return sb.String()
}
