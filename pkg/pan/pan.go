// Package pan normalizes and checks the shape of Permanent Account Numbers.
//
// A PAN is ten characters: five letters, four digits, one letter
// (for example ABCDE1234F). Shape checks are local only; whether the number
// is issued is answered by an external provider.
package pan

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var format = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// Normalize trims whitespace and upper-cases the number.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// WellFormed reports whether the normalized number matches the PAN layout.
func WellFormed(s string) bool {
	return format.MatchString(Normalize(s))
}

// Hash returns a hex SHA-256 of the normalized number for logs and audit
// records that must not carry the raw identifier.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(Normalize(s)))
	return hex.EncodeToString(sum[:])
}

// Mask keeps the first two and last character visible.
func Mask(s string) string {
	n := Normalize(s)
	if len(n) < 4 {
		return strings.Repeat("*", len(n))
	}
	return n[:2] + strings.Repeat("*", len(n)-3) + n[len(n)-1:]
}
