// Package hash produces the digests stored in place of customer secrets.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 of input.
//
// The digest is unsalted so that the same answer always produces the same
// value; stored rows are compared against it directly.
func Digest(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
