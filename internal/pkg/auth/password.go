package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of a password.
// The digest is deterministic on purpose: stored hashes predate this service
// and verification is a straight digest comparison, so a salted scheme would
// lock every existing principal out.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword verifies a password against a stored digest using a
// constant-time comparison.
func CheckPassword(hashedPassword, password string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(hashedPassword), []byte(digest)) == 1
}
