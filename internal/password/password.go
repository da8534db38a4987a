// Package password wraps one-way password hashing and verification.
//
// Hashes are bcrypt strings: each call salts independently, so two hashes
// of the same plaintext differ, and the cost parameter is embedded in the
// hash itself. Plaintext passwords must never be stored or logged.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = bcrypt.DefaultCost

// Hash derives a salted bcrypt hash from the plaintext.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// re-derives the hash under the salt and cost embedded in it and compares
// in constant time. Malformed hashes verify as false, never panic.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
