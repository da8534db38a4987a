// Package validate holds the pure well-formedness predicates for managed
// records, accounts, and password strength. No I/O, no state.
package validate

import "strings"

// MinUsernameLen is the shortest username accepted at registration.
const MinUsernameLen = 3

// MinPasswordLen is the advisory minimum for StrongPassword.
const MinPasswordLen = 8

// Record reports whether a managed record's fields are well-formed:
// non-empty name, email containing "@", age strictly between 0 and 150,
// and a present owner.
func Record(name, email string, age int, ownerID int64) bool {
	if name == "" {
		return false
	}
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	if age <= 0 || age >= 150 {
		return false
	}
	return ownerID > 0
}

// Account reports whether an account's fields are well-formed: username of
// at least MinUsernameLen characters, email containing "@", and a non-empty
// password hash.
func Account(username, email, passwordHash string) bool {
	if len(username) < MinUsernameLen {
		return false
	}
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	return passwordHash != ""
}

// StrongPassword reports whether the plaintext meets the advisory strength
// policy: at least MinPasswordLen characters with at least one uppercase
// letter, one lowercase letter, one digit, and one symbol. Registration
// does not gate on it; callers may surface it as a warning.
func StrongPassword(plaintext string) bool {
	if len(plaintext) < MinPasswordLen {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range plaintext {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
