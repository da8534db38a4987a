// Package models defines the server-side domain types.
package models

import "time"

// Account is an authenticated owner of managed records.
//
// PasswordHash is the opaque bcrypt output; it never leaves the server and
// must not appear in logs or API payloads. Username and Email are unique
// across all accounts (case-sensitive).
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
