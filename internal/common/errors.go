// Package common defines shared constants and sentinel errors used across
// client and server layers of RecordKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorInvalidInput = errors.New("invalid input")

	// Registration uniqueness errors. The username check runs before the
	// email check, so a request violating both reports the username first.
	ErrorDuplicateUsername = errors.New("username already taken")
	ErrorDuplicateEmail    = errors.New("email already taken")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized covers every credential failure. Unknown username
	// and wrong password are deliberately indistinguishable.
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
