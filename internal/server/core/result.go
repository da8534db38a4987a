// Package core composes the account and record services behind the single
// operation contract external adapters call. Every operation returns a
// uniform Result envelope; adapters translate it to their own surface
// (HTTP status codes, terminal text) without adding business rules.
package core

// Result is the uniform success/error/payload envelope. Exactly one of
// Message and Error is set. Err carries the underlying sentinel error for
// adapters to classify with errors.Is; it is never serialized.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`

	Err error `json:"-"`
}

func ok(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func fail(err error) Result {
	return Result{Success: false, Error: err.Error(), Err: err}
}
