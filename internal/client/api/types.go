// Package api is the HTTP client for the RecordKeeper server API. It
// decodes the server's result envelope, keeps the token pair, and retries
// once through the refresh endpoint when an access token expires.
package api

import (
	"encoding/json"
	"time"
)

// Result is the server's envelope with the payload left raw; each call
// decodes Data into its own type.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type Account struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordPatch mirrors the update request body; nil fields are omitted and
// left unchanged on the server.
type RecordPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Stats struct {
	Count      int     `json:"count"`
	AverageAge float64 `json:"average_age"`
}
