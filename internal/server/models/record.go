package models

import "time"

// Record is a managed user record owned by exactly one account.
// OwnerID is immutable after creation; ids are assigned by the store and
// never reused, even after deletion. Timestamps are set by the store.
type Record struct {
	ID        int64
	Name      string
	Email     string
	Age       int
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordPatch carries the optional fields of a record update. Nil fields
// are left untouched; the merged result is re-validated as a whole before
// any mutation is applied.
type RecordPatch struct {
	Name  *string
	Email *string
	Age   *int
}

// Stats aggregates an owner's records.
type Stats struct {
	Count      int     `json:"count"`
	AverageAge float64 `json:"average_age"`
}
