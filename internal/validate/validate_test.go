package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	tests := []struct {
		name  string
		rname string
		email string
		age   int
		owner int64
		want  bool
	}{
		{"valid", "Kim Young", "kim@example.com", 25, 1, true},
		{"empty name", "", "kim@example.com", 25, 1, false},
		{"empty email", "Kim Young", "", 25, 1, false},
		{"email without at", "Kim Young", "kim.example.com", 25, 1, false},
		{"zero age", "Kim Young", "kim@example.com", 0, 1, false},
		{"negative age", "Kim Young", "kim@example.com", -1, 1, false},
		{"age 150", "Kim Young", "kim@example.com", 150, 1, false},
		{"age 149", "Kim Young", "kim@example.com", 149, 1, true},
		{"age 1", "Kim Young", "kim@example.com", 1, 1, true},
		{"missing owner", "Kim Young", "kim@example.com", 25, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Record(tc.rname, tc.email, tc.age, tc.owner))
		})
	}
}

func TestAccount(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		want     bool
	}{
		{"valid", "admin", "a@b.com", "$2a$10$abc", true},
		{"username too short", "ab", "a@b.com", "$2a$10$abc", false},
		{"username exactly 3", "abc", "a@b.com", "$2a$10$abc", true},
		{"empty email", "admin", "", "$2a$10$abc", false},
		{"email without at", "admin", "a.b.com", "$2a$10$abc", false},
		{"empty hash", "admin", "a@b.com", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Account(tc.username, tc.email, tc.hash))
		})
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want bool
	}{
		{"strong", "Abcdef1!", true},
		{"too short", "Ab1!xyz", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StrongPassword(tc.pw))
		})
	}
}
