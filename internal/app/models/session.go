package models

import "time"

// Session is a server-side login session. Sessions live seven days and are
// purged lazily when validation encounters an expired row.
type Session struct {
	Token      string    `json:"token" db:"token"`
	Role       Role      `json:"role" db:"role"`
	Identifier string    `json:"identifier" db:"identifier"` // Student code or staff email
	Name       string    `json:"name" db:"name"`
	ExpiresAt  time.Time `json:"expiresAt" db:"expires_at"`
	Revoked    bool      `json:"-" db:"revoked"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Valid reports whether the session can still be used at ref.
func (s *Session) Valid(ref time.Time) bool {
	return !s.Revoked && s.ExpiresAt.After(ref)
}
