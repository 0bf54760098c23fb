package models

import "time"

// Staff defines the staff model based on the 'staff' table.
// Email is unique and restricted to institutional domains.
type Staff struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name" example:"Carlos Mejía"`
	Email           string           `json:"email" db:"email" example:"bienestar@upac.edu.co"`
	PasswordHash    string           `json:"-" db:"password_hash"`
	PasswordHistory []PasswordChange `json:"-" db:"password_history"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// AppendPasswordChange records a password change, keeping only the most
// recent PasswordHistoryLimit entries.
func (s *Staff) AppendPasswordChange(change PasswordChange) {
	s.PasswordHistory = append(s.PasswordHistory, change)
	if len(s.PasswordHistory) > PasswordHistoryLimit {
		s.PasswordHistory = s.PasswordHistory[len(s.PasswordHistory)-PasswordHistoryLimit:]
	}
}
