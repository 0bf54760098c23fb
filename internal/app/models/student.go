package models

import "time"

// PasswordChange is one entry of a principal's password history.
type PasswordChange struct {
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy"`
}

// PasswordHistoryLimit caps how many password changes are retained per
// principal. Oldest entries drop first.
const PasswordHistoryLimit = 10

// Student defines the student model based on the 'students' table.
// The code is the primary key and never changes after creation.
type Student struct {
	Code            string           `json:"code" db:"code" example:"12300298"`            // Unique student code, 6-12 digits
	NationalID      string           `json:"nationalId" db:"national_id" example:"1006543210"` // National id, 8-10 digits
	Name            string           `json:"name" db:"name" example:"Laura"`
	LastName        string           `json:"lastName" db:"last_name" example:"Quintero"`
	Program         string           `json:"program" db:"program" example:"Ingeniería de Sistemas"`
	Sede            string           `json:"sede" db:"sede" example:"Barrancabermeja"` // Campus
	BloodType       *string          `json:"bloodType,omitempty" db:"blood_type" example:"O+"`
	Photo           *string          `json:"photo,omitempty" db:"photo"` // Base64 payload, nullable
	ExpiryDate      time.Time        `json:"expiryDate" db:"expiry_date"`
	Active          bool             `json:"active" db:"active"`
	FirstLogin      bool             `json:"firstLogin" db:"first_login"`
	PasswordHash    string           `json:"-" db:"password_hash"`
	PasswordHistory []PasswordChange `json:"-" db:"password_history"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// AppendPasswordChange records a password change, keeping only the most
// recent PasswordHistoryLimit entries.
func (s *Student) AppendPasswordChange(change PasswordChange) {
	s.PasswordHistory = append(s.PasswordHistory, change)
	if len(s.PasswordHistory) > PasswordHistoryLimit {
		s.PasswordHistory = s.PasswordHistory[len(s.PasswordHistory)-PasswordHistoryLimit:]
	}
}

// DefaultPassword is the initial credential policy: the national id, or the
// student code when no national id was captured.
func (s *Student) DefaultPassword() string {
	if s.NationalID != "" {
		return s.NationalID
	}
	return s.Code
}
