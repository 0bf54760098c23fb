package dto

import "time"

// LoginRequest carries login credentials for either principal kind.
type LoginRequest struct {
	Role       string `json:"role" binding:"required,oneof=STUDENT STAFF" example:"STUDENT"`
	Identifier string `json:"identifier" binding:"required" example:"12300298"` // Student code or staff email
	Password   string `json:"password" binding:"required" example:"1006543210"`
}

// SessionResponse is returned on successful login.
type SessionResponse struct {
	Token      string    `json:"token"`
	Role       string    `json:"role" example:"STUDENT"`
	Identifier string    `json:"identifier" example:"12300298"`
	Name       string    `json:"name" example:"Laura Quintero"`
	FirstLogin bool      `json:"firstLogin"` // Students must change their password when true
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ChangePasswordRequest is a self-service password change. The length rule
// lives in the credential service, not in binding tags.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ResetPasswordRequest is a staff-initiated reset for a student.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}
