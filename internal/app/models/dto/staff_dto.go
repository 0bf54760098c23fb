package dto

import (
	"time"

	"github.com/upac/carnet-backend/internal/app/models"
)

// CreateStaffRequest carries a new staff account.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required" example:"Carlos Mejía"`
	Email    string `json:"email" binding:"required,email" example:"bienestar@upac.edu.co"`
	Password string `json:"password" binding:"required"`
}

// UpdateStaffRequest carries staff edits keyed by email from the URL.
type UpdateStaffRequest struct {
	Name *string `json:"name,omitempty"`
}

// StaffResponse is the API shape of a staff member.
type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewStaffResponse maps the model to its API shape.
func NewStaffResponse(s *models.Staff) *StaffResponse {
	return &StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewStaffListResponse maps a model list.
func NewStaffListResponse(staff []*models.Staff) []*StaffResponse {
	out := make([]*StaffResponse, 0, len(staff))
	for _, s := range staff {
		out = append(out, NewStaffResponse(s))
	}
	return out
}
