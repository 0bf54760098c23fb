package dto

import (
	"time"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/pkg/cardstatus"
)

// CreateStudentRequest carries a staff-created student record. ExpiryDate
// accepts both the ISO form and the long card rendering ("2 FEBRERO 2026").
type CreateStudentRequest struct {
	Code       string  `json:"code" binding:"required" example:"12300298"`
	NationalID string  `json:"nationalId" binding:"required" example:"1006543210"`
	Name       string  `json:"name" binding:"required" example:"Laura"`
	LastName   string  `json:"lastName" binding:"required" example:"Quintero"`
	Program    string  `json:"program" binding:"required" example:"Ingeniería de Sistemas"`
	Sede       string  `json:"sede" binding:"required" example:"Barrancabermeja"`
	BloodType  *string `json:"bloodType,omitempty" example:"O+"`
	Photo      *string `json:"photo,omitempty"`
	ExpiryDate string  `json:"expiryDate" binding:"required" example:"2026-12-31"`
	Active     *bool   `json:"active,omitempty"`
}

// UpdateStudentRequest carries staff edits. The code comes from the URL and
// is immutable; absent fields are left untouched.
type UpdateStudentRequest struct {
	NationalID *string `json:"nationalId,omitempty"`
	Name       *string `json:"name,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Program    *string `json:"program,omitempty"`
	Sede       *string `json:"sede,omitempty"`
	BloodType  *string `json:"bloodType,omitempty"`
	Photo      *string `json:"photo,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// StudentResponse is the API shape of a student, including the derived card
// status badge.
type StudentResponse struct {
	Code       string    `json:"code"`
	NationalID string    `json:"nationalId"`
	Name       string    `json:"name"`
	LastName   string    `json:"lastName"`
	Program    string    `json:"program"`
	Sede       string    `json:"sede"`
	BloodType  *string   `json:"bloodType,omitempty"`
	Photo      *string   `json:"photo,omitempty"`
	ExpiryDate string    `json:"expiryDate"`
	Active     bool      `json:"active"`
	FirstLogin bool      `json:"firstLogin"`
	CardStatus string    `json:"cardStatus" example:"ACTIVE"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewStudentResponse derives the API shape from the model, classifying the
// card against ref so list badges agree with dashboard counts.
func NewStudentResponse(s *models.Student, ref time.Time) *StudentResponse {
	return &StudentResponse{
		Code:       s.Code,
		NationalID: s.NationalID,
		Name:       s.Name,
		LastName:   s.LastName,
		Program:    s.Program,
		Sede:       s.Sede,
		BloodType:  s.BloodType,
		Photo:      s.Photo,
		ExpiryDate: s.ExpiryDate.Format("2006-01-02"),
		Active:     s.Active,
		FirstLogin: s.FirstLogin,
		CardStatus: string(cardstatus.Classify(s.ExpiryDate, s.Active, ref)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewStudentListResponse maps a model list against one shared reference
// instant.
func NewStudentListResponse(students []*models.Student, ref time.Time) []*StudentResponse {
	out := make([]*StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s, ref))
	}
	return out
}
