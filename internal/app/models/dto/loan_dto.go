package dto

import (
	"time"

	"github.com/upac/carnet-backend/internal/app/models"
)

// RegisterLoanRequest carries a new loan registration. BorrowedAt is
// optional; the ledger defaults it to now.
type RegisterLoanRequest struct {
	StudentCode     string     `json:"studentCode" binding:"required" example:"12300298"`
	Category        string     `json:"category" binding:"required,oneof=library laboratory" example:"library"`
	ItemType        string     `json:"itemType" binding:"required" example:"Computador portátil"`
	ItemDescription *string    `json:"itemDescription,omitempty"`
	BorrowedAt      *time.Time `json:"borrowedAt,omitempty"`
}

// LoanFilter narrows loan history queries. Zero values mean "no filter".
type LoanFilter struct {
	StudentCode string `form:"studentCode"`
	Category    string `form:"category"`
	Status      string `form:"status"`
}

// LoanResponse is the API shape of a loan, including the derived day counts.
type LoanResponse struct {
	ID              string     `json:"id"`
	StudentCode     string     `json:"studentCode"`
	StudentName     string     `json:"studentName"`
	Category        string     `json:"category"`
	ItemType        string     `json:"itemType"`
	ItemDescription *string    `json:"itemDescription,omitempty"`
	StaffEmail      string     `json:"staffEmail"`
	StaffName       string     `json:"staffName"`
	BorrowedAt      time.Time  `json:"borrowedAt"`
	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`
	Status          string     `json:"status"`
	DaysBorrowed    int        `json:"daysBorrowed"`
	DaysDuration    int        `json:"daysDuration"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// NewLoanResponse derives the API shape from the model against ref.
func NewLoanResponse(l *models.Loan, ref time.Time) *LoanResponse {
	return &LoanResponse{
		ID:              l.ID,
		StudentCode:     l.StudentCode,
		StudentName:     l.StudentName,
		Category:        string(l.Category),
		ItemType:        l.ItemType,
		ItemDescription: l.ItemDescription,
		StaffEmail:      l.StaffEmail,
		StaffName:       l.StaffName,
		BorrowedAt:      l.BorrowedAt,
		ReturnedAt:      l.ReturnedAt,
		Status:          string(l.Status),
		DaysBorrowed:    l.DaysBorrowed(ref),
		DaysDuration:    l.DaysDuration(ref),
		CreatedAt:       l.CreatedAt,
	}
}

// NewLoanListResponse maps a model list against one shared reference instant.
func NewLoanListResponse(loans []*models.Loan, ref time.Time) []*LoanResponse {
	out := make([]*LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, NewLoanResponse(l, ref))
	}
	return out
}

// CatalogResponse lists the fixed library item catalog.
type CatalogResponse struct {
	Items []string `json:"items"`
}
