package models

import (
	"time"

	"github.com/upac/carnet-backend/internal/pkg/helpers"
)

// Loan defines the loan model based on the 'loans' table. Student and staff
// names are denormalized snapshots taken at registration time so history
// survives later edits. A loan is terminal once returned.
type Loan struct {
	ID              string       `json:"id" db:"id"`
	StudentCode     string       `json:"studentCode" db:"student_code"`
	StudentName     string       `json:"studentName" db:"student_name"`
	Category        LoanCategory `json:"category" db:"category"`
	ItemType        string       `json:"itemType" db:"item_type"`
	ItemDescription *string      `json:"itemDescription,omitempty" db:"item_description"`
	StaffEmail      string       `json:"staffEmail" db:"staff_email"`
	StaffName       string       `json:"staffName" db:"staff_name"`
	BorrowedAt      time.Time    `json:"borrowedAt" db:"borrowed_at"`
	ReturnedAt      *time.Time   `json:"returnedAt,omitempty" db:"returned_at"`
	Status          LoanStatus   `json:"status" db:"status"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
}

// DaysBorrowed is the number of whole days an active loan has been out,
// measured against ref. Derived for display, never persisted.
func (l *Loan) DaysBorrowed(ref time.Time) int {
	end := ref
	if l.ReturnedAt != nil {
		end = *l.ReturnedAt
	}
	return helpers.WholeDaysBetween(l.BorrowedAt, end)
}

// DaysDuration is the loan's total span in whole days: until return for
// historical loans, until ref for ones still out.
func (l *Loan) DaysDuration(ref time.Time) int {
	return l.DaysBorrowed(ref)
}
