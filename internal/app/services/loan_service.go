package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

// LoanService is the loan ledger: it registers loans against existing
// students and closes them exactly once. There is no cap on simultaneous
// active loans per student.
type LoanService struct {
	loanRepo    repositories.ILoanRepository
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(
	loanRepo repositories.ILoanRepository,
	studentRepo repositories.IStudentRepository,
	logger zerolog.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Register validates and stores a new loan. The student must exist, the
// category must be a known one, and library loans must name a catalog item.
// Names are snapshotted onto the row so later edits don't rewrite history.
func (s *LoanService) Register(ctx context.Context, req *dto.RegisterLoanRequest, staff *models.Staff) (*models.Loan, error) {
	student, err := s.studentRepo.GetByCode(ctx, req.StudentCode)
	if err != nil {
		return nil, err
	}

	if req.ItemType == "" {
		return nil, apperrors.ErrItemTypeRequired
	}

	category := models.LoanCategory(req.Category)
	switch category {
	case models.CategoryLibrary:
		if !models.InLibraryCatalog(req.ItemType) {
			return nil, apperrors.NewCustomError(apperrors.ErrItemNotInCatalog,
				fmt.Sprintf("%q is not part of the library catalog", req.ItemType))
		}
	case models.CategoryLaboratory:
		// Laboratory items are free-form.
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidLoanCategory,
			fmt.Sprintf("%q is not a loan category", req.Category))
	}

	now := time.Now()
	borrowedAt := now
	if req.BorrowedAt != nil {
		borrowedAt = *req.BorrowedAt
	}

	loan := &models.Loan{
		ID:              uuid.New().String(),
		StudentCode:     student.Code,
		StudentName:     student.Name + " " + student.LastName,
		Category:        category,
		ItemType:        req.ItemType,
		ItemDescription: req.ItemDescription,
		StaffEmail:      staff.Email,
		StaffName:       staff.Name,
		BorrowedAt:      borrowedAt,
		Status:          models.LoanActive,
		CreatedAt:       now,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("loanID", loan.ID).
		Str("studentCode", loan.StudentCode).
		Str("category", string(loan.Category)).
		Str("itemType", loan.ItemType).
		Msg("Loan registered")
	return loan, nil
}

// Return closes an active loan. A loan already returned conflicts rather
// than getting a fresh return timestamp.
func (s *LoanService) Return(ctx context.Context, id string) (*models.Loan, error) {
	loan, err := s.loanRepo.Return(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("loanID", id).Str("studentCode", loan.StudentCode).Msg("Loan closed")
	return loan, nil
}

// Get retrieves one loan by id
func (s *LoanService) Get(ctx context.Context, id string) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// ActiveForStudent retrieves a student's open loans
func (s *LoanService) ActiveForStudent(ctx context.Context, studentCode string) ([]*models.Loan, error) {
	return s.loanRepo.ActiveByStudent(ctx, studentCode)
}

// History retrieves loans matching the filter, most recent first
func (s *LoanService) History(ctx context.Context, filter dto.LoanFilter) ([]*models.Loan, error) {
	return s.loanRepo.List(ctx, filter)
}

// Catalog returns the fixed list of loanable library items.
func (s *LoanService) Catalog() []string {
	items := make([]string, len(models.LibraryCatalog))
	copy(items, models.LibraryCatalog)
	return items
}
