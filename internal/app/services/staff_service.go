package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
	"github.com/upac/carnet-backend/internal/pkg/validation"
)

// StaffService handles staff account management
type StaffService struct {
	staffRepo repositories.IStaffRepository
	logger    zerolog.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo repositories.IStaffRepository, logger zerolog.Logger) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create registers a staff account. Only institutional email addresses are
// accepted.
func (s *StaffService) Create(ctx context.Context, req *dto.CreateStaffRequest) (*models.Staff, error) {
	if !validation.IsInstitutionalEmail(req.Email) {
		return nil, apperrors.ErrNonInstitutional
	}
	if err := validateNewPassword(req.Password); err != nil {
		return nil, err
	}

	now := time.Now()
	staff := &models.Staff{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: auth.HashPassword(req.Password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", staff.Email).Msg("Staff account created")
	return staff, nil
}

// Get retrieves one staff member by email
func (s *StaffService) Get(ctx context.Context, email string) (*models.Staff, error) {
	return s.staffRepo.GetByEmail(ctx, email)
}

// List retrieves all staff members sorted by name
func (s *StaffService) List(ctx context.Context) ([]*models.Staff, error) {
	return s.staffRepo.List(ctx)
}

// Update applies edits to a staff account. Email is the key and never changes.
func (s *StaffService) Update(ctx context.Context, email string, req *dto.UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}

	staff.UpdatedAt = time.Now()
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("Staff account updated")
	return staff, nil
}

// Delete removes a staff account
func (s *StaffService) Delete(ctx context.Context, email string) error {
	if err := s.staffRepo.Delete(ctx, email); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("Staff account deleted")
	return nil
}
