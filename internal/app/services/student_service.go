package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
	"github.com/upac/carnet-backend/internal/pkg/cardstatus"
	"github.com/upac/carnet-backend/internal/pkg/validation"
)

// StudentService handles student record management
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// parseExpiry resolves either accepted date form and rejects anything else.
// Unparseable dates are a hard validation error here, never a permissive
// "not expired" default.
func parseExpiry(raw string) (time.Time, error) {
	expiry, ok := cardstatus.ParseExpiry(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrExpiryDateUnparseable, raw)
	}
	return expiry, nil
}

// Create validates and stores a staff-created student. The initial password
// follows the default policy: national id, or the code when the national id
// is missing.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if !validation.IsValidStudentCode(req.Code) {
		return nil, apperrors.ErrInvalidStudentCode
	}
	if !validation.IsValidNationalID(req.NationalID) {
		return nil, apperrors.ErrInvalidNationalID
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if cardstatus.IsExpired(expiry, time.Now()) {
		return nil, apperrors.ErrExpiryDateInPast
	}

	exists, err := s.studentRepo.CodeExists(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("error checking student code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentCodeExists
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	student := &models.Student{
		Code:       req.Code,
		NationalID: req.NationalID,
		Name:       req.Name,
		LastName:   req.LastName,
		Program:    req.Program,
		Sede:       req.Sede,
		BloodType:  req.BloodType,
		Photo:      req.Photo,
		ExpiryDate: expiry,
		Active:     active,
		FirstLogin: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	student.PasswordHash = auth.HashPassword(student.DefaultPassword())

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", student.Code).Str("sede", student.Sede).Msg("Student record created")
	return student, nil
}

// Get retrieves one student by code
func (s *StudentService) Get(ctx context.Context, code string) (*models.Student, error) {
	return s.studentRepo.GetByCode(ctx, code)
}

// List retrieves all students sorted by code
func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

// Update applies staff edits to everything but the code and credentials.
func (s *StudentService) Update(ctx context.Context, code string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.NationalID != nil {
		if !validation.IsValidNationalID(*req.NationalID) {
			return nil, apperrors.ErrInvalidNationalID
		}
		student.NationalID = *req.NationalID
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Program != nil {
		student.Program = *req.Program
	}
	if req.Sede != nil {
		student.Sede = *req.Sede
	}
	if req.BloodType != nil {
		student.BloodType = req.BloodType
	}
	if req.Photo != nil {
		student.Photo = req.Photo
	}
	if req.ExpiryDate != nil {
		expiry, err := parseExpiry(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		student.ExpiryDate = expiry
	}
	if req.Active != nil {
		student.Active = *req.Active
	}

	student.UpdatedAt = time.Now()
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", code).Msg("Student record updated")
	return student, nil
}

// Delete removes a student; the schema cascades the deletion to the
// student's loans.
func (s *StudentService) Delete(ctx context.Context, code string) error {
	if err := s.studentRepo.Delete(ctx, code); err != nil {
		return err
	}
	s.logger.Info().Str("code", code).Msg("Student record deleted")
	return nil
}
