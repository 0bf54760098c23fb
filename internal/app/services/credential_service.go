package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
	"github.com/upac/carnet-backend/internal/pkg/validation"
)

// SelfChangedBy marks a password-history entry as a self-service change.
const SelfChangedBy = "self"

// validateNewPassword enforces the password length rule for every path that
// sets a password: self-service changes, staff resets and staff onboarding.
func validateNewPassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword,
			fmt.Sprintf("Password must be at least %d characters", validation.PasswordMinLength))
	}
	return nil
}

// CredentialService owns password hashing, verification and the bounded
// password-change history for both principal kinds. History is advisory:
// the append-then-truncate is a plain read-modify-write, concurrent changes
// for the same principal may drop entries.
type CredentialService struct {
	studentRepo repositories.IStudentRepository
	staffRepo   repositories.IStaffRepository
	logger      zerolog.Logger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(
	studentRepo repositories.IStudentRepository,
	staffRepo repositories.IStaffRepository,
	logger zerolog.Logger,
) *CredentialService {
	return &CredentialService{
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// VerifyStudent checks a student's password. Lookup misses and digest
// mismatches both surface as invalid credentials so the caller cannot tell
// unknown codes apart from wrong passwords.
func (s *CredentialService) VerifyStudent(ctx context.Context, code, password string) (*models.Student, error) {
	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up student credentials: %w", err)
	}

	if !auth.CheckPassword(student.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return student, nil
}

// VerifyStaff checks a staff member's password with the same fail-closed
// behavior as VerifyStudent.
func (s *CredentialService) VerifyStaff(ctx context.Context, email, password string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStaffNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up staff credentials: %w", err)
	}

	if !auth.CheckPassword(staff.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return staff, nil
}

// ChangeStudentPassword is the student's self-service change: the current
// password must verify, the history gains an entry, and the first-login
// flag clears.
func (s *CredentialService) ChangeStudentPassword(ctx context.Context, code, currentPassword, newPassword string) error {
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	student, err := s.VerifyStudent(ctx, code, currentPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	student.PasswordHash = auth.HashPassword(newPassword)
	student.AppendPasswordChange(models.PasswordChange{ChangedAt: now, ChangedBy: SelfChangedBy})
	student.FirstLogin = false
	student.UpdatedAt = now

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return fmt.Errorf("error persisting student password change: %w", err)
	}

	s.logger.Info().Str("code", code).Msg("Student changed own password")
	return nil
}

// ResetStudentPassword is a staff-initiated reset. The student must change
// the password on next login, so first_login is forced back on, and the
// history records the acting staff identity.
func (s *CredentialService) ResetStudentPassword(ctx context.Context, code, newPassword, changedBy string) error {
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	now := time.Now()
	student.PasswordHash = auth.HashPassword(newPassword)
	student.AppendPasswordChange(models.PasswordChange{ChangedAt: now, ChangedBy: changedBy})
	student.FirstLogin = true
	student.UpdatedAt = now

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return fmt.Errorf("error persisting student password reset: %w", err)
	}

	s.logger.Info().Str("code", code).Str("changedBy", changedBy).Msg("Student password reset by staff")
	return nil
}

// ChangeStaffPassword is the staff self-service change.
func (s *CredentialService) ChangeStaffPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	staff, err := s.VerifyStaff(ctx, email, currentPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	staff.PasswordHash = auth.HashPassword(newPassword)
	staff.AppendPasswordChange(models.PasswordChange{ChangedAt: now, ChangedBy: SelfChangedBy})
	staff.UpdatedAt = now

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return fmt.Errorf("error persisting staff password change: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Staff member changed own password")
	return nil
}
