package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/dberrors"
	"github.com/upac/carnet-backend/internal/pkg/logger"
)

var staffColumns = []string{
	"id", "name", "email", "password_hash", "password_history",
	"created_at", "updated_at",
}

// StaffRepository handles staff database operations
type StaffRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new staff row
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	sql, args, err := r.sb.Insert("staff").
		Columns(staffColumns...).
		Values(staff.ID, staff.Name, staff.Email, staff.PasswordHash,
			staff.PasswordHistory, staff.CreatedAt, staff.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create staff SQL")
		return fmt.Errorf("failed to build create staff query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "staff_email_key") ||
			dberrors.IsDuplicateConstraintError(err, "staff_pkey") {
			logger.Warn().Str("email", staff.Email).Msg("Attempted to create staff with duplicate email or id")
			return apperrors.ErrStaffEmailExists
		}
		logger.Error().Err(err).Str("email", staff.Email).Msg("Error executing create staff query")
		return fmt.Errorf("error creating staff: %w", err)
	}

	logger.Info().Str("email", staff.Email).Msg("Staff member created successfully")
	return nil
}

func (r *StaffRepository) scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash,
		&s.PasswordHistory, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByEmail retrieves a staff member by email
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get staff by email SQL")
		return nil, fmt.Errorf("failed to build get staff query: %w", err)
	}

	staff, err := r.scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Str("email", email).Msg("Staff member not found by email")
			return nil, apperrors.ErrStaffNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning staff row")
		return nil, fmt.Errorf("error retrieving staff: %w", err)
	}

	return staff, nil
}

// List retrieves all staff ordered by name
func (r *StaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staff").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list staff SQL")
		return nil, fmt.Errorf("failed to build list staff query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list staff query")
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	defer rows.Close()

	var staff []*models.Staff
	for rows.Next() {
		member, err := r.scanStaff(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning staff row")
			return nil, fmt.Errorf("error scanning staff: %w", err)
		}
		staff = append(staff, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// Update writes the mutable staff columns, keyed by email
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	sql, args, err := r.sb.Update("staff").
		Set("name", staff.Name).
		Set("password_hash", staff.PasswordHash).
		Set("password_history", staff.PasswordHistory).
		Set("updated_at", staff.UpdatedAt).
		Where(squirrel.Eq{"email": staff.Email}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update staff SQL")
		return fmt.Errorf("failed to build update staff query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", staff.Email).Msg("Error executing update staff query")
		return fmt.Errorf("error updating staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}

	return nil
}

// Delete removes a staff member by email. Loans keep their denormalized
// staff snapshot; there is no cascade here.
func (r *StaffRepository) Delete(ctx context.Context, email string) error {
	sql, args, err := r.sb.Delete("staff").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete staff SQL")
		return fmt.Errorf("failed to build delete staff query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error executing delete staff query")
		return fmt.Errorf("error deleting staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}

	logger.Info().Str("email", email).Msg("Staff member deleted")
	return nil
}
