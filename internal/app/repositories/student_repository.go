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

var studentColumns = []string{
	"code", "national_id", "name", "last_name", "program", "sede",
	"blood_type", "photo", "expiry_date", "active", "first_login",
	"password_hash", "password_history", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(student.Code, student.NationalID, student.Name, student.LastName,
			student.Program, student.Sede, student.BloodType, student.Photo,
			student.ExpiryDate, student.Active, student.FirstLogin,
			student.PasswordHash, student.PasswordHistory,
			student.CreatedAt, student.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_pkey") {
			logger.Warn().Str("code", student.Code).Msg("Attempted to create student with duplicate code")
			return apperrors.ErrStudentCodeExists
		}
		logger.Error().Err(err).Str("code", student.Code).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("code", student.Code).Msg("Student created successfully")
	return nil
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.Code, &s.NationalID, &s.Name, &s.LastName, &s.Program,
		&s.Sede, &s.BloodType, &s.Photo, &s.ExpiryDate, &s.Active,
		&s.FirstLogin, &s.PasswordHash, &s.PasswordHistory,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByCode retrieves a student by code
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by code SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := r.scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Str("code", code).Msg("Student not found by code")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("code", code).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves all students ordered by code
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := r.scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// Update writes every mutable column. The code is the immutable key.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("national_id", student.NationalID).
		Set("name", student.Name).
		Set("last_name", student.LastName).
		Set("program", student.Program).
		Set("sede", student.Sede).
		Set("blood_type", student.BloodType).
		Set("photo", student.Photo).
		Set("expiry_date", student.ExpiryDate).
		Set("active", student.Active).
		Set("first_login", student.FirstLogin).
		Set("password_hash", student.PasswordHash).
		Set("password_history", student.PasswordHistory).
		Set("updated_at", student.UpdatedAt).
		Where(squirrel.Eq{"code": student.Code}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("code", student.Code).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Loans cascade at the schema level.
func (r *StudentRepository) Delete(ctx context.Context, code string) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("code", code).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("code", code).Msg("Student deleted, loans cascaded")
	return nil
}

// CodeExists checks if a student code already exists
func (r *StudentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"code": code}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student code exists SQL")
		return false, fmt.Errorf("failed to build student code exists query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("code", code).Msg("Error checking student code existence")
		return false, fmt.Errorf("error checking student code existence: %w", err)
	}

	return exists, nil
}
