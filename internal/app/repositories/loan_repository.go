package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/dberrors"
	"github.com/upac/carnet-backend/internal/pkg/logger"
)

var loanColumns = []string{
	"id", "student_code", "student_name", "category", "item_type",
	"item_description", "staff_email", "staff_name", "borrowed_at",
	"returned_at", "status", "created_at",
}

// LoanRepository handles loan database operations
type LoanRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(db *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new loan row
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	sql, args, err := r.sb.Insert("loans").
		Columns(loanColumns...).
		Values(loan.ID, loan.StudentCode, loan.StudentName, loan.Category,
			loan.ItemType, loan.ItemDescription, loan.StaffEmail,
			loan.StaffName, loan.BorrowedAt, loan.ReturnedAt, loan.Status,
			loan.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create loan SQL")
		return fmt.Errorf("failed to build create loan query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		// Student deleted between the service check and the insert
		if dberrors.IsForeignKeyViolation(err) {
			logger.Warn().Str("studentCode", loan.StudentCode).Msg("Loan insert hit a missing student")
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("loanID", loan.ID).Str("studentCode", loan.StudentCode).Msg("Error executing create loan query")
		return fmt.Errorf("error creating loan: %w", err)
	}

	logger.Info().Str("loanID", loan.ID).Str("studentCode", loan.StudentCode).Msg("Loan registered")
	return nil
}

func (r *LoanRepository) scanLoan(row pgx.Row) (*models.Loan, error) {
	var l models.Loan
	err := row.Scan(&l.ID, &l.StudentCode, &l.StudentName, &l.Category,
		&l.ItemType, &l.ItemDescription, &l.StaffEmail, &l.StaffName,
		&l.BorrowedAt, &l.ReturnedAt, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID retrieves a loan by id
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	sql, args, err := r.sb.Select(loanColumns...).
		From("loans").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get loan by id SQL")
		return nil, fmt.Errorf("failed to build get loan query: %w", err)
	}

	loan, err := r.scanLoan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		logger.Error().Err(err).Str("loanID", id).Msg("Error scanning loan row")
		return nil, fmt.Errorf("error retrieving loan: %w", err)
	}

	return loan, nil
}

// Return closes an active loan with a conditional update: the row only
// changes if it is still active, so two concurrent returns cannot both win
// and the second caller gets a conflict instead of silently re-stamping
// returned_at.
func (r *LoanRepository) Return(ctx context.Context, id string) (*models.Loan, error) {
	returnedAt := time.Now()
	sql, args, err := r.sb.Update("loans").
		Set("status", models.LoanReturned).
		Set("returned_at", returnedAt).
		Where(squirrel.Eq{"id": id, "status": models.LoanActive}).
		Suffix("RETURNING " + strings.Join(loanColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building return loan SQL")
		return nil, fmt.Errorf("failed to build return loan query: %w", err)
	}

	loan, err := r.scanLoan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing loan from a lost race / repeat return.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			logger.Warn().Str("loanID", id).Msg("Attempted to return an already returned loan")
			return nil, apperrors.ErrLoanAlreadyReturned
		}
		logger.Error().Err(err).Str("loanID", id).Msg("Error executing return loan query")
		return nil, fmt.Errorf("error returning loan: %w", err)
	}

	logger.Info().Str("loanID", id).Str("studentCode", loan.StudentCode).Msg("Loan returned")
	return loan, nil
}

// ActiveByStudent retrieves a student's active loans, most recent first
func (r *LoanRepository) ActiveByStudent(ctx context.Context, studentCode string) ([]*models.Loan, error) {
	return r.queryLoans(ctx, squirrel.Eq{
		"student_code": studentCode,
		"status":       models.LoanActive,
	})
}

// List retrieves loans matching the filter, ordered by borrowed_at descending
func (r *LoanRepository) List(ctx context.Context, filter dto.LoanFilter) ([]*models.Loan, error) {
	where := squirrel.Eq{}
	if filter.StudentCode != "" {
		where["student_code"] = filter.StudentCode
	}
	if filter.Category != "" {
		where["category"] = filter.Category
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	return r.queryLoans(ctx, where)
}

func (r *LoanRepository) queryLoans(ctx context.Context, where squirrel.Eq) ([]*models.Loan, error) {
	builder := r.sb.Select(loanColumns...).
		From("loans").
		OrderBy("borrowed_at DESC")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building loan list SQL")
		return nil, fmt.Errorf("failed to build loan list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing loan list query")
		return nil, fmt.Errorf("error listing loans: %w", err)
	}
	defer rows.Close()

	loans := []*models.Loan{}
	for rows.Next() {
		loan, err := r.scanLoan(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning loan row")
			return nil, fmt.Errorf("error scanning loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loans: %w", err)
	}

	return loans, nil
}

// CountActive counts all active loans
func (r *LoanRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	sql, args, err := r.sb.Select("COUNT(*)").
		From("loans").
		Where(squirrel.Eq{"status": models.LoanActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build active loan count query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting active loans")
		return 0, fmt.Errorf("error counting active loans: %w", err)
	}

	return count, nil
}
