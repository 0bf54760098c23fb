package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/logger"
)

var sessionColumns = []string{
	"token", "role", "identifier", "name", "expires_at", "revoked", "created_at",
}

// SessionRepository handles session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new session row
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns(sessionColumns...).
		Values(session.Token, session.Role, session.Identifier, session.Name,
			session.ExpiresAt, session.Revoked, session.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("identifier", session.Identifier).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// Get retrieves a session by token. Expired sessions are deleted on sight
// (lazy purge) and reported as expired; revoked sessions are reported as
// revoked.
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var s models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.Token, &s.Role,
		&s.Identifier, &s.Name, &s.ExpiresAt, &s.Revoked, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if !s.ExpiresAt.After(time.Now()) {
		if err := r.delete(ctx, token); err != nil {
			logger.Warn().Err(err).Msg("Failed to purge expired session")
		}
		return nil, apperrors.ErrSessionExpired
	}
	if s.Revoked {
		return nil, apperrors.ErrSessionRevoked
	}

	return &s, nil
}

// Revoke invalidates a session. Revoking a missing or already revoked
// session is a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("sessions").
		Set("revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke session SQL")
		return fmt.Errorf("failed to build revoke session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing revoke session query")
		return fmt.Errorf("error revoking session: %w", err)
	}

	return nil
}

func (r *SessionRepository) delete(ctx context.Context, token string) error {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
