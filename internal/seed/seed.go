package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/upac/carnet-backend/internal/app/models"
	appRepos "github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/config"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
)

// CreateDefaultData ensures the configured default staff account exists so a
// fresh deployment can log in and start creating students.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	staffRepo := appRepos.NewStaffRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default staff account...")

	if cfg.Seed.StaffEmail == "" || cfg.Seed.StaffPassword == "" {
		lgr.Warn().Msg("Seed staff email or password not configured, skipping default staff creation")
		return nil
	}

	_, err := staffRepo.GetByEmail(ctx, cfg.Seed.StaffEmail)
	if err == nil {
		lgr.Info().Str("email", cfg.Seed.StaffEmail).Msg("Default staff account already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrStaffNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default staff account")
		return err
	}

	now := time.Now()
	staff := &appModels.Staff{
		ID:           uuid.New().String(),
		Name:         cfg.Seed.StaffName,
		Email:        cfg.Seed.StaffEmail,
		PasswordHash: auth.HashPassword(cfg.Seed.StaffPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := staffRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, apperrors.ErrStaffEmailExists) {
			lgr.Info().Str("email", staff.Email).Msg("Default staff account created concurrently, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default staff account")
		return err
	}

	lgr.Info().Str("email", staff.Email).Msg("Default staff account created successfully")
	return nil
}
