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
	"github.com/upac/carnet-backend/internal/pkg/auth"
)

// AuthService issues and revokes login sessions for both principal kinds.
// Credential checks are delegated to the CredentialService; this layer adds
// the card-specific rule that an inactive card blocks login even when the
// password is right.
type AuthService struct {
	credentials *CredentialService
	sessionRepo repositories.ISessionRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	credentials *CredentialService,
	sessionRepo repositories.ISessionRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a principal and mints a seven-day session.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	switch models.Role(req.Role) {
	case models.RoleStudent:
		return s.loginStudent(ctx, req.Identifier, req.Password)
	case models.RoleStaff:
		return s.loginStaff(ctx, req.Identifier, req.Password)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.Role)
	}
}

func (s *AuthService) loginStudent(ctx context.Context, code, password string) (*dto.SessionResponse, error) {
	student, err := s.credentials.VerifyStudent(ctx, code, password)
	if err != nil {
		return nil, err
	}

	// Correct credentials on a deactivated card still refuse login, with an
	// error the portal renders differently from bad credentials.
	if !student.Active {
		s.logger.Warn().Str("code", code).Msg("Login refused for inactive card")
		return nil, apperrors.ErrCardInactive
	}

	fullName := student.Name + " " + student.LastName
	return s.mintSession(ctx, models.RoleStudent, student.Code, fullName, student.FirstLogin)
}

func (s *AuthService) loginStaff(ctx context.Context, email, password string) (*dto.SessionResponse, error) {
	staff, err := s.credentials.VerifyStaff(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.mintSession(ctx, models.RoleStaff, staff.Email, staff.Name, false)
}

func (s *AuthService) mintSession(ctx context.Context, role models.Role, identifier, name string, firstLogin bool) (*dto.SessionResponse, error) {
	sessionID := uuid.New().String()

	token, expiresAt, err := s.jwtService.GenerateToken(string(role), identifier, name, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	session := &models.Session{
		Token:      sessionID,
		Role:       role,
		Identifier: identifier,
		Name:       name,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error storing session: %w", err)
	}

	s.logger.Info().Str("role", string(role)).Str("identifier", identifier).Time("expiresAt", expiresAt).Msg("Session issued")

	return &dto.SessionResponse{
		Token:      token,
		Role:       string(role),
		Identifier: identifier,
		Name:       name,
		FirstLogin: firstLogin,
		ExpiresAt:  expiresAt,
	}, nil
}

// Validate checks that a session is still live. Expired rows are purged by
// the repository on the way through.
func (s *AuthService) Validate(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.sessionRepo.Get(ctx, sessionID)
}

// Logout revokes a session. Revoking twice, or revoking a session that
// never existed, succeeds quietly.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("error revoking session: %w", err)
	}
	s.logger.Info().Str("session", sessionID).Msg("Session revoked")
	return nil
}
