package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
)

func newAuthService() (*AuthService, *fakeStudentRepo, *fakeStaffRepo, *fakeSessionRepo) {
	studentRepo := newFakeStudentRepo()
	staffRepo := newFakeStaffRepo()
	sessionRepo := newFakeSessionRepo()
	credentials := NewCredentialService(studentRepo, staffRepo, testLogger)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  168 * time.Hour,
		TokenIssuer: "carnet.test",
	})
	return NewAuthService(credentials, sessionRepo, jwtService, testLogger), studentRepo, staffRepo, sessionRepo
}

func TestStudentLoginIssuesWeekLongSession(t *testing.T) {
	svc, studentRepo, _, _ := newAuthService()
	seedStudent(t, studentRepo, "12300298", "1006543210", true)

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "STUDENT",
		Identifier: "12300298",
		Password:   "1006543210",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "STUDENT", session.Role)
	assert.Equal(t, "12300298", session.Identifier)
	assert.Equal(t, "Laura Quintero", session.Name)
	assert.True(t, session.FirstLogin)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), session.ExpiresAt, time.Minute)
}

func TestStudentLoginInactiveCard(t *testing.T) {
	svc, studentRepo, _, _ := newAuthService()
	seedStudent(t, studentRepo, "12300298", "1006543210", false)

	// Right password, deactivated card: the error is distinct from bad
	// credentials so the portal can say "visit the office".
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "STUDENT",
		Identifier: "12300298",
		Password:   "1006543210",
	})
	assert.ErrorIs(t, err, apperrors.ErrCardInactive)

	// Wrong password on the same inactive card does not reveal the card state
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "STUDENT",
		Identifier: "12300298",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestStaffLogin(t *testing.T) {
	svc, _, staffRepo, _ := newAuthService()
	seedStaff(t, staffRepo, "bienestar@upac.edu.co", "ClaveSegura1!")

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "STAFF",
		Identifier: "bienestar@upac.edu.co",
		Password:   "ClaveSegura1!",
	})
	require.NoError(t, err)
	assert.Equal(t, "STAFF", session.Role)
	assert.False(t, session.FirstLogin)
}

func TestLoginUnknownRole(t *testing.T) {
	svc, _, _, _ := newAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "ADMIN",
		Identifier: "someone",
		Password:   "password",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestValidateAndLogout(t *testing.T) {
	svc, studentRepo, _, sessionRepo := newAuthService()
	seedStudent(t, studentRepo, "12300298", "1006543210", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Role:       "STUDENT",
		Identifier: "12300298",
		Password:   "1006543210",
	})
	require.NoError(t, err)

	// Grab the stored session id from the fake
	var sessionID string
	for token := range sessionRepo.sessions {
		sessionID = token
	}
	require.NotEmpty(t, sessionID)

	session, err := svc.Validate(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, session.Role)

	require.NoError(t, svc.Logout(context.Background(), sessionID))

	_, err = svc.Validate(context.Background(), sessionID)
	assert.ErrorIs(t, err, apperrors.ErrSessionRevoked)

	// Logging out again, or logging out an unknown session, succeeds quietly
	assert.NoError(t, svc.Logout(context.Background(), sessionID))
	assert.NoError(t, svc.Logout(context.Background(), "never-existed"))
}

func TestValidateExpiredSessionIsPurged(t *testing.T) {
	svc, _, _, sessionRepo := newAuthService()

	sessionRepo.sessions["stale"] = &models.Session{
		Token:      "stale",
		Role:       models.RoleStudent,
		Identifier: "12300298",
		Name:       "Laura Quintero",
		ExpiresAt:  time.Now().Add(-time.Hour),
		CreatedAt:  time.Now().Add(-8 * 24 * time.Hour),
	}

	_, err := svc.Validate(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// The expired row is gone, so a retry reports not found
	_, err = svc.Validate(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
