package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/auth"
)

func newStaffService() (*StaffService, *fakeStaffRepo) {
	repo := newFakeStaffRepo()
	return NewStaffService(repo, testLogger), repo
}

func TestCreateStaff(t *testing.T) {
	svc, _ := newStaffService()

	staff, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		Name:     "Carlos Mejía",
		Email:    "bienestar@upac.edu.co",
		Password: "ClaveSegura1!",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, staff.ID)
	assert.Equal(t, auth.HashPassword("ClaveSegura1!"), staff.PasswordHash)
}

func TestCreateStaffRejectsExternalEmail(t *testing.T) {
	svc, _ := newStaffService()

	_, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		Name:     "Alguien Externo",
		Email:    "alguien@gmail.com",
		Password: "ClaveSegura1!",
	})
	assert.ErrorIs(t, err, apperrors.ErrNonInstitutional)
}

func TestCreateStaffRejectsShortPassword(t *testing.T) {
	svc, _ := newStaffService()

	_, err := svc.Create(context.Background(), &dto.CreateStaffRequest{
		Name:     "Carlos Mejía",
		Email:    "bienestar@upac.edu.co",
		Password: "corta",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestCreateStaffDuplicateEmail(t *testing.T) {
	svc, _ := newStaffService()

	req := &dto.CreateStaffRequest{
		Name:     "Carlos Mejía",
		Email:    "bienestar@upac.edu.co",
		Password: "ClaveSegura1!",
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrStaffEmailExists)
}

func TestUpdateStaffKeepsEmail(t *testing.T) {
	svc, repo := newStaffService()
	seedStaff(t, repo, "bienestar@upac.edu.co", "ClaveSegura1!")

	newName := "Carlos A. Mejía"
	updated, err := svc.Update(context.Background(), "bienestar@upac.edu.co", &dto.UpdateStaffRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Carlos A. Mejía", updated.Name)
	assert.Equal(t, "bienestar@upac.edu.co", updated.Email)
}

func TestDeleteStaff(t *testing.T) {
	svc, repo := newStaffService()
	seedStaff(t, repo, "bienestar@upac.edu.co", "ClaveSegura1!")

	require.NoError(t, svc.Delete(context.Background(), "bienestar@upac.edu.co"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "bienestar@upac.edu.co"), apperrors.ErrStaffNotFound)
}
