package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
	"github.com/upac/carnet-backend/internal/pkg/cardstatus"
)

func newCardService() (*CardService, *fakeStudentRepo, *fakeLoanRepo) {
	studentRepo := newFakeStudentRepo()
	loanRepo := newFakeLoanRepo()
	return NewCardService(studentRepo, loanRepo, testLogger), studentRepo, loanRepo
}

func addActiveLoan(t *testing.T, repo *fakeLoanRepo, studentCode string) *models.Loan {
	t.Helper()
	loan := &models.Loan{
		ID:          uuid.New().String(),
		StudentCode: studentCode,
		StudentName: "Laura Quintero",
		Category:    models.CategoryLibrary,
		ItemType:    "Libro",
		StaffEmail:  "bienestar@upac.edu.co",
		StaffName:   "Carlos Mejía",
		BorrowedAt:  time.Now(),
		Status:      models.LoanActive,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), loan))
	return loan
}

func TestValidateScanWithPrefix(t *testing.T) {
	svc, studentRepo, loanRepo := newCardService()
	seedStudent(t, studentRepo, "12300298", "1006543210", true)
	addActiveLoan(t, loanRepo, "12300298")

	result, err := svc.ValidateScan(context.Background(), "UPAC-12300298")
	require.NoError(t, err)

	assert.Equal(t, "UPAC-12300298", result.Payload)
	assert.Equal(t, string(cardstatus.StatusActive), result.CardStatus)
	assert.Equal(t, 1, result.ActiveLoans)
	require.NotNil(t, result.Student)
	assert.Equal(t, "12300298", result.Student.Code)
}

func TestValidateScanToleratesBareCode(t *testing.T) {
	svc, studentRepo, _ := newCardService()
	seedStudent(t, studentRepo, "12300298", "1006543210", true)

	result, err := svc.ValidateScan(context.Background(), "  12300298 ")
	require.NoError(t, err)
	assert.Equal(t, "UPAC-12300298", result.Payload)
}

func TestValidateScanUnknownStudent(t *testing.T) {
	svc, _, _ := newCardService()

	_, err := svc.ValidateScan(context.Background(), "UPAC-00000000")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestValidateScanInactiveCard(t *testing.T) {
	svc, studentRepo, _ := newCardService()
	seedStudent(t, studentRepo, "12300298", "1006543210", false)

	result, err := svc.ValidateScan(context.Background(), "UPAC-12300298")
	require.NoError(t, err)
	assert.Equal(t, string(cardstatus.StatusInactive), result.CardStatus)
}

func TestDownloadPermission(t *testing.T) {
	svc, studentRepo, loanRepo := newCardService()
	seedStudent(t, studentRepo, "12300298", "1006543210", true)

	allowed, err := svc.DownloadPermission(context.Background(), "12300298")
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
	assert.Empty(t, allowed.Reason)

	loan := addActiveLoan(t, loanRepo, "12300298")

	blocked, err := svc.DownloadPermission(context.Background(), "12300298")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, DownloadBlockedReason, blocked.Reason)
	assert.Equal(t, 1, blocked.ActiveLoans)

	// Returning the loan unblocks the download
	_, err = loanRepo.Return(context.Background(), loan.ID)
	require.NoError(t, err)

	again, err := svc.DownloadPermission(context.Background(), "12300298")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
}

func TestDashboardSummaryAddsUp(t *testing.T) {
	svc, studentRepo, loanRepo := newCardService()

	now := time.Now()
	fixtures := []struct {
		code   string
		expiry time.Time
		active bool
	}{
		{"10000001", now.AddDate(1, 0, 0), true},  // ACTIVE
		{"10000002", now.AddDate(0, 0, 10), true}, // EXPIRING_SOON
		{"10000003", now.AddDate(0, 0, -5), true}, // EXPIRED
		{"10000004", now.AddDate(1, 0, 0), false}, // INACTIVE
		{"10000005", now.AddDate(0, 0, -5), false}, // INACTIVE wins over expired
	}
	for _, f := range fixtures {
		student := seedStudent(t, studentRepo, f.code, "1006543210", f.active)
		student.ExpiryDate = f.expiry
		require.NoError(t, studentRepo.Update(context.Background(), student))
	}
	addActiveLoan(t, loanRepo, "10000001")
	addActiveLoan(t, loanRepo, "10000002")

	summary, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalStudents)
	assert.Equal(t, 1, summary.Active)
	assert.Equal(t, 1, summary.ExpiringSoon)
	assert.Equal(t, 1, summary.Expired)
	assert.Equal(t, 2, summary.Inactive)
	assert.Equal(t, 2, summary.ActiveLoans)
	assert.Equal(t, summary.TotalStudents, summary.Active+summary.ExpiringSoon+summary.Expired+summary.Inactive)
}
