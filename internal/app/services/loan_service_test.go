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
)

func newLoanService(t *testing.T) (*LoanService, *fakeLoanRepo, *models.Staff) {
	t.Helper()
	loanRepo := newFakeLoanRepo()
	studentRepo := newFakeStudentRepo()
	staffRepo := newFakeStaffRepo()

	seedStudent(t, studentRepo, "12300298", "1006543210", true)
	staff := seedStaff(t, staffRepo, "bienestar@upac.edu.co", "ClaveSegura1!")

	return NewLoanService(loanRepo, studentRepo, testLogger), loanRepo, staff
}

func TestRegisterLibraryLoan(t *testing.T) {
	svc, _, staff := newLoanService(t)

	loan, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "library",
		ItemType:    "Computador portátil",
	}, staff)
	require.NoError(t, err)

	assert.Equal(t, models.LoanActive, loan.Status)
	assert.Nil(t, loan.ReturnedAt)
	// Names are snapshots, not foreign keys
	assert.Equal(t, "Laura Quintero", loan.StudentName)
	assert.Equal(t, "Carlos Mejía", loan.StaffName)
	assert.Equal(t, "bienestar@upac.edu.co", loan.StaffEmail)
	assert.WithinDuration(t, time.Now(), loan.BorrowedAt, time.Minute)
}

func TestRegisterLoanValidation(t *testing.T) {
	testCases := []struct {
		name     string
		req      dto.RegisterLoanRequest
		expected error
	}{
		{
			"unknown student",
			dto.RegisterLoanRequest{StudentCode: "00000000", Category: "library", ItemType: "Libro"},
			apperrors.ErrStudentNotFound,
		},
		{
			"missing item type",
			dto.RegisterLoanRequest{StudentCode: "12300298", Category: "library"},
			apperrors.ErrItemTypeRequired,
		},
		{
			"unknown category",
			dto.RegisterLoanRequest{StudentCode: "12300298", Category: "cafeteria", ItemType: "Bandeja"},
			apperrors.ErrInvalidLoanCategory,
		},
		{
			"library item outside catalog",
			dto.RegisterLoanRequest{StudentCode: "12300298", Category: "library", ItemType: "Microscopio"},
			apperrors.ErrItemNotInCatalog,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, staff := newLoanService(t)
			_, err := svc.Register(context.Background(), &tt.req, staff)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRegisterLaboratoryLoanTakesFreeText(t *testing.T) {
	svc, _, staff := newLoanService(t)

	loan, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "laboratory",
		ItemType:    "Microscopio óptico",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryLaboratory, loan.Category)
}

func TestRegisterLoanHonorsExplicitBorrowedAt(t *testing.T) {
	svc, _, staff := newLoanService(t)

	borrowedAt := time.Now().Add(-72 * time.Hour)
	loan, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "library",
		ItemType:    "Libro",
		BorrowedAt:  &borrowedAt,
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, borrowedAt, loan.BorrowedAt)
	assert.Equal(t, 3, loan.DaysBorrowed(time.Now()))
}

func TestStudentMayHoldSeveralActiveLoans(t *testing.T) {
	svc, _, staff := newLoanService(t)

	for _, item := range []string{"Libro", "Tablet", "Calculadora"} {
		_, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
			StudentCode: "12300298",
			Category:    "library",
			ItemType:    item,
		}, staff)
		require.NoError(t, err)
	}

	active, err := svc.ActiveForStudent(context.Background(), "12300298")
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestReturnLoanLifecycle(t *testing.T) {
	svc, _, staff := newLoanService(t)

	loan, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "library",
		ItemType:    "Computador portátil",
	}, staff)
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)

	// A returned loan is terminal: the second return conflicts and the
	// original timestamp stands
	_, err = svc.Return(context.Background(), loan.ID)
	assert.ErrorIs(t, err, apperrors.ErrLoanAlreadyReturned)

	after, err := svc.Get(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, returned.ReturnedAt, after.ReturnedAt)
}

func TestReturnUnknownLoan(t *testing.T) {
	svc, _, _ := newLoanService(t)

	_, err := svc.Return(context.Background(), "no-such-loan")
	assert.ErrorIs(t, err, apperrors.ErrLoanNotFound)
}

func TestLoanHistoryFilter(t *testing.T) {
	svc, _, staff := newLoanService(t)

	first, err := svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "library",
		ItemType:    "Libro",
	}, staff)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), &dto.RegisterLoanRequest{
		StudentCode: "12300298",
		Category:    "laboratory",
		ItemType:    "Multímetro",
	}, staff)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), first.ID)
	require.NoError(t, err)

	all, err := svc.History(context.Background(), dto.LoanFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.History(context.Background(), dto.LoanFilter{Status: "active"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.CategoryLaboratory, active[0].Category)

	library, err := svc.History(context.Background(), dto.LoanFilter{Category: "library"})
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, models.LoanReturned, library[0].Status)
}

func TestCatalogIsACopy(t *testing.T) {
	svc, _, _ := newLoanService(t)

	catalog := svc.Catalog()
	assert.Equal(t, models.LibraryCatalog, catalog)

	catalog[0] = "mutated"
	assert.Equal(t, "Computador portátil", models.LibraryCatalog[0])
}
