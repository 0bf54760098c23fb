package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

var testLogger = zerolog.Nop()

type fakeStudentRepo struct {
	students map[string]*models.Student
	// Mirrors the schema's ON DELETE CASCADE from loans to students when a
	// loan fake is attached.
	loans *fakeLoanRepo
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*models.Student{}}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.Code]; ok {
		return apperrors.ErrStudentCodeExists
	}
	copied := *student
	r.students[student.Code] = &copied
	return nil
}

func (r *fakeStudentRepo) GetByCode(_ context.Context, code string) (*models.Student, error) {
	student, ok := r.students[code]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (r *fakeStudentRepo) List(_ context.Context) ([]*models.Student, error) {
	codes := make([]string, 0, len(r.students))
	for code := range r.students {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]*models.Student, 0, len(codes))
	for _, code := range codes {
		copied := *r.students[code]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.Code]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	r.students[student.Code] = &copied
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, code string) error {
	if _, ok := r.students[code]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, code)
	if r.loans != nil {
		r.loans.deleteByStudent(code)
	}
	return nil
}

func (r *fakeStudentRepo) CodeExists(_ context.Context, code string) (bool, error) {
	_, ok := r.students[code]
	return ok, nil
}

type fakeStaffRepo struct {
	staff map[string]*models.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: map[string]*models.Staff{}}
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	if _, ok := r.staff[staff.Email]; ok {
		return apperrors.ErrStaffEmailExists
	}
	copied := *staff
	r.staff[staff.Email] = &copied
	return nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	staff, ok := r.staff[email]
	if !ok {
		return nil, apperrors.ErrStaffNotFound
	}
	copied := *staff
	return &copied, nil
}

func (r *fakeStaffRepo) List(_ context.Context) ([]*models.Staff, error) {
	out := make([]*models.Staff, 0, len(r.staff))
	for _, staff := range r.staff {
		copied := *staff
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *models.Staff) error {
	if _, ok := r.staff[staff.Email]; !ok {
		return apperrors.ErrStaffNotFound
	}
	copied := *staff
	r.staff[staff.Email] = &copied
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, email string) error {
	if _, ok := r.staff[email]; !ok {
		return apperrors.ErrStaffNotFound
	}
	delete(r.staff, email)
	return nil
}

type fakeLoanRepo struct {
	loans map[string]*models.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: map[string]*models.Loan{}}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	copied := *loan
	r.loans[loan.ID] = &copied
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id string) (*models.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (r *fakeLoanRepo) Return(_ context.Context, id string) (*models.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	if loan.Status == models.LoanReturned {
		return nil, apperrors.ErrLoanAlreadyReturned
	}
	returnedAt := time.Now()
	loan.Status = models.LoanReturned
	loan.ReturnedAt = &returnedAt
	copied := *loan
	return &copied, nil
}

func (r *fakeLoanRepo) ActiveByStudent(_ context.Context, studentCode string) ([]*models.Loan, error) {
	out := []*models.Loan{}
	for _, loan := range r.loans {
		if loan.StudentCode == studentCode && loan.Status == models.LoanActive {
			copied := *loan
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.After(out[j].BorrowedAt) })
	return out, nil
}

func (r *fakeLoanRepo) List(_ context.Context, filter dto.LoanFilter) ([]*models.Loan, error) {
	out := []*models.Loan{}
	for _, loan := range r.loans {
		if filter.StudentCode != "" && loan.StudentCode != filter.StudentCode {
			continue
		}
		if filter.Category != "" && string(loan.Category) != filter.Category {
			continue
		}
		if filter.Status != "" && string(loan.Status) != filter.Status {
			continue
		}
		copied := *loan
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.After(out[j].BorrowedAt) })
	return out, nil
}

func (r *fakeLoanRepo) deleteByStudent(studentCode string) {
	for id, loan := range r.loans {
		if loan.StudentCode == studentCode {
			delete(r.loans, id)
		}
	}
}

func (r *fakeLoanRepo) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, loan := range r.loans {
		if loan.Status == models.LoanActive {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, token string) (*models.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !session.ExpiresAt.After(time.Now()) {
		delete(r.sessions, token)
		return nil, apperrors.ErrSessionExpired
	}
	if session.Revoked {
		return nil, apperrors.ErrSessionRevoked
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	if session, ok := r.sessions[token]; ok {
		session.Revoked = true
	}
	return nil
}
