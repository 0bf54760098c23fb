package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/app/models/dto"
)

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, code string) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

// IStaffRepository defines the interface for staff database operations
type IStaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context) ([]*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, email string) error
}

// ILoanRepository defines the interface for loan database operations
type ILoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	Return(ctx context.Context, id string) (*models.Loan, error)
	ActiveByStudent(ctx context.Context, studentCode string) ([]*models.Loan, error)
	List(ctx context.Context, filter dto.LoanFilter) ([]*models.Loan, error)
	CountActive(ctx context.Context) (int, error)
}

// ISessionRepository defines the interface for session database operations
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	StaffRepository   *StaffRepository
	LoanRepository    *LoanRepository
	SessionRepository *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		StaffRepository:   NewStaffRepository(db),
		LoanRepository:    NewLoanRepository(db),
		SessionRepository: NewSessionRepository(db),
	}
}
