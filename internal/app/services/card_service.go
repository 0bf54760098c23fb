package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/models/dto"
	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/cardcode"
	"github.com/upac/carnet-backend/internal/pkg/cardstatus"
)

// DownloadBlockedReason is returned when active loans block a card download.
const DownloadBlockedReason = "student has active loans"

// CardService answers card scans, download permission checks and the staff
// dashboard summary. Card status is never stored; every answer is classified
// fresh against a single reference instant.
type CardService struct {
	studentRepo repositories.IStudentRepository
	loanRepo    repositories.ILoanRepository
	logger      zerolog.Logger
}

// NewCardService creates a new CardService
func NewCardService(
	studentRepo repositories.IStudentRepository,
	loanRepo repositories.ILoanRepository,
	logger zerolog.Logger,
) *CardService {
	return &CardService{
		studentRepo: studentRepo,
		loanRepo:    loanRepo,
		logger:      logger,
	}
}

// ValidateScan resolves a scanned payload to the student it names, the
// card's current status and the student's open loan count. Payloads without
// the scan prefix are treated as bare codes.
func (s *CardService) ValidateScan(ctx context.Context, payload string) (*dto.CardValidationResponse, error) {
	code := cardcode.Decode(payload)

	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ActiveByStudent(ctx, code)
	if err != nil {
		return nil, err
	}

	ref := time.Now()
	status := cardstatus.Classify(student.ExpiryDate, student.Active, ref)

	s.logger.Info().Str("code", code).Str("cardStatus", string(status)).Int("activeLoans", len(loans)).Msg("Card scan validated")

	return &dto.CardValidationResponse{
		Payload:     cardcode.Encode(code),
		CardStatus:  string(status),
		ActiveLoans: len(loans),
		Student:     dto.NewStudentResponse(student, ref),
	}, nil
}

// DownloadPermission reports whether a student may download their digital
// card. Open loans block the download; the card status rides along so the
// portal can explain the decision.
func (s *CardService) DownloadPermission(ctx context.Context, code string) (*dto.CardDownloadResponse, error) {
	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ActiveByStudent(ctx, code)
	if err != nil {
		return nil, err
	}

	status := cardstatus.Classify(student.ExpiryDate, student.Active, time.Now())

	resp := &dto.CardDownloadResponse{
		Code:        student.Code,
		Payload:     cardcode.Encode(student.Code),
		CardStatus:  string(status),
		ActiveLoans: len(loans),
		Allowed:     len(loans) == 0,
	}
	if !resp.Allowed {
		resp.Reason = DownloadBlockedReason
	}

	return resp, nil
}

// DashboardSummary counts students per card status plus the open loan total.
// All counts share one reference instant so the breakdown always sums to the
// student total.
func (s *CardService) DashboardSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	activeLoans, err := s.loanRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	ref := time.Now()
	resp := &dto.DashboardResponse{
		TotalStudents: len(students),
		ActiveLoans:   activeLoans,
	}
	for _, student := range students {
		switch cardstatus.Classify(student.ExpiryDate, student.Active, ref) {
		case cardstatus.StatusActive:
			resp.Active++
		case cardstatus.StatusExpiringSoon:
			resp.ExpiringSoon++
		case cardstatus.StatusExpired:
			resp.Expired++
		case cardstatus.StatusInactive:
			resp.Inactive++
		}
	}

	return resp, nil
}
