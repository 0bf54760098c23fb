package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/upac/carnet-backend/internal/app/repositories"
	"github.com/upac/carnet-backend/internal/pkg/export"
)

// ExportService produces staff-facing downloads of the student roster.
type ExportService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// StudentsJSON exports every student record as indented JSON, photos inline.
func (s *ExportService) StudentsJSON(ctx context.Context) ([]byte, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := export.StudentsJSON(students)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("count", len(students)).Msg("Students exported as JSON")
	return data, nil
}

// StudentsCSV exports every student record in the legacy CSV shape.
func (s *ExportService) StudentsCSV(ctx context.Context) ([]byte, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("count", len(students)).Msg("Students exported as CSV")
	return export.StudentsCSV(students), nil
}
