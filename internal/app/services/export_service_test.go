package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upac/carnet-backend/internal/app/models"
	"github.com/upac/carnet-backend/internal/pkg/export"
)

func TestExportStudentsJSON(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewExportService(repo, testLogger)

	seedStudent(t, repo, "12300298", "1006543210", true)
	seedStudent(t, repo, "12300299", "1006543211", true)

	data, err := svc.StudentsJSON(context.Background())
	require.NoError(t, err)

	var students []models.Student
	require.NoError(t, json.Unmarshal(data, &students))
	assert.Len(t, students, 2)
}

func TestExportStudentsCSVReplacesPhoto(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewExportService(repo, testLogger)

	student := seedStudent(t, repo, "12300298", "1006543210", true)
	photo := "data:image/png;base64,iVBORw0KGgo="
	student.Photo = &photo
	require.NoError(t, repo.Update(context.Background(), student))

	data, err := svc.StudentsCSV(context.Background())
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"`+export.PhotoPlaceholder+`"`)
	assert.NotContains(t, body, "base64")

	lines := strings.Split(strings.TrimSpace(body), "\n")
	assert.Len(t, lines, 2) // header + one student
}
