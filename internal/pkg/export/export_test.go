package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upac/carnet-backend/internal/app/models"
)

func sampleStudent() *models.Student {
	photo := "iVBORw0KGgoAAAANSUhEUg=="
	blood := "O+"
	return &models.Student{
		Code:       "12300298",
		NationalID: "1006543210",
		Name:       "Laura",
		LastName:   "Quintero",
		Program:    "Ingeniería de Sistemas",
		Sede:       "Barrancabermeja",
		BloodType:  &blood,
		Photo:      &photo,
		ExpiryDate: time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Active:     true,
		FirstLogin: true,
		CreatedAt:  time.Date(2025, time.January, 2, 8, 30, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, time.January, 2, 8, 30, 0, 0, time.UTC),
	}
}

func TestStudentsCSVQuotesEveryValue(t *testing.T) {
	data := StudentsCSV([]*models.Student{sampleStudent()})
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"code","nationalId","name","lastName","program","sede","bloodType","expiryDate","active","firstLogin","photo","createdAt","updatedAt"`, lines[0])
	assert.Contains(t, lines[1], `"12300298"`)
	assert.Contains(t, lines[1], `"2026-12-31"`)
	assert.Contains(t, lines[1], `"true"`)
}

func TestStudentsCSVReplacesPhotoPayload(t *testing.T) {
	s := sampleStudent()
	data := string(StudentsCSV([]*models.Student{s}))

	assert.NotContains(t, data, *s.Photo)
	assert.Contains(t, data, `"Foto incluida"`)
}

func TestStudentsCSVEmptyPhotoStaysEmpty(t *testing.T) {
	s := sampleStudent()
	s.Photo = nil
	data := string(StudentsCSV([]*models.Student{s}))

	assert.NotContains(t, data, "Foto incluida")
}

func TestStudentsCSVDoublesEmbeddedQuotes(t *testing.T) {
	s := sampleStudent()
	s.Program = `Tecnología "Agro"`
	data := string(StudentsCSV([]*models.Student{s}))

	assert.Contains(t, data, `"Tecnología ""Agro"""`)
}

func TestStudentsJSONKeepsPhotoInline(t *testing.T) {
	s := sampleStudent()
	data, err := StudentsJSON([]*models.Student{s})
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, *s.Photo, decoded[0]["photo"])
	assert.Equal(t, "12300298", decoded[0]["code"])
	// Password material never leaves through an export.
	_, hasHash := decoded[0]["passwordHash"]
	assert.False(t, hasHash)
}
