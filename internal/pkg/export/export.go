// Package export serializes student records for staff downloads. The CSV
// shape matches what the previous portal produced so existing spreadsheets
// keep importing cleanly: one header row, every value double-quoted,
// embedded quotes doubled, and photo payloads replaced by a placeholder.
package export

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/upac/carnet-backend/internal/app/models"
)

// PhotoPlaceholder replaces the raw photo payload in CSV exports.
const PhotoPlaceholder = "Foto incluida"

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"code", "nationalId", "name", "lastName", "program", "sede",
	"bloodType", "expiryDate", "active", "firstLogin", "photo",
	"createdAt", "updatedAt",
}

// StudentsJSON serializes the full record list, photo payloads included
// inline, exactly as stored.
func StudentsJSON(students []*models.Student) ([]byte, error) {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding students export")
	}
	return data, nil
}

// StudentsCSV serializes students as CSV. Every value is double-quoted with
// embedded quotes doubled; the photo column carries PhotoPlaceholder when a
// photo exists instead of the base64 payload.
func StudentsCSV(students []*models.Student) []byte {
	var buf bytes.Buffer
	writeRow(&buf, csvHeader)

	for _, s := range students {
		bloodType := ""
		if s.BloodType != nil {
			bloodType = *s.BloodType
		}
		photo := ""
		if s.Photo != nil && *s.Photo != "" {
			photo = PhotoPlaceholder
		}

		writeRow(&buf, []string{
			s.Code,
			s.NationalID,
			s.Name,
			s.LastName,
			s.Program,
			s.Sede,
			bloodType,
			s.ExpiryDate.Format("2006-01-02"),
			strconv.FormatBool(s.Active),
			strconv.FormatBool(s.FirstLogin),
			photo,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return buf.Bytes()
}

// writeRow emits one CSV row with unconditional quoting. encoding/csv quotes
// only when it must, which breaks consumers of the legacy export format.
func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
