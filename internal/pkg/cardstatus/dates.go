package cardstatus

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthNames is the fixed Spanish month vocabulary used on printed cards.
// Index 0 is January.
var monthNames = [12]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// ParseExpiry parses an expiry date in either of the two accepted forms:
// the ISO calendar date "2006-01-02" or the long card rendering
// "2 FEBRERO 2026" (month names case-insensitive). The boolean result is
// false for anything else; callers must treat that as a distinct case and
// reject it, never as "not expired".
func ParseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}

	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month := 0
	upper := strings.ToUpper(parts[1])
	for i, name := range monthNames {
		if name == upper {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed days such as "31 FEBRERO 2026".
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

// FormatLong renders a date in the long Spanish form printed on cards,
// e.g. "2 FEBRERO 2026". FormatLong and ParseExpiry round-trip.
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[int(t.Month())-1], t.Year())
}
