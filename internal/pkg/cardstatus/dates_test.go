package cardstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiryISO(t *testing.T) {
	parsed, ok := ParseExpiry("2026-02-02")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseExpiryLongForm(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
	}{
		{"2 FEBRERO 2026", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)},
		{"15 marzo 2027", time.Date(2027, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"31 Diciembre 2025", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"  1 enero 2030  ", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range testCases {
		parsed, ok := ParseExpiry(tt.input)
		require.True(t, ok, "expected %q to parse", tt.input)
		assert.Equal(t, tt.expected, parsed)
	}
}

func TestParseExpiryRejectsGarbage(t *testing.T) {
	testCases := []string{
		"",
		"   ",
		"not a date",
		"2026/02/02",
		"32 ENERO 2026",
		"0 ENERO 2026",
		"31 FEBRERO 2026",
		"15 SMARCH 2026",
		"15 MARZO",
		"MARZO 15 2026",
		"15 MARZO veinte",
	}

	for _, input := range testCases {
		_, ok := ParseExpiry(input)
		assert.False(t, ok, "expected %q to be rejected", input)
	}
}

func TestLongFormRoundTrip(t *testing.T) {
	// Every month participates in the round trip, not just a lucky subset.
	for month := time.January; month <= time.December; month++ {
		date := time.Date(2026, month, 17, 0, 0, 0, 0, time.UTC)
		parsed, ok := ParseExpiry(FormatLong(date))
		require.True(t, ok)
		assert.Equal(t, date, parsed)
	}
}

func TestFormatLong(t *testing.T) {
	assert.Equal(t, "2 FEBRERO 2026", FormatLong(time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 DICIEMBRE 2025", FormatLong(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
