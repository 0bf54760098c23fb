package cardstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refDate = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return refDate.AddDate(0, 0, offset)
}

func TestClassifyInactiveWinsRegardlessOfExpiry(t *testing.T) {
	testCases := []struct {
		name   string
		expiry time.Time
	}{
		{"expired long ago", day(-400)},
		{"expired yesterday", day(-1)},
		{"expires today", day(0)},
		{"inside warning window", day(15)},
		{"far in the future", day(365)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, StatusInactive, Classify(tt.expiry, false, refDate))
		})
	}
}

func TestClassifyActiveFlag(t *testing.T) {
	testCases := []struct {
		name     string
		expiry   time.Time
		expected Status
	}{
		{"expired yesterday", day(-1), StatusExpired},
		{"expired a year ago", day(-365), StatusExpired},
		{"expires today", day(0), StatusExpiringSoon},
		{"expires in 15 days", day(15), StatusExpiringSoon},
		{"expires in 30 days", day(30), StatusExpiringSoon},
		{"expires in 31 days", day(31), StatusActive},
		{"expires next year", day(365), StatusActive},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.expiry, true, refDate))
		})
	}
}

func TestIsExpiredUsesDayPrecision(t *testing.T) {
	// Expiry earlier the same day is not expired: comparison happens at day
	// precision, not instant precision.
	sameDayEarlier := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsExpired(sameDayEarlier, refDate))

	endOfYesterday := time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC)
	assert.True(t, IsExpired(endOfYesterday, refDate))
}

func TestClassifyAcrossTimeZones(t *testing.T) {
	// Expiry dates load from the database as UTC midnights. A server clock
	// in Colombia (UTC-5) on the expiry's own calendar day sits after that
	// midnight as an instant, but the card is still valid through the day.
	bogota := time.FixedZone("America/Bogota", -5*3600)
	expiry := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	sameDayRef := time.Date(2026, time.March, 10, 10, 0, 0, 0, bogota)

	assert.False(t, IsExpired(expiry, sameDayRef))
	assert.Equal(t, 0, DaysUntil(expiry, sameDayRef))
	assert.Equal(t, StatusExpiringSoon, Classify(expiry, true, sameDayRef))

	// The day after, in either zone, it is expired
	nextDayRef := time.Date(2026, time.March, 11, 1, 0, 0, 0, bogota)
	assert.True(t, IsExpired(expiry, nextDayRef))
	assert.Equal(t, StatusExpired, Classify(expiry, true, nextDayRef))

	// The window edge holds across zones too
	farExpiry := time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysUntil(farExpiry, sameDayRef))
	assert.Equal(t, StatusExpiringSoon, Classify(farExpiry, true, sameDayRef))
}

func TestDaysUntil(t *testing.T) {
	testCases := []struct {
		offset   int
		expected int
	}{
		{0, 0},
		{1, 1},
		{30, 30},
		{31, 31},
		{-1, -1},
		{-10, -10},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, DaysUntil(day(tt.offset), refDate))
	}
}

func TestIsExpiringSoonWindow(t *testing.T) {
	assert.True(t, IsExpiringSoon(day(0), refDate))
	assert.True(t, IsExpiringSoon(day(30), refDate))
	assert.False(t, IsExpiringSoon(day(31), refDate))
	assert.False(t, IsExpiringSoon(day(-1), refDate))
}
