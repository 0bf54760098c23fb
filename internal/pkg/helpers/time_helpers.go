package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// WholeDaysBetween returns the number of complete 24h periods between from
// and to, flooring partial days. Negative spans floor toward zero days.
func WholeDaysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours() / 24)
}
