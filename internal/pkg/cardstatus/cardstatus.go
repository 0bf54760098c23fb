// Package cardstatus derives the validity state of a student card from its
// expiry date and active flag. Everything here is pure: the reference instant
// is always passed in so dashboard counts and per-record badges computed in
// the same pass agree with each other.
package cardstatus

import "time"

// Status is the derived validity state of a card.
type Status string

const (
	// StatusActive means the card is usable and not close to expiry.
	StatusActive Status = "ACTIVE"
	// StatusExpiringSoon means the card expires within the warning window.
	StatusExpiringSoon Status = "EXPIRING_SOON"
	// StatusExpired means the expiry date has passed.
	StatusExpired Status = "EXPIRED"
	// StatusInactive means the card was explicitly deactivated.
	StatusInactive Status = "INACTIVE"
)

// ExpiringSoonWindowDays is the number of days before expiry at which a card
// starts reporting EXPIRING_SOON.
const ExpiringSoonWindowDays = 30

// truncateToDay drops the time-of-day component, keeping the calendar day as
// observed in loc.
func truncateToDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// IsExpired reports whether expiry, at day precision, is strictly earlier
// than ref. Both instants are read in the expiry's location: expiry dates are
// stored as midnights, and a reference clock in another zone must not shift
// which calendar day the card stops being valid on.
func IsExpired(expiry, ref time.Time) bool {
	loc := expiry.Location()
	return truncateToDay(expiry, loc).Before(truncateToDay(ref, loc))
}

// DaysUntil returns the number of whole days from ref until expiry, rounding
// partial days up. Same-day expiry yields 0, yesterday yields -1.
func DaysUntil(expiry, ref time.Time) int {
	loc := expiry.Location()
	diff := truncateToDay(expiry, loc).Sub(truncateToDay(ref, loc))
	days := diff.Hours() / 24
	if days != float64(int(days)) && days > 0 {
		return int(days) + 1
	}
	return int(days)
}

// IsExpiringSoon reports whether expiry falls inside the warning window
// [0, ExpiringSoonWindowDays] days from ref.
func IsExpiringSoon(expiry, ref time.Time) bool {
	d := DaysUntil(expiry, ref)
	return d >= 0 && d <= ExpiringSoonWindowDays
}

// Classify derives the card status. Priority order is
// INACTIVE > EXPIRED > EXPIRING_SOON > ACTIVE: a deactivated card reports
// INACTIVE no matter what its expiry date says.
func Classify(expiry time.Time, active bool, ref time.Time) Status {
	if !active {
		return StatusInactive
	}
	if IsExpired(expiry, ref) {
		return StatusExpired
	}
	if IsExpiringSoon(expiry, ref) {
		return StatusExpiringSoon
	}
	return StatusActive
}
