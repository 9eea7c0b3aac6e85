package scheduler

import (
	"math"
	"time"
)

// NoDeadlineDays stands in for the distance to a deadline that does not exist.
const NoDeadlineDays = 365

// CalendarDay returns midnight of t's calendar date in loc. The year, month
// and day are read from t as given, so a date-only deadline stored in UTC
// keeps its date when compared in a local zone.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return CalendarDay(t, t.Location())
}

// DaysBetween counts whole calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := CalendarDay(b, a.Location())
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// DaysUntil is the number of calendar days from ref to deadline, or
// NoDeadlineDays when deadline is nil.
func DaysUntil(ref time.Time, deadline *time.Time) int {
	if deadline == nil {
		return NoDeadlineDays
	}
	return DaysBetween(ref, *deadline)
}
