package scheduler

import (
	"errors"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// ErrNoStudyDays is returned when no weekday is selected for studying.
var ErrNoStudyDays = errors.New("no study days selected: choose at least one weekday")

// EnumerateStudyDays returns the next n calendar days, starting with today,
// whose weekday is in days. Each returned value is midnight in today's location.
func EnumerateStudyDays(today time.Time, days domain.WeekdaySet, n int) ([]time.Time, error) {
	if days.Empty() {
		return nil, ErrNoStudyDays
	}
	if n <= 0 {
		return []time.Time{}, nil
	}

	out := make([]time.Time, 0, n)
	day := StartOfDay(today)
	for len(out) < n {
		if days.Contains(day.Weekday()) {
			out = append(out, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}
