package scheduler

import (
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// monday is 2026-03-02 08:30 UTC.
var monday = time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

func dayPtr(base time.Time, offset int) *time.Time {
	d := StartOfDay(base).AddDate(0, 0, offset)
	return &d
}

func subject(id string, p domain.Priority, deadline *time.Time, hours float64) domain.Subject {
	return domain.Subject{ID: id, Name: id, Priority: p, Deadline: deadline, EstimatedHours: hours}
}

func everyDayPrefs() domain.Preferences {
	p := domain.DefaultPreferences()
	p.StudyDays = domain.AllWeekdays()
	return p
}
