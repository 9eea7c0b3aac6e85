package scheduler

import (
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// StreakLookbackDays bounds how far back ComputeAnalytics walks for a streak.
const StreakLookbackDays = 30

// ComputeAnalytics summarizes sessions. Breaks count toward total hours but
// not toward task counts or efficiency.
func ComputeAnalytics(sessions []domain.Session, now time.Time) domain.Analytics {
	var a domain.Analytics
	a.SubjectMinutes = make(map[string]int)

	totalMin := 0
	for _, s := range sessions {
		for _, t := range s.Tasks {
			totalMin += t.Duration
			if t.IsBreak() {
				continue
			}
			a.TotalTasks++
			a.SubjectMinutes[t.SubjectID] += t.Duration
			if t.Completed {
				a.CompletedTasks++
			}
		}
	}

	a.TotalHours = float64(totalMin) / 60
	if a.TotalTasks > 0 {
		a.Efficiency = float64(a.CompletedTasks) / float64(a.TotalTasks) * 100
	}
	a.Streak = ComputeStreak(sessions, now)
	return a
}

// ComputeStreak counts consecutive calendar days with at least one completed
// task, walking back from today, or from yesterday when today has nothing
// completed yet. It stops at the first gap and never exceeds StreakLookbackDays.
func ComputeStreak(sessions []domain.Session, now time.Time) int {
	active := make(map[string]bool)
	for i := range sessions {
		if sessions[i].HasCompletedTask() {
			active[sessions[i].Date.Format(time.DateOnly)] = true
		}
	}

	day := StartOfDay(now)
	if !active[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for streak < StreakLookbackDays && active[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
