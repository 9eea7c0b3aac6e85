package scheduler

import (
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// Allocation maps each working-day index to the subjects that get attention
// that day, in urgency order.
type Allocation struct {
	Days    [][]domain.Subject
	// Overdue lists subjects whose deadline is already before today.
	Overdue []string
	// Dropped lists overdue subjects left out under OverdueDrop.
	Dropped []string
}

// MaxDayIndex returns the index of the last working day strictly before the
// subject's deadline, or the last index when there is no deadline. The result
// is clamped to [0, len(days)-1], so a deadline on or before the first
// working day lands on day 0.
func MaxDayIndex(s domain.Subject, days []time.Time) int {
	if len(days) == 0 {
		return -1
	}
	if s.Deadline == nil {
		return len(days) - 1
	}

	deadlineDay := CalendarDay(*s.Deadline, days[0].Location())
	idx := -1
	for i, d := range days {
		if d.Before(deadlineDay) {
			idx = i
		}
	}
	return clamp(idx, 0, len(days)-1)
}

// AllocateByDeadline assigns every subject to every working day from day 0
// up to its MaxDayIndex. Daily time share is left to the distributor.
func AllocateByDeadline(subjects []domain.Subject, days []time.Time, today time.Time, policy domain.OverduePolicy) Allocation {
	alloc := Allocation{Days: make([][]domain.Subject, len(days))}
	if len(days) == 0 {
		return alloc
	}

	sorted := make([]domain.Subject, len(subjects))
	copy(sorted, subjects)
	SortByUrgency(sorted, today)

	for _, s := range sorted {
		if s.Deadline != nil && DaysUntil(today, s.Deadline) < 0 {
			alloc.Overdue = append(alloc.Overdue, s.ID)
			if policy == domain.OverdueDrop {
				alloc.Dropped = append(alloc.Dropped, s.ID)
				continue
			}
		}

		last := MaxDayIndex(s, days)
		for i := 0; i <= last; i++ {
			alloc.Days[i] = append(alloc.Days[i], s)
		}
	}

	return alloc
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
