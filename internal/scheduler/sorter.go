package scheduler

import (
	"sort"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// PriorityWeight returns the sort weight of a priority (higher = more important).
func PriorityWeight(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// SortByUrgency orders subjects in place by:
// 1. Days until deadline: soonest first (no deadline counts as NoDeadlineDays)
// 2. Priority weight: higher first
// Subjects equal on both keys keep their input order.
func SortByUrgency(subjects []domain.Subject, today time.Time) {
	sort.SliceStable(subjects, func(i, j int) bool {
		a, b := subjects[i], subjects[j]

		daysA, daysB := DaysUntil(today, a.Deadline), DaysUntil(today, b.Deadline)
		if daysA != daysB {
			return daysA < daysB
		}

		return PriorityWeight(a.Priority) > PriorityWeight(b.Priority)
	})
}
