package scheduler

import (
	"testing"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ids(subjects []domain.Subject) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = s.ID
	}
	return out
}

func TestSortByUrgency_DeadlineThenPriority(t *testing.T) {
	subjects := []domain.Subject{
		subject("none-high", domain.PriorityHigh, nil, 5),
		subject("far-low", domain.PriorityLow, dayPtr(monday, 20), 5),
		subject("near-low", domain.PriorityLow, dayPtr(monday, 2), 5),
		subject("near-high", domain.PriorityHigh, dayPtr(monday, 2), 5),
	}

	SortByUrgency(subjects, monday)

	assert.Equal(t, []string{"near-high", "near-low", "far-low", "none-high"}, ids(subjects))
}

func TestSortByUrgency_StableOnTies(t *testing.T) {
	subjects := []domain.Subject{
		subject("b", domain.PriorityMedium, nil, 1),
		subject("a", domain.PriorityMedium, nil, 1),
	}

	SortByUrgency(subjects, monday)

	assert.Equal(t, []string{"b", "a"}, ids(subjects))
}
