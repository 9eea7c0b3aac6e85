package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateStudyDays_EmptySetFails(t *testing.T) {
	days, err := EnumerateStudyDays(monday, domain.WeekdaySet(0), 5)
	assert.ErrorIs(t, err, ErrNoStudyDays)
	assert.Nil(t, days)
}

func TestEnumerateStudyDays_WeekdaysSkipWeekend(t *testing.T) {
	days, err := EnumerateStudyDays(monday, domain.Weekdays(), 7)
	require.NoError(t, err)
	require.Len(t, days, 7)

	// Mon..Fri, then the following Mon and Tue.
	assert.Equal(t, "2026-03-02", days[0].Format(time.DateOnly))
	assert.Equal(t, "2026-03-06", days[4].Format(time.DateOnly))
	assert.Equal(t, "2026-03-09", days[5].Format(time.DateOnly))
	assert.Equal(t, "2026-03-10", days[6].Format(time.DateOnly))
}

func TestEnumerateStudyDays_TodayIncludedWhenSelected(t *testing.T) {
	days, err := EnumerateStudyDays(monday, domain.NewWeekdaySet(time.Monday), 2)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", days[0].Format(time.DateOnly))
	assert.Equal(t, "2026-03-09", days[1].Format(time.DateOnly))
}

func TestEnumerateStudyDays_ZeroCount(t *testing.T) {
	days, err := EnumerateStudyDays(monday, domain.AllWeekdays(), 0)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestEnumerateStudyDays_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	today := StartOfDay(monday)

	for trial := 0; trial < 200; trial++ {
		set := domain.WeekdaySet(rng.Intn(127) + 1)
		n := rng.Intn(30) + 1
		start := monday.AddDate(0, 0, rng.Intn(10))

		days, err := EnumerateStudyDays(start, set, n)
		require.NoError(t, err)
		require.Len(t, days, n, "trial %d", trial)

		for i, d := range days {
			assert.False(t, d.Before(today), "trial %d: day %d before today", trial, i)
			assert.True(t, set.Contains(d.Weekday()), "trial %d: %s not in %s", trial, d.Weekday(), set)
			if i > 0 {
				assert.True(t, d.After(days[i-1]), "trial %d: days not strictly increasing", trial)
			}
		}
	}
}
