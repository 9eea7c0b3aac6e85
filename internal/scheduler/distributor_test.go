package scheduler

import (
	"testing"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgencyMultiplier(t *testing.T) {
	assert.Equal(t, 2.0, UrgencyMultiplier(1))
	assert.Equal(t, 2.0, UrgencyMultiplier(-3))
	assert.Equal(t, 2.0, UrgencyMultiplier(4))
	assert.Equal(t, 1.0, UrgencyMultiplier(8))
	assert.Equal(t, 0.5, UrgencyMultiplier(NoDeadlineDays))
}

func TestTaskTypeFor(t *testing.T) {
	assert.Equal(t, domain.TaskReview, TaskTypeFor(3, 0))
	assert.Equal(t, domain.TaskReview, TaskTypeFor(-1, 5))
	assert.Equal(t, domain.TaskPractice, TaskTypeFor(7, 0))
	assert.Equal(t, domain.TaskStudy, TaskTypeFor(30, 0))
	assert.Equal(t, domain.TaskReview, TaskTypeFor(30, 1))
	assert.Equal(t, domain.TaskPractice, TaskTypeFor(30, 2))
	assert.Equal(t, domain.TaskStudy, TaskTypeFor(30, 3))
}

func TestDifficultyFor(t *testing.T) {
	assert.Equal(t, domain.DifficultyHard, DifficultyFor(domain.PriorityHigh, 7))
	assert.Equal(t, domain.DifficultyMedium, DifficultyFor(domain.PriorityHigh, 10))
	assert.Equal(t, domain.DifficultyMedium, DifficultyFor(domain.PriorityMedium, 100))
	assert.Equal(t, domain.DifficultyMedium, DifficultyFor(domain.PriorityLow, 14))
	assert.Equal(t, domain.DifficultyEasy, DifficultyFor(domain.PriorityLow, 15))
	assert.Equal(t, domain.DifficultyEasy, DifficultyFor(domain.PriorityHigh, NoDeadlineDays))
}

func TestDistributeDailyTasks_MathAndHistory(t *testing.T) {
	prefs := everyDayPrefs()
	math := subject("math", domain.PriorityHigh, dayPtr(monday, 3), 10)
	history := subject("history", domain.PriorityLow, nil, 5)

	tasks := DistributeDailyTasks([]domain.Subject{math, history}, prefs, 0, monday)

	require.Len(t, tasks, 3)
	assert.Equal(t, "math", tasks[0].SubjectID)
	assert.Equal(t, domain.TaskReview, tasks[0].Type)
	assert.Equal(t, 45, tasks[0].Duration)
	assert.Equal(t, domain.DifficultyHard, tasks[0].Difficulty)
	assert.Contains(t, tasks[0].Description, "Deadline in 3 days")

	assert.True(t, tasks[1].IsBreak())
	assert.Equal(t, domain.BreakSubjectID, tasks[1].SubjectID)
	assert.Equal(t, 15, tasks[1].Duration)

	assert.Equal(t, "history", tasks[2].SubjectID)
	assert.Equal(t, 30, tasks[2].Duration)
	assert.Equal(t, domain.TaskStudy, tasks[2].Type)
	assert.Equal(t, domain.DifficultyEasy, tasks[2].Difficulty)
}

func TestDistributeDailyTasks_ScheduledAtFollowsSlot(t *testing.T) {
	prefs := everyDayPrefs()
	prefs.PreferredTimeSlots = []domain.TimeSlot{domain.SlotEvening}
	subjects := []domain.Subject{
		subject("a", domain.PriorityMedium, nil, 1),
		subject("b", domain.PriorityMedium, nil, 1),
	}

	tasks := DistributeDailyTasks(subjects, prefs, 0, monday)

	require.Len(t, tasks, 3)
	start := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, start, tasks[0].ScheduledAt)
	assert.Equal(t, start.Add(30*time.Minute), tasks[1].ScheduledAt)
	assert.Equal(t, start.Add(45*time.Minute), tasks[2].ScheduledAt)
}

func TestDistributeDailyTasks_StopsWhenBudgetExhausted(t *testing.T) {
	prefs := everyDayPrefs()
	prefs.DailyStudyHours = 1.5 // 90 min
	prefs.SessionDuration = 60
	prefs.BreakDuration = 10
	subjects := []domain.Subject{
		subject("a", domain.PriorityHigh, dayPtr(monday, 2), 5),
		subject("b", domain.PriorityHigh, dayPtr(monday, 2), 5),
		subject("c", domain.PriorityHigh, dayPtr(monday, 2), 5),
	}

	tasks := DistributeDailyTasks(subjects, prefs, 0, monday)

	// a: 60, break: 10, b: min(120, 20) -> floored to 30 does not fit in 20.
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].SubjectID)
	assert.True(t, tasks[1].IsBreak())
	assert.LessOrEqual(t, totalMinutes(tasks), 90)
}

func TestDistributeDailyTasks_NoBreakAfterLast(t *testing.T) {
	tasks := DistributeDailyTasks([]domain.Subject{subject("solo", domain.PriorityLow, nil, 1)}, everyDayPrefs(), 0, monday)

	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].IsBreak())
}

func TestDistributeDailyTasks_SkipsBreakThatDoesNotFit(t *testing.T) {
	prefs := everyDayPrefs()
	prefs.DailyStudyHours = 1 // 60 min
	prefs.SessionDuration = 45
	prefs.BreakDuration = 20
	subjects := []domain.Subject{
		subject("a", domain.PriorityHigh, dayPtr(monday, 1), 5),
		subject("b", domain.PriorityLow, nil, 5),
	}

	tasks := DistributeDailyTasks(subjects, prefs, 0, monday)

	// 45 leaves 15: the break does not fit and neither does a 30 minute task.
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].SubjectID)
}

func TestDistributeDailyTasks_SessionCeilingBeatsFloor(t *testing.T) {
	prefs := everyDayPrefs()
	prefs.SessionDuration = 20

	tasks := DistributeDailyTasks([]domain.Subject{subject("a", domain.PriorityLow, nil, 1)}, prefs, 0, monday)

	require.Len(t, tasks, 1)
	assert.Equal(t, 20, tasks[0].Duration)
}

func TestDistributeDailyTasks_NoSubjects(t *testing.T) {
	assert.Empty(t, DistributeDailyTasks(nil, everyDayPrefs(), 0, monday))
}

func totalMinutes(tasks []domain.Task) int {
	total := 0
	for _, t := range tasks {
		total += t.Duration
	}
	return total
}
