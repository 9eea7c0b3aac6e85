package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/google/uuid"
)

const (
	// MinTaskMin is the floor for any study task's length.
	MinTaskMin = 30

	reviewWindowDays   = 3
	practiceWindowDays = 7
	mediumWindowDays   = 14
)

// rotation gives days with no close deadline some variety.
var rotation = []domain.TaskType{domain.TaskStudy, domain.TaskReview, domain.TaskPractice}

// NewTaskID generates task and session identifiers. Tests may replace it.
var NewTaskID = uuid.NewString

// UrgencyMultiplier scales a subject's time share by deadline proximity.
func UrgencyMultiplier(daysUntil int) float64 {
	return clampFloat(8/float64(max(1, daysUntil)), 0.5, 2)
}

// PriorityMultiplier scales a subject's time share by priority.
func PriorityMultiplier(p domain.Priority) float64 {
	switch p {
	case domain.PriorityHigh:
		return 1.5
	case domain.PriorityMedium:
		return 1.0
	default:
		return 0.7
	}
}

// TaskTypeFor picks review inside the last three days, practice inside the
// last week, and otherwise rotates by day index.
func TaskTypeFor(daysUntil, dayIndex int) domain.TaskType {
	switch {
	case daysUntil <= reviewWindowDays:
		return domain.TaskReview
	case daysUntil <= practiceWindowDays:
		return domain.TaskPractice
	default:
		return rotation[((dayIndex%len(rotation))+len(rotation))%len(rotation)]
	}
}

func DifficultyFor(p domain.Priority, daysUntil int) domain.Difficulty {
	switch {
	case p == domain.PriorityHigh && daysUntil <= practiceWindowDays:
		return domain.DifficultyHard
	case p == domain.PriorityMedium || daysUntil <= mediumWindowDays:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyEasy
	}
}

// DistributeDailyTasks splits one day's budget across its assigned subjects.
// Each subject gets at most one task; a break follows every subject but the
// last when it fits. Distribution stops as soon as the next task would not
// fit, so the total never exceeds the daily budget. The first task starts at
// the preferred slot's hour on date.
func DistributeDailyTasks(subjects []domain.Subject, prefs domain.Preferences, dayIndex int, date time.Time) []domain.Task {
	remaining := prefs.DailyBudgetMin()
	day := StartOfDay(date)
	cursor := day.Add(time.Duration(prefs.StartSlot().StartHour()) * time.Hour)

	tasks := make([]domain.Task, 0, len(subjects)*2)
	for i, s := range subjects {
		if remaining <= 0 {
			break
		}

		daysUntil := DaysUntil(day, s.Deadline)
		requested := float64(prefs.SessionDuration) * UrgencyMultiplier(daysUntil) * PriorityMultiplier(s.Priority)
		requested = math.Min(requested, float64(remaining))

		// The session-length ceiling wins over the floor.
		duration := min(max(int(math.Round(requested)), MinTaskMin), prefs.SessionDuration)
		if duration <= 0 || duration > remaining {
			break
		}

		taskType := TaskTypeFor(daysUntil, dayIndex)
		tasks = append(tasks, domain.Task{
			ID:          NewTaskID(),
			SubjectID:   s.ID,
			Title:       taskTitle(taskType, s.Name),
			Description: taskDescription(taskType, s, daysUntil, prefs.FocusMode),
			Duration:    duration,
			Type:        taskType,
			ScheduledAt: cursor,
			Difficulty:  DifficultyFor(s.Priority, daysUntil),
		})
		remaining -= duration
		cursor = cursor.Add(time.Duration(duration) * time.Minute)

		isLast := i == len(subjects)-1
		if isLast || prefs.BreakDuration <= 0 || prefs.BreakDuration > remaining {
			continue
		}
		tasks = append(tasks, domain.Task{
			ID:          NewTaskID(),
			SubjectID:   domain.BreakSubjectID,
			Title:       "Break",
			Description: "Step away from the desk and rest",
			Duration:    prefs.BreakDuration,
			Type:        domain.TaskBreak,
			ScheduledAt: cursor,
			Difficulty:  domain.DifficultyEasy,
		})
		remaining -= prefs.BreakDuration
		cursor = cursor.Add(time.Duration(prefs.BreakDuration) * time.Minute)
	}

	return tasks
}

func taskTitle(t domain.TaskType, subject string) string {
	switch t {
	case domain.TaskReview:
		return "Review " + subject
	case domain.TaskPractice:
		return "Practice " + subject
	case domain.TaskExam:
		return subject + " exam"
	default:
		return "Study " + subject
	}
}

func taskDescription(t domain.TaskType, s domain.Subject, daysUntil int, focus domain.FocusMode) string {
	switch t {
	case domain.TaskReview:
		if s.Deadline != nil && daysUntil <= reviewWindowDays {
			if daysUntil < 0 {
				return fmt.Sprintf("Deadline passed %s ago: consolidate the key concepts of %s", pluralDays(-daysUntil), s.Name)
			}
			return fmt.Sprintf("Deadline in %s: consolidate the key concepts of %s", pluralDays(daysUntil), s.Name)
		}
		return fmt.Sprintf("Revisit earlier %s material and fill the gaps", s.Name)
	case domain.TaskPractice:
		return fmt.Sprintf("Work through problems and past questions for %s", s.Name)
	default:
		switch focus {
		case domain.FocusDeep:
			return fmt.Sprintf("Deep-focus block on new %s material, no distractions", s.Name)
		case domain.FocusLight:
			return fmt.Sprintf("Light pass over new %s material", s.Name)
		default:
			return fmt.Sprintf("Cover new %s material and take notes", s.Name)
		}
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func clampFloat(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
