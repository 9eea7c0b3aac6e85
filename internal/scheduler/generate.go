package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// DefaultHorizonDays is the number of working days a generated plan covers.
const DefaultHorizonDays = 14

// MaxHorizonDays bounds how many working days one generation may cover.
const MaxHorizonDays = 366

// ErrHorizonTooLong is returned for a horizon above MaxHorizonDays.
var ErrHorizonTooLong = errors.New("horizon too long")

// CheckHorizon rejects a horizon above MaxHorizonDays. Zero and negative
// values are left for the caller to default.
func CheckHorizon(days int) error {
	if days > MaxHorizonDays {
		return fmt.Errorf("%w: %d working days (max %d)", ErrHorizonTooLong, days, MaxHorizonDays)
	}
	return nil
}

type GenerateOptions struct {
	Today         time.Time
	HorizonDays   int
	OverduePolicy domain.OverduePolicy
}

type GenerateResult struct {
	Sessions  []domain.Session
	Analytics domain.Analytics
	Risks     []RiskResult
	// Overdue and Dropped carry the allocator's overdue report.
	Overdue   []string
	Dropped   []string
}

// GenerateSessions runs the full pipeline: enumerate working days, allocate
// subjects by deadline, distribute each day's tasks and summarize. It only
// fails when the preferences select no study days. An empty subject list
// yields sessions with no tasks.
func GenerateSessions(subjects []domain.Subject, prefs domain.Preferences, opts GenerateOptions) (GenerateResult, error) {
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = DefaultHorizonDays
	}
	if err := CheckHorizon(opts.HorizonDays); err != nil {
		return GenerateResult{}, err
	}
	if opts.OverduePolicy == "" {
		opts.OverduePolicy = domain.OverdueScheduleToday
	}

	days, err := EnumerateStudyDays(opts.Today, prefs.StudyDays, opts.HorizonDays)
	if err != nil {
		return GenerateResult{}, err
	}

	alloc := AllocateByDeadline(subjects, days, opts.Today, opts.OverduePolicy)

	sessions := make([]domain.Session, 0, len(days))
	for i, day := range days {
		start := day.Add(time.Duration(prefs.StartSlot().StartHour()) * time.Hour)
		sess := domain.Session{
			ID:        NewTaskID(),
			Date:      day,
			StartTime: start,
			Tasks:     DistributeDailyTasks(alloc.Days[i], prefs, i, day),
		}
		sess.Recompute()
		sessions = append(sessions, sess)
	}

	return GenerateResult{
		Sessions:  sessions,
		Analytics: ComputeAnalytics(sessions, opts.Today),
		Risks:     ComputePlanRisk(subjects, sessions, opts.Today),
		Overdue:   alloc.Overdue,
		Dropped:   alloc.Dropped,
	}, nil
}
