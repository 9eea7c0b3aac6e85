package scheduler

import (
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type RiskInput struct {
	Subject      domain.Subject
	ScheduledMin int
	Today        time.Time
}

type RiskResult struct {
	SubjectID    string           `json:"subjectId"`
	SubjectName  string           `json:"subjectName"`
	Level        domain.RiskLevel `json:"level"`
	DaysLeft     *int             `json:"daysLeft,omitempty"`
	EstimatedMin int              `json:"estimatedMin"`
	ScheduledMin int              `json:"scheduledMin"`
	CoveragePct  float64          `json:"coveragePct"`
}

// ComputeSubjectRisk compares the minutes scheduled for a subject with its
// estimate. A subject with no deadline is always on track; one whose
// deadline has passed is always critical.
func ComputeSubjectRisk(input RiskInput) RiskResult {
	estimated := int(input.Subject.EstimatedHours * 60)
	result := RiskResult{
		SubjectID:    input.Subject.ID,
		SubjectName:  input.Subject.Name,
		EstimatedMin: estimated,
		ScheduledMin: input.ScheduledMin,
	}
	if estimated > 0 {
		result.CoveragePct = float64(input.ScheduledMin) / float64(estimated) * 100
	} else {
		result.CoveragePct = 100
	}

	if input.Subject.Deadline == nil {
		result.Level = domain.RiskOnTrack
		return result
	}

	daysLeft := DaysUntil(input.Today, input.Subject.Deadline)
	result.DaysLeft = &daysLeft

	switch {
	case daysLeft < 0:
		result.Level = domain.RiskCritical
	case result.CoveragePct >= 100:
		result.Level = domain.RiskOnTrack
	case result.CoveragePct >= 50:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskCritical
	}
	return result
}

// ComputePlanRisk evaluates every subject against the minutes the sessions
// give it, in subject order.
func ComputePlanRisk(subjects []domain.Subject, sessions []domain.Session, today time.Time) []RiskResult {
	scheduled := make(map[string]int)
	for _, s := range sessions {
		for _, t := range s.Tasks {
			if !t.IsBreak() {
				scheduled[t.SubjectID] += t.Duration
			}
		}
	}

	out := make([]RiskResult, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, ComputeSubjectRisk(RiskInput{
			Subject:      s,
			ScheduledMin: scheduled[s.ID],
			Today:        today,
		}))
	}
	return out
}
