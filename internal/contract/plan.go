package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
)

// DateLayout is the calendar-date form accepted for deadlines.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339. A bare date is midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

type CreatePlanRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Preferences   *domain.Preferences `json:"preferences,omitempty"`
	OverduePolicy string              `json:"overduePolicy,omitempty"`
}

func (r CreatePlanRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Preferences != nil {
		if err := r.Preferences.Validate(); err != nil {
			return err
		}
	}
	_, err := domain.ParseOverduePolicy(r.OverduePolicy)
	return err
}

// SubjectInput is the wire form of a subject; enums and dates arrive as
// strings and are checked by ToSubject.
type SubjectInput struct {
	Name           string  `json:"name"`
	Priority       string  `json:"priority"`
	Deadline       string  `json:"deadline,omitempty"`
	EstimatedHours float64 `json:"estimatedHours"`
	Color          string  `json:"color,omitempty"`
}

func (in SubjectInput) ToSubject(id string, loc *time.Location) (domain.Subject, error) {
	priority := in.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}
	p, err := domain.ParsePriority(priority)
	if err != nil {
		return domain.Subject{}, err
	}
	s := domain.Subject{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Priority:       p,
		EstimatedHours: in.EstimatedHours,
		Color:          in.Color,
	}
	if in.Deadline != "" {
		d, err := ParseDate(in.Deadline, loc)
		if err != nil {
			return domain.Subject{}, err
		}
		s.Deadline = &d
	}
	if err := s.Validate(); err != nil {
		return domain.Subject{}, err
	}
	return s, nil
}

type GenerateRequest struct {
	// Now overrides the clock; mostly for tests and previews.
	Now           *time.Time `json:"now,omitempty"`
	HorizonDays   int        `json:"horizonDays,omitempty"`
	OverduePolicy string     `json:"overduePolicy,omitempty"`
}

type GenerateResponse struct {
	Plan    *domain.Plan           `json:"plan"`
	Risks   []scheduler.RiskResult `json:"risks"`
	Overdue []string               `json:"overdue,omitempty"`
	Dropped []string               `json:"dropped,omitempty"`
}

// PreviewRequest generates a schedule without touching storage.
type PreviewRequest struct {
	Subjects      []SubjectInput      `json:"subjects"`
	Preferences   *domain.Preferences `json:"preferences,omitempty"`
	Today         string              `json:"today,omitempty"`
	HorizonDays   int                 `json:"horizonDays,omitempty"`
	OverduePolicy string              `json:"overduePolicy,omitempty"`
}

type PreviewResponse struct {
	Sessions  []domain.Session       `json:"sessions"`
	Analytics domain.Analytics       `json:"analytics"`
	Risks     []scheduler.RiskResult `json:"risks"`
	Overdue   []string               `json:"overdue,omitempty"`
	Dropped   []string               `json:"dropped,omitempty"`
}

type ToggleTaskRequest struct {
	// Completed sets the flag explicitly; nil flips it.
	Completed *bool `json:"completed,omitempty"`
}

type ToggleTaskResponse struct {
	TaskID    string           `json:"taskId"`
	Completed bool             `json:"completed"`
	Session   domain.Session   `json:"session"`
	Analytics domain.Analytics `json:"analytics"`
}

type AnalyticsResponse struct {
	PlanID    string                 `json:"planId"`
	Analytics domain.Analytics       `json:"analytics"`
	Risks     []scheduler.RiskResult `json:"risks"`
}

// TodayView is the active plan's session for one calendar day.
type TodayView struct {
	PlanID    string            `json:"planId"`
	PlanTitle string            `json:"planTitle"`
	Date      time.Time         `json:"date"`
	Session   *domain.Session   `json:"session,omitempty"`
	Subjects  map[string]string `json:"subjects"`
}
