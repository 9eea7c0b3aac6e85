package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validatePlan(&schema.Plan)...)
	errs = append(errs, validatePreferences(schema.Preferences)...)
	errs = append(errs, validateSubjects(schema.Subjects)...)

	return errs
}

func validatePlan(p *PlanImport) []error {
	var errs []error

	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, fmt.Errorf("plan.title is required"))
	}
	if _, err := domain.ParseOverduePolicy(p.OverduePolicy); err != nil {
		errs = append(errs, fmt.Errorf("plan.overdue_policy: %w", err))
	}

	return errs
}

func validatePreferences(p *PreferencesImport) []error {
	if p == nil {
		return nil
	}
	var errs []error

	if p.DailyStudyHours != nil && (*p.DailyStudyHours <= 0 || *p.DailyStudyHours > 24) {
		errs = append(errs, fmt.Errorf("preferences.daily_study_hours: %g is outside (0, 24]", *p.DailyStudyHours))
	}
	if p.SessionMinutes != nil && *p.SessionMinutes <= 0 {
		errs = append(errs, fmt.Errorf("preferences.session_minutes must be positive, got %d", *p.SessionMinutes))
	}
	if p.BreakMinutes != nil && *p.BreakMinutes < 0 {
		errs = append(errs, fmt.Errorf("preferences.break_minutes must not be negative, got %d", *p.BreakMinutes))
	}
	if p.StudyDays != nil {
		if _, err := domain.ParseWeekdaySet(*p.StudyDays); err != nil {
			errs = append(errs, fmt.Errorf("preferences.study_days: %w", err))
		}
	}
	if p.FocusMode != "" {
		if _, err := domain.ParseFocusMode(p.FocusMode); err != nil {
			errs = append(errs, fmt.Errorf("preferences.focus_mode: %w", err))
		}
	}
	for i, s := range p.TimeSlots {
		if _, err := domain.ParseTimeSlot(s); err != nil {
			errs = append(errs, fmt.Errorf("preferences.time_slots[%d]: %w", i, err))
		}
	}

	return errs
}

func validateSubjects(subjects []SubjectImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, s := range subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)
		name := strings.TrimSpace(s.Name)

		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if seen[name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate subject %q", prefix, name))
		}
		seen[name] = true

		if s.Priority != "" {
			if _, err := domain.ParsePriority(s.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
			}
		}
		if s.Deadline != nil {
			if _, err := time.Parse(dateLayout, *s.Deadline); err != nil {
				errs = append(errs, fmt.Errorf("%s.deadline: invalid date format %q (expected YYYY-MM-DD)", prefix, *s.Deadline))
			}
		}
		if s.EstimatedHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must be greater than zero", prefix))
		}
		if s.Color != "" && !hexColor.MatchString(s.Color) {
			errs = append(errs, fmt.Errorf("%s.color: %q is not a #RRGGBB color", prefix, s.Color))
		}
	}

	return errs
}
