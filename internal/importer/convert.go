package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// Convert transforms a validated ImportSchema into a plan ready for
// persistence. Missing preferences fall back to defaults; dates are read in
// loc. The caller assigns the user, activity and timestamps.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, defaults domain.Preferences, loc *time.Location) (*domain.Plan, error) {
	policy, err := domain.ParseOverduePolicy(schema.Plan.OverduePolicy)
	if err != nil {
		return nil, err
	}
	prefs, err := convertPreferences(schema.Preferences, defaults)
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(schema.Plan.Title),
		Description:   schema.Plan.Description,
		OverduePolicy: policy,
		Subjects:      []domain.Subject{},
		Preferences:   prefs,
		Sessions:      []domain.Session{},
	}

	for i, s := range schema.Subjects {
		priority := s.Priority
		if priority == "" {
			priority = string(domain.PriorityMedium)
		}
		p, err := domain.ParsePriority(priority)
		if err != nil {
			return nil, fmt.Errorf("subjects[%d]: %w", i, err)
		}

		subject := domain.Subject{
			ID:             uuid.NewString(),
			Name:           strings.TrimSpace(s.Name),
			Priority:       p,
			EstimatedHours: s.EstimatedHours,
			Color:          s.Color,
		}
		if s.Deadline != nil {
			d, err := time.ParseInLocation(dateLayout, *s.Deadline, loc)
			if err != nil {
				return nil, fmt.Errorf("subjects[%d]: parsing deadline: %w", i, err)
			}
			subject.Deadline = &d
		}
		if err := plan.AddSubject(subject); err != nil {
			return nil, fmt.Errorf("subjects[%d]: %w", i, err)
		}
	}

	return plan, nil
}

func convertPreferences(p *PreferencesImport, prefs domain.Preferences) (domain.Preferences, error) {
	if p == nil {
		return prefs, nil
	}
	if p.DailyStudyHours != nil {
		prefs.DailyStudyHours = *p.DailyStudyHours
	}
	if p.SessionMinutes != nil {
		prefs.SessionDuration = *p.SessionMinutes
	}
	if p.BreakMinutes != nil {
		prefs.BreakDuration = *p.BreakMinutes
	}
	if p.StudyDays != nil {
		days, err := domain.ParseWeekdaySet(*p.StudyDays)
		if err != nil {
			return prefs, err
		}
		prefs.StudyDays = days
	}
	if p.FocusMode != "" {
		f, err := domain.ParseFocusMode(p.FocusMode)
		if err != nil {
			return prefs, err
		}
		prefs.FocusMode = f
	}
	if len(p.TimeSlots) > 0 {
		prefs.PreferredTimeSlots = nil
		for _, s := range p.TimeSlots {
			slot, err := domain.ParseTimeSlot(s)
			if err != nil {
				return prefs, err
			}
			prefs.PreferredTimeSlots = append(prefs.PreferredTimeSlots, slot)
		}
	}
	return prefs, prefs.Validate()
}

// Export renders a plan in import form. Importing the result recreates the
// plan's subjects and preferences under new IDs.
func Export(p *domain.Plan) *ImportSchema {
	hours := p.Preferences.DailyStudyHours
	session := p.Preferences.SessionDuration
	breakMin := p.Preferences.BreakDuration
	days := p.Preferences.StudyDays.String()
	slots := make([]string, len(p.Preferences.PreferredTimeSlots))
	for i, s := range p.Preferences.PreferredTimeSlots {
		slots[i] = string(s)
	}

	schema := &ImportSchema{
		Plan: PlanImport{
			Title:         p.Title,
			Description:   p.Description,
			OverduePolicy: string(p.OverduePolicy),
		},
		Preferences: &PreferencesImport{
			DailyStudyHours: &hours,
			SessionMinutes:  &session,
			BreakMinutes:    &breakMin,
			StudyDays:       &days,
			FocusMode:       string(p.Preferences.FocusMode),
			TimeSlots:       slots,
		},
		Subjects: make([]SubjectImport, 0, len(p.Subjects)),
	}

	for _, s := range p.Subjects {
		si := SubjectImport{
			Name:           s.Name,
			Priority:       string(s.Priority),
			EstimatedHours: s.EstimatedHours,
			Color:          s.Color,
		}
		if s.Deadline != nil {
			d := s.Deadline.Format(dateLayout)
			si.Deadline = &d
		}
		schema.Subjects = append(schema.Subjects, si)
	}
	return schema
}
