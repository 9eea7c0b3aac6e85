package domain

import "time"

// SubjectPatch carries optional edits to a subject; nil fields are left
// unchanged.
type SubjectPatch struct {
	Name           *string    `json:"name,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	ClearDeadline  bool       `json:"clearDeadline,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	Color          *string    `json:"color,omitempty"`
}

// Apply edits s in place and revalidates it. On error s is unchanged.
func (p SubjectPatch) Apply(s *Subject) error {
	next := *s
	next.Name = valueOr(p.Name, next.Name)
	next.Priority = valueOr(p.Priority, next.Priority)
	next.EstimatedHours = valueOr(p.EstimatedHours, next.EstimatedHours)
	next.Color = valueOr(p.Color, next.Color)
	if p.Deadline != nil {
		d := *p.Deadline
		next.Deadline = &d
	}
	if p.ClearDeadline {
		next.Deadline = nil
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// PreferencesPatch carries optional edits to plan preferences.
type PreferencesPatch struct {
	DailyStudyHours    *float64    `json:"dailyStudyHours,omitempty"`
	SessionDuration    *int        `json:"sessionDuration,omitempty"`
	BreakDuration      *int        `json:"breakDuration,omitempty"`
	StudyDays          *WeekdaySet `json:"studyDays,omitempty"`
	FocusMode          *FocusMode  `json:"focusMode,omitempty"`
	PreferredTimeSlots []TimeSlot  `json:"preferredTimeSlots,omitempty"`
}

// Apply returns a copy of prefs with the patch applied and validated.
func (p PreferencesPatch) Apply(prefs Preferences) (Preferences, error) {
	prefs.DailyStudyHours = valueOr(p.DailyStudyHours, prefs.DailyStudyHours)
	prefs.SessionDuration = valueOr(p.SessionDuration, prefs.SessionDuration)
	prefs.BreakDuration = valueOr(p.BreakDuration, prefs.BreakDuration)
	prefs.StudyDays = valueOr(p.StudyDays, prefs.StudyDays)
	prefs.FocusMode = valueOr(p.FocusMode, prefs.FocusMode)
	if len(p.PreferredTimeSlots) > 0 {
		prefs.PreferredTimeSlots = append([]TimeSlot(nil), p.PreferredTimeSlots...)
	}
	if err := prefs.Validate(); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// valueOr returns *ptr when set, otherwise fallback.
func valueOr[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
