package domain

import "fmt"

type Preferences struct {
	DailyStudyHours    float64    `json:"dailyStudyHours"`
	SessionDuration    int        `json:"sessionDuration"`
	BreakDuration      int        `json:"breakDuration"`
	StudyDays          WeekdaySet `json:"studyDays"`
	FocusMode          FocusMode  `json:"focusMode"`
	PreferredTimeSlots []TimeSlot `json:"preferredTimeSlots"`
}

// DefaultPreferences mirrors the values a new plan starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		DailyStudyHours:    4,
		SessionDuration:    45,
		BreakDuration:      15,
		StudyDays:          Weekdays(),
		FocusMode:          FocusBalanced,
		PreferredTimeSlots: []TimeSlot{SlotMorning},
	}
}

// DailyBudgetMin is the number of minutes available on each study day.
func (p Preferences) DailyBudgetMin() int {
	return int(p.DailyStudyHours * 60)
}

// StartSlot returns the first preferred slot, defaulting to morning.
func (p Preferences) StartSlot() TimeSlot {
	if len(p.PreferredTimeSlots) == 0 {
		return SlotMorning
	}
	return p.PreferredTimeSlots[0]
}

// Validate rejects values a form would refuse. The empty study-day set is
// deliberately not checked here: generation reports it itself.
func (p Preferences) Validate() error {
	if p.DailyStudyHours <= 0 || p.DailyStudyHours > 24 {
		return fmt.Errorf("daily study hours must be between 0 and 24, got %g", p.DailyStudyHours)
	}
	if p.SessionDuration <= 0 {
		return fmt.Errorf("session duration must be positive, got %d", p.SessionDuration)
	}
	if p.BreakDuration < 0 {
		return fmt.Errorf("break duration must not be negative, got %d", p.BreakDuration)
	}
	if p.FocusMode != "" {
		if _, err := ParseFocusMode(string(p.FocusMode)); err != nil {
			return err
		}
	}
	return nil
}
