package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the JSON document used to import and export a plan.
// Generated sessions are not part of it; they are rebuilt by generate.
type ImportSchema struct {
	Plan        PlanImport         `json:"plan"`
	Preferences *PreferencesImport `json:"preferences,omitempty"`
	Subjects    []SubjectImport    `json:"subjects"`
}

type PlanImport struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	OverduePolicy string `json:"overdue_policy,omitempty"`
}

// PreferencesImport holds optional overrides; nil fields keep the
// configured defaults.
type PreferencesImport struct {
	DailyStudyHours *float64 `json:"daily_study_hours,omitempty"`
	SessionMinutes  *int     `json:"session_minutes,omitempty"`
	BreakMinutes    *int     `json:"break_minutes,omitempty"`
	StudyDays       *string  `json:"study_days,omitempty"`
	FocusMode       string   `json:"focus_mode,omitempty"`
	TimeSlots       []string `json:"time_slots,omitempty"`
}

type SubjectImport struct {
	Name           string  `json:"name"`
	Priority       string  `json:"priority,omitempty"`
	Deadline       *string `json:"deadline,omitempty"`
	EstimatedHours float64 `json:"estimated_hours"`
	Color          string  `json:"color,omitempty"`
}

// LoadImportSchema reads and parses a plan import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
