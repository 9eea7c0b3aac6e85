package domain

import (
	"fmt"
	"strings"
	"time"
)

// BreakSubjectID is the sentinel subject reference carried by break tasks.
const BreakSubjectID = "break"

// DefaultSubjectColors is the palette cycled through when a subject is
// created without an explicit color tag.
var DefaultSubjectColors = []string{
	"#83a598", "#fabd2f", "#d3869b", "#8ec07c", "#fe8019", "#b8bb26", "#fb4934",
}

type Subject struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Priority       Priority   `json:"priority"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	EstimatedHours float64    `json:"estimatedHours"`
	Color          string     `json:"color"`
}

// Validate checks the invariants a subject must hold before it can be
// scheduled.
func (s *Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("subject name is required")
	}
	if s.ID == BreakSubjectID {
		return fmt.Errorf("subject ID %q is reserved", BreakSubjectID)
	}
	if _, err := ParsePriority(string(s.Priority)); err != nil {
		return err
	}
	if s.EstimatedHours <= 0 {
		return fmt.Errorf("estimated hours for %q must be greater than zero", s.Name)
	}
	return nil
}

// HasDeadline reports whether the subject carries a deadline.
func (s *Subject) HasDeadline() bool {
	return s.Deadline != nil
}
