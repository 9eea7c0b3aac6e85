package domain

import (
	"fmt"
	"strings"
	"time"
)

// Course is one graded entry counted toward the GPA.
type Course struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Credits   float64   `json:"credits"`
	Grade     string    `json:"grade"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks shape only; whether the grade exists on the scale is
// decided by the gpa package.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("course name is required")
	}
	if c.Credits <= 0 {
		return fmt.Errorf("credits for %q must be greater than zero", c.Name)
	}
	if strings.TrimSpace(c.Grade) == "" {
		return fmt.Errorf("grade for %q is required", c.Name)
	}
	return nil
}
