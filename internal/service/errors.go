package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActivePlan is returned when a call relies on the active plan and
	// the user has none.
	ErrNoActivePlan = errors.New("no active plan: create one or activate an existing plan")

	// ErrNoSubjects is returned by Generate for a plan without subjects.
	ErrNoSubjects = errors.New("plan has no subjects to schedule")

	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
