package domain

import "errors"

var (
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidTaskType  = errors.New("invalid task type")
	ErrInvalidFocusMode = errors.New("invalid focus mode")
	ErrInvalidTimeSlot  = errors.New("invalid time slot")
	ErrInvalidWeekday   = errors.New("invalid weekday")

	// ErrTaskNotFound is returned when a task ID is not part of any session in the plan.
	ErrTaskNotFound = errors.New("task not found")

	// ErrBreakNotCompletable is returned when toggling a break task.
	ErrBreakNotCompletable = errors.New("break tasks cannot be completed")

	ErrSubjectNotFound = errors.New("subject not found")
)
