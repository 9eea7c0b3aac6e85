package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts the canonical names case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (want high, medium or low)", ErrInvalidPriority, s)
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type TaskType string

const (
	TaskStudy    TaskType = "study"
	TaskReview   TaskType = "review"
	TaskPractice TaskType = "practice"
	TaskBreak    TaskType = "break"
	TaskExam     TaskType = "exam"
)

func ParseTaskType(s string) (TaskType, error) {
	switch t := TaskType(strings.ToLower(strings.TrimSpace(s))); t {
	case TaskStudy, TaskReview, TaskPractice, TaskBreak, TaskExam:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaskType, s)
}

func (t *TaskType) UnmarshalText(b []byte) error {
	v, err := ParseTaskType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d *Difficulty) UnmarshalText(b []byte) error {
	switch v := Difficulty(strings.ToLower(string(b))); v {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		*d = v
		return nil
	}
	return fmt.Errorf("invalid difficulty %q", string(b))
}

type FocusMode string

const (
	FocusBalanced FocusMode = "balanced"
	FocusDeep     FocusMode = "deep"
	FocusLight    FocusMode = "light"
)

func ParseFocusMode(s string) (FocusMode, error) {
	switch f := FocusMode(strings.ToLower(strings.TrimSpace(s))); f {
	case FocusBalanced, FocusDeep, FocusLight:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want balanced, deep or light)", ErrInvalidFocusMode, s)
}

func (f *FocusMode) UnmarshalText(b []byte) error {
	v, err := ParseFocusMode(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

func ParseTimeSlot(s string) (TimeSlot, error) {
	switch ts := TimeSlot(strings.ToLower(strings.TrimSpace(s))); ts {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return ts, nil
	}
	return "", fmt.Errorf("%w: %q (want morning, afternoon or evening)", ErrInvalidTimeSlot, s)
}

func (t *TimeSlot) UnmarshalText(b []byte) error {
	v, err := ParseTimeSlot(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// StartHour is the local hour a session begins when this slot is preferred.
func (t TimeSlot) StartHour() int {
	switch t {
	case SlotAfternoon:
		return 14
	case SlotEvening:
		return 19
	default:
		return 9
	}
}

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// OverduePolicy decides what generation does with a subject whose deadline
// falls before the first study day.
type OverduePolicy string

const (
	OverdueScheduleToday OverduePolicy = "schedule_today"
	OverdueDrop          OverduePolicy = "drop"
)

func ParseOverduePolicy(s string) (OverduePolicy, error) {
	switch p := OverduePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return OverdueScheduleToday, nil
	case OverdueScheduleToday, OverdueDrop:
		return p, nil
	}
	return "", fmt.Errorf("invalid overdue policy %q (want schedule_today or drop)", s)
}

type InteractionKind string

const (
	InteractionChat       InteractionKind = "chat"
	InteractionNotes      InteractionKind = "notes"
	InteractionFlashcards InteractionKind = "flashcards"
	InteractionQuiz       InteractionKind = "quiz"
	InteractionSearch     InteractionKind = "search"
)

// ValidInteractionKinds is the canonical set of accepted history kinds.
var ValidInteractionKinds = map[string]bool{
	"chat": true, "notes": true, "flashcards": true, "quiz": true, "search": true,
}

type StudyAidKind string

const (
	AidNotes      StudyAidKind = "notes"
	AidFlashcards StudyAidKind = "flashcards"
	AidQuiz       StudyAidKind = "quiz"
)

func ParseStudyAidKind(s string) (StudyAidKind, error) {
	switch k := StudyAidKind(strings.ToLower(strings.TrimSpace(s))); k {
	case AidNotes, AidFlashcards, AidQuiz:
		return k, nil
	}
	return "", fmt.Errorf("invalid study aid kind %q (want notes, flashcards or quiz)", s)
}
