package testutil

import (
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/google/uuid"
)

// TestUserID owns every fixture unless overridden.
const TestUserID = "user-test"

// Subject options
type SubjectOption func(*domain.Subject)

func WithDeadline(d time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.Deadline = &d
	}
}

func WithPriority(p domain.Priority) SubjectOption {
	return func(s *domain.Subject) {
		s.Priority = p
	}
}

func WithEstimatedHours(h float64) SubjectOption {
	return func(s *domain.Subject) {
		s.EstimatedHours = h
	}
}

func NewTestSubject(name string, opts ...SubjectOption) domain.Subject {
	s := domain.Subject{
		ID:             uuid.New().String(),
		Name:           name,
		Priority:       domain.PriorityMedium,
		EstimatedHours: 5,
		Color:          domain.DefaultSubjectColors[0],
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Plan options
type PlanOption func(*domain.Plan)

func WithUserID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.UserID = id
	}
}

func WithActive() PlanOption {
	return func(p *domain.Plan) {
		p.IsActive = true
	}
}

func WithSubjects(subjects ...domain.Subject) PlanOption {
	return func(p *domain.Plan) {
		p.Subjects = append(p.Subjects, subjects...)
	}
}

func WithPreferences(prefs domain.Preferences) PlanOption {
	return func(p *domain.Plan) {
		p.Preferences = prefs
	}
}

func WithSessions(sessions ...domain.Session) PlanOption {
	return func(p *domain.Plan) {
		p.Sessions = append(p.Sessions, sessions...)
	}
}

func NewTestPlan(title string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Plan{
		ID:          uuid.New().String(),
		UserID:      TestUserID,
		Title:       title,
		Subjects:    []domain.Subject{},
		Preferences: domain.DefaultPreferences(),
		Sessions:    []domain.Session{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestSession builds a session on day with the given tasks and derived fields filled in.
func NewTestSession(day time.Time, tasks ...domain.Task) domain.Session {
	s := domain.Session{
		ID:        uuid.New().String(),
		Date:      day,
		StartTime: day.Add(9 * time.Hour),
		Tasks:     tasks,
	}
	s.Recompute()
	return s
}

func NewTestTask(subjectID string, minutes int) domain.Task {
	return domain.Task{
		ID:         uuid.New().String(),
		SubjectID:  subjectID,
		Title:      "Study " + subjectID,
		Duration:   minutes,
		Type:       domain.TaskStudy,
		Difficulty: domain.DifficultyMedium,
	}
}

func NewTestCourse(name, grade string, credits float64, term string) *domain.Course {
	return &domain.Course{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		Name:      name,
		Credits:   credits,
		Grade:     grade,
		Term:      term,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestMaterial(title, content string) *domain.Material {
	return &domain.Material{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
