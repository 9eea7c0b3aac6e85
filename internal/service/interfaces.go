package service

import (
	"context"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/importer"
)

// Every use case is scoped by an opaque user ID. A planID of "" selects the
// user's active plan.

type PlanService interface {
	Create(ctx context.Context, userID string, req contract.CreatePlanRequest) (*domain.Plan, error)
	List(ctx context.Context, userID string) ([]*domain.Plan, error)
	Get(ctx context.Context, userID, planID string) (*domain.Plan, error)
	Activate(ctx context.Context, userID, planID string) error
	Delete(ctx context.Context, userID, planID string) error
	Import(ctx context.Context, userID string, schema *importer.ImportSchema) (*domain.Plan, error)
	Export(ctx context.Context, userID, planID string) (*importer.ImportSchema, error)

	AddSubject(ctx context.Context, userID, planID string, in contract.SubjectInput) (*domain.Subject, error)
	UpdateSubject(ctx context.Context, userID, planID, subjectID string, patch domain.SubjectPatch) (*domain.Subject, error)
	RemoveSubject(ctx context.Context, userID, planID, subjectID string) error
	UpdatePreferences(ctx context.Context, userID, planID string, patch domain.PreferencesPatch) (*domain.Preferences, error)

	Generate(ctx context.Context, userID, planID string, req contract.GenerateRequest) (*contract.GenerateResponse, error)
	Preview(ctx context.Context, req contract.PreviewRequest) (*contract.PreviewResponse, error)
	SetTaskCompleted(ctx context.Context, userID, planID, taskID string, completed *bool) (*contract.ToggleTaskResponse, error)
	Analytics(ctx context.Context, userID, planID string, now time.Time) (*contract.AnalyticsResponse, error)
	Today(ctx context.Context, userID string, now time.Time) (*contract.TodayView, error)
}

type GPAService interface {
	AddCourse(ctx context.Context, userID string, req contract.CreateCourseRequest) (*domain.Course, error)
	ListCourses(ctx context.Context, userID string) ([]*domain.Course, error)
	RemoveCourse(ctx context.Context, userID, courseID string) error
	Summary(ctx context.Context, userID string) (*contract.GPAResponse, error)
}

type MaterialService interface {
	Create(ctx context.Context, userID string, req contract.CreateMaterialRequest) (*domain.Material, error)
	Get(ctx context.Context, userID, id string) (*domain.Material, error)
	List(ctx context.Context, userID string) ([]*domain.Material, error)
	Delete(ctx context.Context, userID, id string) error
}

type TutorService interface {
	Chat(ctx context.Context, userID string, req contract.ChatRequest) (*contract.ChatResponse, error)
	Notes(ctx context.Context, userID, materialID string) (*domain.Notes, error)
	Flashcards(ctx context.Context, userID, materialID string, count int) ([]domain.Flashcard, error)
	Quiz(ctx context.Context, userID, materialID string, count int) ([]domain.QuizQuestion, error)
	// StudyPack generates the requested kinds concurrently.
	StudyPack(ctx context.Context, userID string, req contract.StudyAidRequest) (*contract.StudyPack, error)
}

type HistoryService interface {
	List(ctx context.Context, userID, kind string, limit int) ([]*domain.Interaction, error)
}

type SearchService interface {
	Search(ctx context.Context, userID, query string, limit int) (*contract.SearchResponse, error)
}
