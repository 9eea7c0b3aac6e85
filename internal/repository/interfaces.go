package repository

import (
	"context"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// Every repository scopes reads and writes by the owning user ID.

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, userID, id string) (*domain.Plan, error)
	GetActive(ctx context.Context, userID string) (*domain.Plan, error)
	List(ctx context.Context, userID string) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	SetActive(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}

type CourseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	List(ctx context.Context, userID string) ([]*domain.Course, error)
	Delete(ctx context.Context, userID, id string) error
}

type MaterialRepo interface {
	Create(ctx context.Context, m *domain.Material) error
	GetByID(ctx context.Context, userID, id string) (*domain.Material, error)
	List(ctx context.Context, userID string) ([]*domain.Material, error)
	Delete(ctx context.Context, userID, id string) error
}

type InteractionRepo interface {
	Create(ctx context.Context, i *domain.Interaction) error
	List(ctx context.Context, userID string, filter InteractionFilter) ([]*domain.Interaction, error)
}

// InteractionFilter narrows a history listing. Zero values mean no filter.
type InteractionFilter struct {
	Kind  domain.InteractionKind
	Limit int
}

type StudyAidRepo interface {
	Create(ctx context.Context, a *domain.StudyAid) error
	ListByMaterial(ctx context.Context, userID, materialID string) ([]*domain.StudyAid, error)
	Latest(ctx context.Context, userID, materialID string, kind domain.StudyAidKind) (*domain.StudyAid, error)
}
