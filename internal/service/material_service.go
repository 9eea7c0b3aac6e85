package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
)

type materialService struct {
	materials repository.MaterialRepo
	observer  UseCaseObserver
}

func NewMaterialService(materials repository.MaterialRepo, observers ...UseCaseObserver) MaterialService {
	return &materialService{materials: materials, observer: useCaseObserverOrNoop(observers)}
}

func (s *materialService) Create(ctx context.Context, userID string, req contract.CreateMaterialRequest) (m *domain.Material, err error) {
	done := observe(ctx, s.observer, "create-material", userID, map[string]any{"chars": len(req.Content)})
	defer func() { done(err) }()

	if err = req.Validate(); err != nil {
		return nil, invalid(err)
	}
	m = &domain.Material{
		ID:        uuid.NewString(),
		UserID:    userID,
		SubjectID: req.SubjectID,
		Title:     strings.TrimSpace(req.Title),
		Source:    req.Source,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err = s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *materialService) Get(ctx context.Context, userID, id string) (*domain.Material, error) {
	return s.materials.GetByID(ctx, userID, id)
}

func (s *materialService) List(ctx context.Context, userID string) ([]*domain.Material, error) {
	return s.materials.List(ctx, userID)
}

func (s *materialService) Delete(ctx context.Context, userID, id string) error {
	return s.materials.Delete(ctx, userID, id)
}
