package service

import (
	"context"
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
)

// DefaultHistoryLimit caps history listings when the caller passes 0.
const DefaultHistoryLimit = 50

type historyService struct {
	interactions repository.InteractionRepo
}

func NewHistoryService(interactions repository.InteractionRepo) HistoryService {
	return &historyService{interactions: interactions}
}

// List returns the newest interactions first, optionally narrowed to one kind.
func (s *historyService) List(ctx context.Context, userID, kind string, limit int) ([]*domain.Interaction, error) {
	if kind != "" && !domain.ValidInteractionKinds[kind] {
		return nil, invalid(fmt.Errorf("unknown history kind %q", kind))
	}
	if limit < 0 {
		return nil, invalid(fmt.Errorf("limit must not be negative, got %d", limit))
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return s.interactions.List(ctx, userID, repository.InteractionFilter{
		Kind:  domain.InteractionKind(kind),
		Limit: limit,
	})
}
