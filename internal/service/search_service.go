package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
)

// DefaultSearchLimit is used when the caller passes 0.
const DefaultSearchLimit = 10

// Searcher is the web-search backend. *search.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}

type searchService struct {
	searcher     Searcher
	interactions repository.InteractionRepo
	observer     UseCaseObserver
}

func NewSearchService(searcher Searcher, interactions repository.InteractionRepo, observers ...UseCaseObserver) SearchService {
	return &searchService{
		searcher:     searcher,
		interactions: interactions,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Search queries the backend and records the exchange in the user's history,
// whether or not it succeeded.
func (s *searchService) Search(ctx context.Context, userID, query string, limit int) (resp *contract.SearchResponse, err error) {
	fields := map[string]any{"limit": limit}
	done := observe(ctx, s.observer, "web-search", userID, fields)
	defer func() { done(err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid(fmt.Errorf("query is required"))
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	start := time.Now()
	results, err := s.searcher.Search(ctx, query, limit)
	if errors.Is(err, search.ErrSearchDisabled) {
		return nil, err
	}

	entry := &domain.Interaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      domain.InteractionSearch,
		Prompt:    query,
		Provider:  "serper",
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		CreatedAt: start.UTC(),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	} else if b, mErr := json.Marshal(results); mErr == nil {
		entry.Response = string(b)
	}
	if recErr := s.interactions.Create(ctx, entry); recErr != nil && err == nil {
		err = fmt.Errorf("recording search: %w", recErr)
	}
	if err != nil {
		return nil, err
	}

	fields["results"] = len(results)
	return &contract.SearchResponse{Query: query, Results: results}, nil
}
