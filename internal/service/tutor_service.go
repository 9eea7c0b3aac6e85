package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
)

type tutorService struct {
	provider  llm.Provider
	materials repository.MaterialRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewTutorService wires the AI use cases. A nil provider makes every call
// fail with llm.ErrDisabled. Study aids are written through uow.
func NewTutorService(provider llm.Provider, materials repository.MaterialRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TutorService {
	return &tutorService{
		provider:  provider,
		materials: materials,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *tutorService) Chat(ctx context.Context, userID string, req contract.ChatRequest) (resp *contract.ChatResponse, err error) {
	done := observe(ctx, s.observer, "tutor-chat", userID, map[string]any{"material_id": req.MaterialID, "turns": len(req.History)})
	defer func() { done(err) }()

	if s.provider == nil {
		return nil, llm.ErrDisabled
	}
	if err = req.Validate(); err != nil {
		return nil, invalid(err)
	}

	system := tutorSystemPrompt
	if req.MaterialID != "" {
		m, err := s.materials.GetByID(ctx, userID, req.MaterialID)
		if err != nil {
			return nil, err
		}
		system += "\n\n" + materialBlock(m)
	}

	msgs := make([]llm.Message, 0, len(req.History)+1)
	for _, t := range req.History {
		msgs = append(msgs, llm.Message{Role: llm.Role(t.Role), Content: t.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Message})

	ctx = llm.WithCall(ctx, llm.CallInfo{UserID: userID, Kind: domain.InteractionChat, Prompt: req.Message})
	out, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    msgs,
		MaxTokens:   1024,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}
	return &contract.ChatResponse{Reply: out.Text(), Model: out.Model}, nil
}

func (s *tutorService) Notes(ctx context.Context, userID, materialID string) (*domain.Notes, error) {
	pack, err := s.StudyPack(ctx, userID, contract.StudyAidRequest{MaterialID: materialID, Kinds: []string{string(domain.AidNotes)}})
	if err != nil {
		return nil, err
	}
	return pack.Notes, nil
}

func (s *tutorService) Flashcards(ctx context.Context, userID, materialID string, count int) ([]domain.Flashcard, error) {
	pack, err := s.StudyPack(ctx, userID, contract.StudyAidRequest{MaterialID: materialID, Kinds: []string{string(domain.AidFlashcards)}, Count: count})
	if err != nil {
		return nil, err
	}
	return pack.Flashcards, nil
}

func (s *tutorService) Quiz(ctx context.Context, userID, materialID string, count int) ([]domain.QuizQuestion, error) {
	pack, err := s.StudyPack(ctx, userID, contract.StudyAidRequest{MaterialID: materialID, Kinds: []string{string(domain.AidQuiz)}, Count: count})
	if err != nil {
		return nil, err
	}
	return pack.Quiz, nil
}

// StudyPack generates every requested aid concurrently and stores them once
// all succeeded. The first failure cancels the rest.
func (s *tutorService) StudyPack(ctx context.Context, userID string, req contract.StudyAidRequest) (pack *contract.StudyPack, err error) {
	fields := map[string]any{"material_id": req.MaterialID}
	done := observe(ctx, s.observer, "study-pack", userID, fields)
	defer func() { done(err) }()

	if s.provider == nil {
		return nil, llm.ErrDisabled
	}
	if req.MaterialID == "" {
		return nil, invalid(fmt.Errorf("material id is required"))
	}
	kinds, err := req.ParsedKinds()
	if err != nil {
		return nil, invalid(err)
	}
	fields["kinds"] = kinds

	m, err := s.materials.GetByID(ctx, userID, req.MaterialID)
	if err != nil {
		return nil, err
	}

	pack = &contract.StudyPack{MaterialID: m.ID}
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		switch kind {
		case domain.AidNotes:
			g.Go(func() error {
				notes, err := s.generateNotes(gctx, userID, m)
				pack.Notes = notes
				return err
			})
		case domain.AidFlashcards:
			count := clampCount(req.Count, DefaultFlashcardCount, MaxFlashcardCount)
			g.Go(func() error {
				cards, err := s.generateFlashcards(gctx, userID, m, count)
				pack.Flashcards = cards
				return err
			})
		case domain.AidQuiz:
			count := clampCount(req.Count, DefaultQuizCount, MaxQuizCount)
			g.Go(func() error {
				questions, err := s.generateQuiz(gctx, userID, m, count)
				pack.Quiz = questions
				return err
			})
		}
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if err = s.store(ctx, userID, m.ID, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

func (s *tutorService) generateNotes(ctx context.Context, userID string, m *domain.Material) (*domain.Notes, error) {
	resp, err := s.structured(ctx, userID, domain.InteractionNotes, notesSchema, notesPrompt(m), "notes: "+m.Title)
	if err != nil {
		return nil, err
	}
	notes, err := llm.Decode(resp, validateNotes)
	if err != nil {
		return nil, err
	}
	return &notes, nil
}

func (s *tutorService) generateFlashcards(ctx context.Context, userID string, m *domain.Material, count int) ([]domain.Flashcard, error) {
	resp, err := s.structured(ctx, userID, domain.InteractionFlashcards, flashcardsSchema, flashcardsPrompt(m, count), "flashcards: "+m.Title)
	if err != nil {
		return nil, err
	}
	deck, err := llm.Decode(resp, validateDeck)
	if err != nil {
		return nil, err
	}
	if len(deck.Cards) > count {
		deck.Cards = deck.Cards[:count]
	}
	return deck.Cards, nil
}

func (s *tutorService) generateQuiz(ctx context.Context, userID string, m *domain.Material, count int) ([]domain.QuizQuestion, error) {
	resp, err := s.structured(ctx, userID, domain.InteractionQuiz, quizSchema, quizPrompt(m, count), "quiz: "+m.Title)
	if err != nil {
		return nil, err
	}
	set, err := llm.Decode(resp, validateQuiz)
	if err != nil {
		return nil, err
	}
	if len(set.Questions) > count {
		set.Questions = set.Questions[:count]
	}
	return set.Questions, nil
}

func (s *tutorService) structured(ctx context.Context, userID string, kind domain.InteractionKind, schema *llm.Schema, prompt, label string) (*llm.Response, error) {
	ctx = llm.WithCall(ctx, llm.CallInfo{UserID: userID, Kind: kind, Prompt: label})
	return s.provider.Generate(ctx, llm.Request{
		System:      studyAidSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      schema,
		MaxTokens:   4096,
		Temperature: 0.2,
	})
}

// store writes the pack's aids in one transaction.
func (s *tutorService) store(ctx context.Context, userID, materialID string, pack *contract.StudyPack) error {
	now := time.Now().UTC()
	var aids []*domain.StudyAid
	add := func(kind domain.StudyAidKind, v any) error {
		content, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", kind, err)
		}
		aids = append(aids, &domain.StudyAid{
			ID:         uuid.NewString(),
			UserID:     userID,
			MaterialID: materialID,
			Kind:       kind,
			Content:    content,
			CreatedAt:  now,
		})
		return nil
	}
	if pack.Notes != nil {
		if err := add(domain.AidNotes, pack.Notes); err != nil {
			return err
		}
	}
	if pack.Flashcards != nil {
		if err := add(domain.AidFlashcards, pack.Flashcards); err != nil {
			return err
		}
	}
	if pack.Quiz != nil {
		if err := add(domain.AidQuiz, pack.Quiz); err != nil {
			return err
		}
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAids := repository.NewSQLiteStudyAidRepo(tx)
		for _, a := range aids {
			if err := txAids.Create(ctx, a); err != nil {
				return fmt.Errorf("saving %s: %w", a.Kind, err)
			}
		}
		return nil
	})
}
