package contract

import (
	"fmt"
	"strings"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/gpa"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message    string     `json:"message"`
	MaterialID string     `json:"materialId,omitempty"`
	History    []ChatTurn `json:"history,omitempty"`
}

func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message is required")
	}
	for _, t := range r.History {
		if t.Role != "user" && t.Role != "assistant" {
			return fmt.Errorf("history role %q must be user or assistant", t.Role)
		}
	}
	return nil
}

type ChatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

type StudyAidRequest struct {
	MaterialID string   `json:"materialId"`
	Kinds      []string `json:"kinds,omitempty"`
	// Count is the number of flashcards or quiz questions; 0 means default.
	Count      int      `json:"count,omitempty"`
}

// ParsedKinds returns the requested kinds, or all three when empty.
func (r StudyAidRequest) ParsedKinds() ([]domain.StudyAidKind, error) {
	if len(r.Kinds) == 0 {
		return []domain.StudyAidKind{domain.AidNotes, domain.AidFlashcards, domain.AidQuiz}, nil
	}
	kinds := make([]domain.StudyAidKind, 0, len(r.Kinds))
	seen := make(map[domain.StudyAidKind]bool)
	for _, k := range r.Kinds {
		kind, err := domain.ParseStudyAidKind(k)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// StudyPack holds whichever aids were generated in one request.
type StudyPack struct {
	MaterialID string                `json:"materialId"`
	Notes      *domain.Notes         `json:"notes,omitempty"`
	Flashcards []domain.Flashcard    `json:"flashcards,omitempty"`
	Quiz       []domain.QuizQuestion `json:"quiz,omitempty"`
}

type CreateMaterialRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	SubjectID string `json:"subjectId,omitempty"`
	Source    string `json:"source,omitempty"`
}

func (r CreateMaterialRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

type CreateCourseRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code,omitempty"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
	Term    string  `json:"term,omitempty"`
}

type GPAResponse struct {
	gpa.Summary
	Classification string `json:"classification"`
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}
