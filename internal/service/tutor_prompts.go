package service

import (
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
)

const (
	// materialExcerptRunes bounds how much of a material is sent per call.
	materialExcerptRunes = 12000

	DefaultFlashcardCount = 10
	MaxFlashcardCount     = 30
	DefaultQuizCount      = 5
	MaxQuizCount          = 20
)

const tutorSystemPrompt = `You are a patient university tutor. Explain concepts step by step,
check understanding with a short question when useful, and keep answers focused on
the student's question. If course material is provided, ground your answer in it and
say so when the material does not cover the question.`

const studyAidSystemPrompt = `You turn course material into study aids for university students.
Use only facts stated in the material. Keep wording short and precise. Reply with JSON
matching the requested schema and nothing else.`

func materialBlock(m *domain.Material) string {
	return fmt.Sprintf("Course material %q:\n---\n%s\n---", m.Title, m.Excerpt(materialExcerptRunes))
}

func notesPrompt(m *domain.Material) string {
	return materialBlock(m) + "\n\nWrite structured revision notes: a title, a two or three sentence summary, the key points, and sections with bullet points."
}

func flashcardsPrompt(m *domain.Material, count int) string {
	return fmt.Sprintf("%s\n\nWrite exactly %d flashcards. Each front is a question or term, each back a concise answer.", materialBlock(m), count)
}

func quizPrompt(m *domain.Material, count int) string {
	return fmt.Sprintf("%s\n\nWrite exactly %d multiple-choice questions with four options each. answer_index is the zero-based index of the correct option; explain why it is correct.", materialBlock(m), count)
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

var notesSchema = &llm.Schema{
	Name:        "study-notes",
	Description: "Structured revision notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string"},
			"summary":    map[string]any{"type": "string"},
			"key_points": stringArray(),
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"heading": map[string]any{"type": "string"},
						"bullets": stringArray(),
					},
					"required":             []any{"heading", "bullets"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "summary", "key_points", "sections"},
		"additionalProperties": false,
	},
}

var flashcardsSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "A deck of flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

var quizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "Multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":     map[string]any{"type": "string"},
						"options":      stringArray(),
						"answer_index": map[string]any{"type": "integer"},
						"explanation":  map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "answer_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type flashcardDeck struct {
	Cards []domain.Flashcard `json:"cards"`
}

type quizSet struct {
	Questions []domain.QuizQuestion `json:"questions"`
}

func validateNotes(n domain.Notes) error {
	if n.Title == "" {
		return fmt.Errorf("notes have no title")
	}
	if len(n.KeyPoints) == 0 {
		return fmt.Errorf("notes have no key points")
	}
	return nil
}

func validateDeck(d flashcardDeck) error {
	for i, c := range d.Cards {
		if c.Front == "" || c.Back == "" {
			return fmt.Errorf("card %d is missing a side", i+1)
		}
	}
	return nil
}

func validateQuiz(q quizSet) error {
	for i, question := range q.Questions {
		if len(question.Options) < 2 {
			return fmt.Errorf("question %d has fewer than two options", i+1)
		}
		if question.AnswerIndex < 0 || question.AnswerIndex >= len(question.Options) {
			return fmt.Errorf("question %d answer index %d out of range", i+1, question.AnswerIndex)
		}
	}
	return nil
}

func clampCount(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
