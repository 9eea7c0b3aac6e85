package domain

import (
	"encoding/json"
	"time"
)

// StudyAid is generated material derived from a Material. Content holds the
// JSON document matching Kind (Notes, []Flashcard or []QuizQuestion).
type StudyAid struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	MaterialID string          `json:"materialId"`
	Kind       StudyAidKind    `json:"kind"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type NoteSection struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
}

type Notes struct {
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	KeyPoints []string      `json:"key_points"`
	Sections  []NoteSection `json:"sections"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}
