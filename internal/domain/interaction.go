package domain

import "time"

// Interaction is one recorded exchange with an AI provider or the search API.
type Interaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Kind         InteractionKind `json:"kind"`
	Prompt       string          `json:"prompt"`
	Response     string          `json:"response"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	LatencyMs    int64           `json:"latencyMs"`
	InputTokens  int             `json:"inputTokens"`
	OutputTokens int             `json:"outputTokens"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
