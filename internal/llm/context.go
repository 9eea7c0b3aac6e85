package llm

import (
	"context"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type contextKey string

const callKey contextKey = "llm_call"

// CallInfo labels a Generate call for the interaction history.
type CallInfo struct {
	UserID string
	Kind   domain.InteractionKind
	// Prompt is the user-facing prompt recorded in history. Empty means the
	// last user message of the request.
	Prompt string
}

// WithCall attaches call labels to ctx.
func WithCall(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callKey, info)
}

// CallFrom extracts call labels. Calls without labels are recorded as chat
// by an anonymous user.
func CallFrom(ctx context.Context) CallInfo {
	if v, ok := ctx.Value(callKey).(CallInfo); ok {
		return v
	}
	return CallInfo{Kind: domain.InteractionChat}
}
