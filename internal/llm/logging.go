package llm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
)

// InteractionRecorder persists one history entry. repository.InteractionRepo
// satisfies it.
type InteractionRecorder interface {
	Create(ctx context.Context, i *domain.Interaction) error
}

// LoggingProvider records every call in the interaction history and emits an
// llm_call log event.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder InteractionRecorder
	log      *logger.Logger
	now      func() time.Time
}

// WithLogging wraps p. A nil recorder only logs; a nil log only records.
func WithLogging(p Provider, providerName string, recorder InteractionRecorder, log *logger.Logger) Provider {
	if log == nil {
		log = logger.NewNop()
	}
	return &LoggingProvider{
		inner:    p,
		provider: providerName,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	call := CallFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := l.now().Sub(start).Milliseconds()

	entry := &domain.Interaction{
		ID:        uuid.NewString(),
		UserID:    call.UserID,
		Kind:      call.Kind,
		Prompt:    promptOf(call, req),
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		LatencyMs: latency,
		Success:   err == nil,
		CreatedAt: start.UTC(),
	}
	if resp != nil {
		entry.Model = resp.Model
		entry.Response = responseText(req, resp)
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	kv := []any{
		"kind", entry.Kind,
		"provider", entry.Provider,
		"model", entry.Model,
		"latency_ms", latency,
		"input_tokens", entry.InputTokens,
		"output_tokens", entry.OutputTokens,
	}
	if err != nil {
		l.log.Warn("llm_call", append(kv, "status", "err:"+errorCode(err), "error", err.Error())...)
	} else {
		l.log.Info("llm_call", append(kv, "status", "ok")...)
	}

	// History is best effort; a failed write must not fail the call.
	if l.recorder != nil && entry.UserID != "" {
		if recErr := l.recorder.Create(ctx, entry); recErr != nil {
			l.log.Warn("record interaction failed", "error", recErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func promptOf(call CallInfo, req Request) string {
	if call.Prompt != "" {
		return call.Prompt
	}
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}

func responseText(req Request, resp *Response) string {
	if req.Schema == nil {
		return resp.Text()
	}
	return string(resp.Content)
}

func errorCode(err error) string {
	var (
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.As(err, &rl):
		return "RATE_LIMITED"
	case errors.As(err, &unavail):
		return "UNAVAILABLE"
	case errors.As(err, &invalid):
		return "INVALID_OUTPUT"
	case errors.As(err, &maxTok):
		return "MAX_TOKENS"
	default:
		return "UNKNOWN"
	}
}
