package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []*domain.Interaction
	err     error
}

func (m *memRecorder) Create(_ context.Context, i *domain.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, i)
	return nil
}

func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	rec := &memRecorder{}
	log, logs := observed()
	p := WithLogging(NewMockProvider(MockText("Mitosis splits a cell.")), ProviderOpenAI, rec, log)

	ctx := WithCall(context.Background(), CallInfo{UserID: "u1", Kind: domain.InteractionChat})
	_, err := p.Generate(ctx, Request{Messages: userMsg("What is mitosis?")})
	require.NoError(t, err)

	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, domain.InteractionChat, e.Kind)
	assert.Equal(t, "What is mitosis?", e.Prompt)
	assert.Equal(t, "Mitosis splits a cell.", e.Response)
	assert.Equal(t, "openai", e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, 10, e.InputTokens)
	assert.True(t, e.Success)
	assert.NotEmpty(t, e.ID)

	entries := logs.FilterMessage("llm_call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "ok", entries[0].ContextMap()["status"])
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	rec := &memRecorder{}
	log, logs := observed()
	p := WithLogging(NewMockProvider(), ProviderGemini, rec, log)

	ctx := WithCall(context.Background(), CallInfo{UserID: "u1", Kind: domain.InteractionQuiz, Prompt: "quiz: Cells"})
	_, err := p.Generate(ctx, Request{Messages: userMsg("long material text")})
	require.Error(t, err)

	require.Len(t, rec.entries, 1)
	assert.False(t, rec.entries[0].Success)
	assert.Equal(t, "quiz: Cells", rec.entries[0].Prompt)
	assert.NotEmpty(t, rec.entries[0].ErrorMessage)

	entries := logs.FilterMessage("llm_call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "err:UNAVAILABLE", entries[0].ContextMap()["status"])
}

func TestLoggingProvider_RecorderFailureDoesNotFailCall(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	log, logs := observed()
	p := WithLogging(NewMockProvider(MockText("fine")), ProviderMock, rec, log)

	ctx := WithCall(context.Background(), CallInfo{UserID: "u1", Kind: domain.InteractionChat})
	resp, err := p.Generate(ctx, Request{Messages: userMsg("hi")})
	require.NoError(t, err)
	assert.Equal(t, "fine", resp.Text())
	assert.Equal(t, 1, logs.FilterMessage("record interaction failed").Len())
}

func TestLoggingProvider_SkipsAnonymousCalls(t *testing.T) {
	rec := &memRecorder{}
	p := WithLogging(NewMockProvider(MockText("x")), ProviderMock, rec, nil)
	_, err := p.Generate(context.Background(), Request{Messages: userMsg("hi")})
	require.NoError(t, err)
	assert.Empty(t, rec.entries)
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"cards": "wrong"}))
	_, err := mock.Generate(context.Background(), Request{Schema: cardsSchema})
	assert.True(t, isInvalid(err))
	assert.Equal(t, 1, mock.CallCount())
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.Error(t, err)

	cfg.OpenAI.APIKey = "k"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}
