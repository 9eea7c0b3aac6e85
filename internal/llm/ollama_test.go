package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOllama(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p, err := NewOllamaProvider(OllamaConfig{Endpoint: srv.URL + "/", Model: "llama3.2"})
	require.NoError(t, err)
	return p
}

func TestOllamaProvider_Generate_Structured(t *testing.T) {
	p := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "Cells", req.Prompt)
		assert.Equal(t, "object", req.Format["type"])
		assert.Equal(t, 300, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.2",
			Response:        "```json\n" + validCards + "\n```",
			DoneReason:      "stop",
			PromptEvalCount: 12,
			EvalCount:       30,
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "system prompt",
		Messages:  userMsg("Cells"),
		Schema:    cardsSchema,
		MaxTokens: 300,
	})
	require.NoError(t, err)
	assert.JSONEq(t, validCards, string(resp.Content))
	assert.Equal(t, 42, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
}

func TestOllamaProvider_ConversationPrompt(t *testing.T) {
	p := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "Student: what is ATP?")
		assert.Contains(t, req.Prompt, "Tutor: energy currency")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "Yes."})
	})

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{
		{Role: RoleUser, Content: "what is ATP?"},
		{Role: RoleAssistant, Content: "energy currency"},
		{Role: RoleUser, Content: "really?"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Yes.", resp.Text())
}

func TestOllamaProvider_Timeout(t *testing.T) {
	p := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{Messages: userMsg("x")})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOllamaProvider_Unavailable(t *testing.T) {
	p, err := NewOllamaProvider(OllamaConfig{Endpoint: "http://127.0.0.1:1", Model: "llama3.2"})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Messages: userMsg("x")})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.False(t, p.Available(context.Background()))
}

func TestOllamaProvider_ServerError(t *testing.T) {
	p := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	})
	_, err := p.Generate(context.Background(), Request{Messages: userMsg("x")})
	assert.True(t, IsUnavailable(err))
}

func TestOllamaProvider_Available(t *testing.T) {
	p := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, p.Available(context.Background()))
}
