package llm

import "fmt"

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider routes through OpenRouter's OpenAI-compatible API.
// Model IDs are passed through unchanged ("vendor/model").
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	return newOpenAICompatible(cfg.APIKey, openRouterBaseURL, cfg.Model), nil
}
