package llm

import (
	"fmt"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = "none"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

type Config struct {
	Provider   string           `yaml:"provider"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Ollama     OllamaConfig     `yaml:"ollama"`
	Retry      RetryConfig      `yaml:"retry"`
	Timeout    time.Duration    `yaml:"timeout"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenRouterConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// DefaultConfig leaves AI disabled until a provider and key are configured.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNone,
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Ollama: OllamaConfig{
			Endpoint: "http://localhost:11434",
			Model:    "llama3.2",
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Second,
			MaxBackoff:     30 * time.Second,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overrides fields from SCHOLAR_* variables. getenv is usually
// os.Getenv. When no provider is set explicitly, the first API key found
// picks one.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Provider, "SCHOLAR_LLM_PROVIDER")
	set(&c.OpenAI.APIKey, "SCHOLAR_OPENAI_API_KEY")
	set(&c.OpenAI.Model, "SCHOLAR_OPENAI_MODEL")
	set(&c.OpenAI.BaseURL, "SCHOLAR_OPENAI_BASE_URL")
	set(&c.Gemini.APIKey, "SCHOLAR_GEMINI_API_KEY")
	set(&c.Gemini.Model, "SCHOLAR_GEMINI_MODEL")
	set(&c.OpenRouter.APIKey, "SCHOLAR_OPENROUTER_API_KEY")
	set(&c.OpenRouter.Model, "SCHOLAR_OPENROUTER_MODEL")
	set(&c.Anthropic.APIKey, "SCHOLAR_ANTHROPIC_API_KEY")
	set(&c.Anthropic.Model, "SCHOLAR_ANTHROPIC_MODEL")
	set(&c.Ollama.Endpoint, "SCHOLAR_OLLAMA_ENDPOINT")
	set(&c.Ollama.Model, "SCHOLAR_OLLAMA_MODEL")

	if v := getenv("SCHOLAR_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retry.MaxAttempts = n
		}
	}
	if v := getenv("SCHOLAR_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}

	if getenv("SCHOLAR_LLM_PROVIDER") == "" && (c.Provider == "" || c.Provider == ProviderNone) {
		c.Provider = c.discover()
	}
}

func (c *Config) discover() string {
	switch {
	case c.OpenAI.APIKey != "":
		return ProviderOpenAI
	case c.Anthropic.APIKey != "":
		return ProviderAnthropic
	case c.Gemini.APIKey != "":
		return ProviderGemini
	case c.OpenRouter.APIKey != "":
		return ProviderOpenRouter
	}
	return ProviderNone
}

// Enabled reports whether a real provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai provider requires SCHOLAR_OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini provider requires SCHOLAR_GEMINI_API_KEY")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("openrouter provider requires SCHOLAR_OPENROUTER_API_KEY")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("anthropic provider requires SCHOLAR_ANTHROPIC_API_KEY")
		}
	case ProviderOllama:
		if c.Ollama.Endpoint == "" {
			return fmt.Errorf("ollama provider requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.InitialBackoff <= 0 || c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return fmt.Errorf("retry backoff must satisfy 0 < initial <= max")
	}
	return nil
}
