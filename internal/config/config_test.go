package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.UserID)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 14, cfg.Planning.HorizonDays)
	assert.False(t, cfg.LLM.Enabled())

	prefs, err := cfg.Planning.Preferences()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
db: /tmp/s.db
user: ada
log:
  mode: dev
http:
  addr: ":9000"
  cors_origins: ["https://app.example"]
llm:
  provider: ollama
  ollama:
    model: qwen2.5
  timeout: 20s
planning:
  horizon_days: 21
  daily_study_hours: 2.5
  study_days: mon,wed,fri
  focus_mode: deep
  time_slots: [evening]
  overdue_policy: drop
`)
	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/s.db", cfg.DBPath)
	assert.Equal(t, "ada", cfg.UserID)
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, "warn", cfg.Log.Level, "unset keys keep defaults")
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://app.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5", cfg.LLM.Ollama.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.Endpoint)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 21, cfg.Planning.HorizonDays)

	prefs, err := cfg.Planning.Preferences()
	require.NoError(t, err)
	assert.Equal(t, 2.5, prefs.DailyStudyHours)
	assert.Equal(t, domain.FocusDeep, prefs.FocusMode)
	assert.Equal(t, []domain.TimeSlot{domain.SlotEvening}, prefs.PreferredTimeSlots)
	assert.True(t, prefs.StudyDays.Contains(time.Wednesday))
	assert.False(t, prefs.StudyDays.Contains(time.Tuesday))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "user: ada\nhttp:\n  rate_limit_per_min: 5\n")
	cfg, err := load(path, envMap(map[string]string{
		"SCHOLAR_USER":               "grace",
		"SCHOLAR_JWT_SECRET":         "s3cret",
		"SCHOLAR_CORS_ORIGINS":       "https://a, https://b ,",
		"SCHOLAR_RATE_LIMIT_PER_MIN": "60",
		"SCHOLAR_REDIS_ADDR":         "localhost:6379",
		"SCHOLAR_SERPER_API_KEY":     "serp",
		"SCHOLAR_OPENAI_API_KEY":     "sk",
	}))
	require.NoError(t, err)

	assert.Equal(t, "grace", cfg.UserID)
	assert.Equal(t, "s3cret", cfg.HTTP.JWTSecret)
	assert.Equal(t, []string{"https://a", "https://b"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 60, cfg.HTTP.RateLimitPerMin)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "serp", cfg.Serper.APIKey)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := load(writeFile(t, "user: [unclosed"), noEnv)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad focus", "planning:\n  focus_mode: frantic\n", "planning"},
		{"bad policy", "planning:\n  overdue_policy: ignore\n", "planning"},
		{"zero horizon", "planning:\n  horizon_days: 0\n", "horizon_days"},
		{"huge horizon", "planning:\n  horizon_days: 5000\n", "horizon too long"},
		{"bad hours", "planning:\n  daily_study_hours: 30\n", "daily study hours"},
		{"llm without key", "llm:\n  provider: anthropic\n", "llm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeFile(t, tt.body), noEnv)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
