// Package config loads scholar settings from defaults, an optional YAML
// file and SCHOLAR_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
)

type Config struct {
	DBPath   string         `yaml:"db"`
	UserID   string         `yaml:"user"`
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Serper   SerperConfig   `yaml:"serper"`
	LLM      llm.Config     `yaml:"llm"`
	Planning PlanningConfig `yaml:"planning"`
}

type LogConfig struct {
	// Mode "dev" logs human-readable console lines; anything else logs JSON.
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

type HTTPConfig struct {
	Addr            string   `yaml:"addr"`
	JWTSecret       string   `yaml:"jwt_secret"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
}

type RedisConfig struct {
	// Addr enables the shared Redis rate limiter when set.
	Addr string `yaml:"addr"`
}

type SerperConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// PlanningConfig seeds the preferences of newly created plans.
type PlanningConfig struct {
	HorizonDays     int      `yaml:"horizon_days"`
	DailyStudyHours float64  `yaml:"daily_study_hours"`
	SessionMinutes  int      `yaml:"session_minutes"`
	BreakMinutes    int      `yaml:"break_minutes"`
	StudyDays       string   `yaml:"study_days"`
	FocusMode       string   `yaml:"focus_mode"`
	TimeSlots       []string `yaml:"time_slots"`
	OverduePolicy   string   `yaml:"overdue_policy"`
}

func Default() Config {
	prefs := domain.DefaultPreferences()
	return Config{
		DBPath: defaultDBPath(),
		UserID: "local",
		Log: LogConfig{
			Mode:  "prod",
			Level: "warn",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"http://localhost:5173"},
			RateLimitPerMin: 20,
		},
		LLM: llm.DefaultConfig(),
		Planning: PlanningConfig{
			HorizonDays:     14,
			DailyStudyHours: prefs.DailyStudyHours,
			SessionMinutes:  prefs.SessionDuration,
			BreakMinutes:    prefs.BreakDuration,
			StudyDays:       prefs.StudyDays.String(),
			FocusMode:       string(prefs.FocusMode),
			TimeSlots:       []string{string(domain.SlotMorning)},
			OverduePolicy:   string(domain.OverdueScheduleToday),
		},
	}
}

// DefaultPath is ~/.scholar/config.yaml, overridable with SCHOLAR_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("SCHOLAR_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scholar.yaml"
	}
	return filepath.Join(home, ".scholar", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scholar.db"
	}
	return filepath.Join(home, ".scholar", "scholar.db")
}

// Load reads path (a missing file is not an error), applies the process
// environment and validates the result.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.DBPath, "SCHOLAR_DB")
	set(&c.UserID, "SCHOLAR_USER")
	set(&c.Log.Mode, "SCHOLAR_LOG_MODE")
	set(&c.Log.Level, "SCHOLAR_LOG_LEVEL")
	set(&c.HTTP.Addr, "SCHOLAR_HTTP_ADDR")
	set(&c.HTTP.JWTSecret, "SCHOLAR_JWT_SECRET")
	set(&c.Redis.Addr, "SCHOLAR_REDIS_ADDR")
	set(&c.Serper.APIKey, "SCHOLAR_SERPER_API_KEY")

	if v := getenv("SCHOLAR_CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = splitList(v)
	}
	if v := getenv("SCHOLAR_RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTP.RateLimitPerMin = n
		}
	}

	c.LLM.ApplyEnv(getenv)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path must not be empty")
	}
	if c.UserID == "" {
		return fmt.Errorf("user must not be empty")
	}
	if c.HTTP.RateLimitPerMin <= 0 {
		return fmt.Errorf("http.rate_limit_per_min must be positive, got %d", c.HTTP.RateLimitPerMin)
	}
	if c.Planning.HorizonDays <= 0 {
		return fmt.Errorf("planning.horizon_days must be positive, got %d", c.Planning.HorizonDays)
	}
	if err := scheduler.CheckHorizon(c.Planning.HorizonDays); err != nil {
		return fmt.Errorf("planning.horizon_days: %w", err)
	}
	if _, err := c.Planning.Preferences(); err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	if _, err := domain.ParseOverduePolicy(c.Planning.OverduePolicy); err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// Preferences converts the planning defaults into domain preferences.
func (p PlanningConfig) Preferences() (domain.Preferences, error) {
	days, err := domain.ParseWeekdaySet(p.StudyDays)
	if err != nil {
		return domain.Preferences{}, err
	}
	focus, err := domain.ParseFocusMode(p.FocusMode)
	if err != nil {
		return domain.Preferences{}, err
	}
	slots := make([]domain.TimeSlot, 0, len(p.TimeSlots))
	for _, s := range p.TimeSlots {
		slot, err := domain.ParseTimeSlot(s)
		if err != nil {
			return domain.Preferences{}, err
		}
		slots = append(slots, slot)
	}

	prefs := domain.Preferences{
		DailyStudyHours:    p.DailyStudyHours,
		SessionDuration:    p.SessionMinutes,
		BreakDuration:      p.BreakMinutes,
		StudyDays:          days,
		FocusMode:          focus,
		PreferredTimeSlots: slots,
	}
	return prefs, prefs.Validate()
}
