package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/config"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	courseRepo := repository.NewSQLiteCourseRepo(database)
	materialRepo := repository.NewSQLiteMaterialRepo(database)
	interactionRepo := repository.NewSQLiteInteractionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(log)

	limiter, closeLimiter := newLimiter(ctx, cfg, log)
	defer closeLimiter()

	prefs, err := cfg.Planning.Preferences()
	if err != nil {
		return fmt.Errorf("planning defaults: %w", err)
	}
	policy, err := domain.ParseOverduePolicy(cfg.Planning.OverduePolicy)
	if err != nil {
		return fmt.Errorf("planning defaults: %w", err)
	}
	defaults := service.PlanDefaults{
		Preferences:   prefs,
		HorizonDays:   cfg.Planning.HorizonDays,
		OverduePolicy: policy,
		Location:      time.Local,
	}

	// A nil provider disables the tutor with llm.ErrDisabled.
	provider, err := llm.NewProvider(ctx, cfg.LLM, interactionRepo, log)
	if err != nil && !errors.Is(err, llm.ErrDisabled) {
		return fmt.Errorf("configuring AI provider: %w", err)
	}

	app := &cli.App{
		Plans:     service.NewPlanService(planRepo, uow, defaults, observer),
		GPA:       service.NewGPAService(courseRepo, observer),
		Materials: service.NewMaterialService(materialRepo, observer),
		Tutor:     service.NewTutorService(provider, materialRepo, uow, observer),
		History:   service.NewHistoryService(interactionRepo),
		Search:    service.NewSearchService(search.NewClient(cfg.Serper.APIKey, cfg.Serper.Endpoint), interactionRepo, observer),

		Config:  cfg,
		Log:     log,
		Limiter: limiter,
		UserID:  cfg.UserID,
	}

	// Forms and the checklist need a terminal on both ends.
	app.IsInteractive = isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newLimiter shares limits through Redis when configured and reachable,
// otherwise keeps them in process memory. The returned func releases the
// Redis connection.
func newLimiter(ctx context.Context, cfg config.Config, log *logger.Logger) (ratelimit.Limiter, func() error) {
	if cfg.Redis.Addr != "" {
		rdb, err := ratelimit.Dial(ctx, cfg.Redis.Addr)
		if err == nil {
			return ratelimit.NewRedisLimiter(rdb, "", cfg.HTTP.RateLimitPerMin, time.Minute), rdb.Close
		}
		log.Warn("redis unavailable, using in-memory rate limits", "addr", cfg.Redis.Addr, "error", err)
	}
	return ratelimit.NewMemoryLimiter(cfg.HTTP.RateLimitPerMin, time.Minute), func() error { return nil }
}
