package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/config"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans     service.PlanService
	GPA       service.GPAService
	Materials service.MaterialService
	Tutor     service.TutorService
	History   service.HistoryService
	Search    service.SearchService

	Config  config.Config
	Log     *logger.Logger
	Limiter ratelimit.Limiter

	// UserID is the local user every command acts as.
	UserID        string
	// IsInteractive enables huh forms and the bubbletea checklist.
	IsInteractive bool
	// Now overrides the clock; nil means time.Now.
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "scholar" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scholar",
		Short:         "Study planner, GPA tracker and AI tutor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newSubjectCmd(app),
		newPrefsCmd(app),
		newGenerateCmd(app),
		newTodayCmd(app),
		newTaskCmd(app),
		newAnalyticsCmd(app),
		newGPACmd(app),
		newMaterialCmd(app),
		newTutorCmd(app),
		newHistoryCmd(app),
		newSearchCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
	)

	return root
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
