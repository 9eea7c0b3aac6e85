package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

func newGenerateCmd(app *App) *cobra.Command {
	var planInput string
	var horizon int
	var dropOverdue, show bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the schedule from subjects and preferences",
		Long: `Generate replaces the plan's sessions with a fresh schedule covering the
next --horizon days. Completion marks on the old schedule are discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, planInput)
			if err != nil {
				return err
			}

			now := app.now()
			req := contract.GenerateRequest{Now: &now, HorizonDays: horizon}
			if dropOverdue {
				req.OverduePolicy = string(domain.OverdueDrop)
			}

			resp, err := app.Plans.Generate(ctx, app.UserID, planID, req)
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatGenerate(resp))
			if show {
				fmt.Fprintln(out(cmd))
				fmt.Fprint(out(cmd), formatter.FormatSchedule(resp.Plan))
			}
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Days to plan ahead (default from config)")
	cmd.Flags().BoolVar(&dropOverdue, "drop-overdue", false, "Leave subjects with past deadlines out")
	cmd.Flags().BoolVar(&show, "show", false, "Print the generated sessions")

	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's session of the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if interactive {
				if !app.IsInteractive {
					return fmt.Errorf("--interactive needs a terminal")
				}
				return runTodayChecklist(ctx, app)
			}

			view, err := app.Plans.Today(ctx, app.UserID, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.FormatToday(view))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Tick tasks off in a checklist")

	return cmd
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Mark scheduled tasks done or not done",
	}

	cmd.AddCommand(
		newTaskMarkCmd(app, "done", "Mark a task completed", true),
		newTaskMarkCmd(app, "undo", "Mark a task not completed", false),
		newTaskToggleCmd(app),
	)

	return cmd
}

func newTaskMarkCmd(app *App, use, short string, completed bool) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:   use + " TASK_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTask(cmd, app, planInput, args[0], &completed)
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}

func newTaskToggleCmd(app *App) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:   "toggle TASK_ID",
		Short: "Flip a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTask(cmd, app, planInput, args[0], nil)
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}

func setTask(cmd *cobra.Command, app *App, planInput, taskInput string, completed *bool) error {
	ctx := context.Background()
	p, err := loadPlan(ctx, app, planInput)
	if err != nil {
		return err
	}
	taskID, err := resolveTaskID(p, taskInput)
	if err != nil {
		return err
	}

	resp, err := app.Plans.SetTaskCompleted(ctx, app.UserID, p.ID, taskID, completed)
	if err != nil {
		return err
	}

	state := "not done"
	if resp.Completed {
		state = "done"
	}
	fmt.Fprintf(out(cmd), "Task %s marked %s. Session %s, overall %s.\n",
		formatter.TruncID(taskID), state,
		formatter.RenderProgress(resp.Session.CompletionRate, 10),
		formatter.RenderProgress(resp.Analytics.Efficiency, 10))
	return nil
}

func newAnalyticsCmd(app *App) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show progress and deadline risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, planInput)
			if err != nil {
				return err
			}
			resp, err := app.Plans.Analytics(ctx, app.UserID, planID, app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatAnalytics(resp))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}
