package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// addPlanFlag registers --plan, which targets a plan other than the active one.
func addPlanFlag(fs *pflag.FlagSet, dst *string) {
	fs.StringVar(dst, "plan", "", "Plan ID or prefix (defaults to the active plan)")
}

// loadPlan resolves the --plan flag and fetches the plan.
func loadPlan(ctx context.Context, app *App, input string) (*domain.Plan, error) {
	planID, err := resolvePlanID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Plans.Get(ctx, app.UserID, planID)
}

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage the subjects of a plan",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectSetCmd(app),
		newSubjectRemoveCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var planInput string
	var in contract.SubjectInput

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a subject",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 1 {
				in.Name = args[0]
			}

			if in.Name == "" || (app.IsInteractive && cmd.Flags().NFlag() == 0) {
				if !app.IsInteractive {
					return fmt.Errorf("subject name is required")
				}
				if err := runSubjectForm(&in); err != nil {
					return err
				}
			}

			planID, err := resolvePlanID(ctx, app, planInput)
			if err != nil {
				return err
			}
			s, err := app.Plans.AddSubject(ctx, app.UserID, planID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added subject %s [%s]\n", s.Name, formatter.TruncID(s.ID))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)
	cmd.Flags().StringVar(&in.Priority, "priority", "", "high, medium or low (default medium)")
	cmd.Flags().StringVar(&in.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&in.EstimatedHours, "hours", 0, "Estimated study hours")
	cmd.Flags().StringVar(&in.Color, "color", "", "Display color (#RRGGBB)")

	return cmd
}

// runSubjectForm collects a subject interactively, keeping any values
// already set as defaults.
func runSubjectForm(in *contract.SubjectInput) error {
	hours := ""
	if in.EstimatedHours > 0 {
		hours = strconv.FormatFloat(in.EstimatedHours, 'f', -1, 64)
	}
	if in.Priority == "" {
		in.Priority = string(domain.PriorityMedium)
	}

	if err := subjectForm(in, &hours).Run(); err != nil {
		return err
	}

	h, err := strconv.ParseFloat(hours, 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", hours)
	}
	in.EstimatedHours = h
	return nil
}

func newSubjectListCmd(app *App) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(context.Background(), app, planInput)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatSubjects(p.Subjects, app.now()))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}

func newSubjectSetCmd(app *App) *cobra.Command {
	var planInput, name, priority, deadline, color string
	var hours float64
	var clearDeadline bool

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Edit a subject (ID, prefix or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPlan(ctx, app, planInput)
			if err != nil {
				return err
			}
			subjectID, err := resolveSubjectID(p, args[0])
			if err != nil {
				return err
			}

			var patch domain.SubjectPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("priority") {
				pr, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &pr
			}
			if flags.Changed("hours") {
				patch.EstimatedHours = &hours
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("deadline") {
				d, err := contract.ParseDate(deadline, app.location())
				if err != nil {
					return err
				}
				patch.Deadline = &d
			}
			patch.ClearDeadline = clearDeadline

			s, err := app.Plans.UpdateSubject(ctx, app.UserID, p.ID, subjectID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Updated subject %s [%s]\n", s.Name, formatter.TruncID(s.ID))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "Remove the deadline")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated study hours")
	cmd.Flags().StringVar(&color, "color", "", "Display color (#RRGGBB)")
	cmd.MarkFlagsMutuallyExclusive("deadline", "clear-deadline")

	return cmd
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a subject",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPlan(ctx, app, planInput)
			if err != nil {
				return err
			}
			subjectID, err := resolveSubjectID(p, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.RemoveSubject(ctx, app.UserID, p.ID, subjectID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed subject %s\n", formatter.TruncID(subjectID))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}

// location is where date-only input is interpreted.
func (a *App) location() *time.Location {
	return a.now().Location()
}
