package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/importer"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage study plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanActivateCmd(app),
		newPlanDeleteCmd(app),
		newPlanImportCmd(app),
		newPlanExportCmd(app),
	)

	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	var title, description, overdue string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a study plan (the first plan becomes active)",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Create(context.Background(), app.UserID, contract.CreatePlanRequest{
				Title:         title,
				Description:   description,
				OverduePolicy: overdue,
			})
			if err != nil {
				return err
			}

			status := ""
			if p.IsActive {
				status = " (active)"
			}
			fmt.Fprintf(out(cmd), "Created plan %s [%s]%s\n", p.Title, formatter.TruncID(p.ID), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&overdue, "overdue", "", "Overdue policy: schedule_today or drop")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List study plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	var sessions bool

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a plan (defaults to the active plan)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, app, input)
			if err != nil {
				return err
			}
			p, err := app.Plans.Get(ctx, app.UserID, planID)
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatPlan(p, app.now()))
			if sessions {
				fmt.Fprintln(out(cmd))
				fmt.Fprintln(out(cmd), formatter.Header("Schedule"))
				fmt.Fprint(out(cmd), formatter.FormatSchedule(p))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sessions, "sessions", false, "Also print every generated session")

	return cmd
}

func newPlanActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate ID",
		Short: "Make a plan the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Activate(ctx, app.UserID, planID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Activated plan %s\n", formatter.TruncID(planID))
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if app.IsInteractive && !force {
				confirmed := false
				if err := wizardConfirm("Delete this plan and all its sessions?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out(cmd), "Cancelled.")
					return nil
				}
			}

			if err := app.Plans.Delete(ctx, app.UserID, planID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted plan %s\n", formatter.TruncID(planID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.Import(context.Background(), app.UserID, schema)
			if err != nil {
				return err
			}

			status := ""
			if p.IsActive {
				status = " (active)"
			}
			fmt.Fprintf(out(cmd), "Imported plan %s [%s] with %d subjects%s\n",
				p.Title, formatter.TruncID(p.ID), len(p.Subjects), status)
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [ID]",
		Short: "Export a plan's subjects and preferences as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, app, input)
			if err != nil {
				return err
			}
			schema, err := app.Plans.Export(ctx, app.UserID, planID)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outPath == "" {
				_, err = out(cmd).Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Exported plan %s to %s\n", schema.Plan.Title, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}
