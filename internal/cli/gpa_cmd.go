package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/gpa"
)

func newGPACmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpa",
		Short: "Track courses and compute the cumulative GPA",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printGPA(cmd, app)
		},
	}

	cmd.AddCommand(
		newGPAAddCmd(app),
		newGPAListCmd(app),
		newGPARemoveCmd(app),
		&cobra.Command{
			Use:   "show",
			Short: "Show the GPA summary",
			RunE: func(cmd *cobra.Command, args []string) error {
				return printGPA(cmd, app)
			},
		},
	)

	return cmd
}

func printGPA(cmd *cobra.Command, app *App) error {
	resp, err := app.GPA.Summary(context.Background(), app.UserID)
	if err != nil {
		return err
	}
	fmt.Fprint(out(cmd), formatter.FormatGPA(resp))
	return nil
}

func newGPAAddCmd(app *App) *cobra.Command {
	var req contract.CreateCourseRequest

	cmd := &cobra.Command{
		Use:   "add COURSE",
		Short: "Record a graded course",
		Long:  "Record a graded course. Accepted grades: " + strings.Join(gpa.Grades(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = args[0]
			c, err := app.GPA.AddCourse(context.Background(), app.UserID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added %s (%g credits, %s) [%s]\n", c.Name, c.Credits, c.Grade, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.Credits, "credits", 0, "Credit units")
	cmd.Flags().StringVar(&req.Grade, "grade", "", "Letter grade, e.g. A-")
	cmd.Flags().StringVar(&req.Code, "code", "", "Course code")
	cmd.Flags().StringVar(&req.Term, "term", "", "Term or semester label")
	_ = cmd.MarkFlagRequired("credits")
	_ = cmd.MarkFlagRequired("grade")

	return cmd
}

func newGPAListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := app.GPA.ListCourses(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatCourses(courses))
			return nil
		},
	}
}

func newGPARemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a course",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.GPA.RemoveCourse(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed course %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
