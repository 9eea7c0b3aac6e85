package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Show or change scheduling preferences",
	}

	cmd.AddCommand(
		newPrefsShowCmd(app),
		newPrefsSetCmd(app),
	)

	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	var planInput string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(context.Background(), app, planInput)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatPreferences(p.Preferences))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)

	return cmd
}

func newPrefsSetCmd(app *App) *cobra.Command {
	var planInput, days, focus string
	var dailyHours float64
	var session, breakMin int
	var slots []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; unset flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, planInput)
			if err != nil {
				return err
			}

			patch, err := prefsPatchFromFlags(cmd, dailyHours, session, breakMin, days, focus, slots)
			if err != nil {
				return err
			}

			prefs, err := app.Plans.UpdatePreferences(ctx, app.UserID, planID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Preferences updated. Run `scholar generate` to rebuild the schedule.")
			fmt.Fprint(out(cmd), formatter.FormatPreferences(*prefs))
			return nil
		},
	}

	addPlanFlag(cmd.Flags(), &planInput)
	cmd.Flags().Float64Var(&dailyHours, "daily-hours", 0, "Study hours per day")
	cmd.Flags().IntVar(&session, "session", 0, "Session length in minutes")
	cmd.Flags().IntVar(&breakMin, "break", 0, "Break length in minutes")
	cmd.Flags().StringVar(&days, "days", "", "Study days, e.g. mon,tue,thu (empty string clears)")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus mode: balanced, deep or light")
	cmd.Flags().StringSliceVar(&slots, "slots", nil, "Preferred time slots: morning, afternoon, evening")

	return cmd
}

func prefsPatchFromFlags(cmd *cobra.Command, dailyHours float64, session, breakMin int, days, focus string, slots []string) (domain.PreferencesPatch, error) {
	var patch domain.PreferencesPatch
	flags := cmd.Flags()

	if flags.Changed("daily-hours") {
		patch.DailyStudyHours = &dailyHours
	}
	if flags.Changed("session") {
		patch.SessionDuration = &session
	}
	if flags.Changed("break") {
		patch.BreakDuration = &breakMin
	}
	if flags.Changed("days") {
		set, err := domain.ParseWeekdaySet(days)
		if err != nil {
			return patch, err
		}
		patch.StudyDays = &set
	}
	if flags.Changed("focus") {
		f, err := domain.ParseFocusMode(focus)
		if err != nil {
			return patch, err
		}
		patch.FocusMode = &f
	}
	for _, s := range slots {
		slot, err := domain.ParseTimeSlot(s)
		if err != nil {
			return patch, err
		}
		patch.PreferredTimeSlots = append(patch.PreferredTimeSlots, slot)
	}
	return patch, nil
}
