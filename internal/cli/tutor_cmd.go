package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
)

func newTutorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Ask the AI tutor and generate study aids from materials",
	}

	cmd.AddCommand(
		newTutorAskCmd(app),
		newTutorNotesCmd(app),
		newTutorCardsCmd(app),
		newTutorQuizCmd(app),
		newTutorPackCmd(app),
	)

	return cmd
}

// spinnerOut is where progress spinners draw; nil disables them.
func spinnerOut(cmd *cobra.Command, app *App) io.Writer {
	if !app.IsInteractive {
		return nil
	}
	return cmd.ErrOrStderr()
}

func newTutorAskCmd(app *App) *cobra.Command {
	var material string

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask a question, optionally grounded on a material",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req := contract.ChatRequest{Message: strings.Join(args, " ")}
			if material != "" {
				id, err := resolveMaterialID(ctx, app, material)
				if err != nil {
					return err
				}
				req.MaterialID = id
			}

			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Thinking...")
			resp, err := app.Tutor.Chat(ctx, app.UserID, req)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(out(cmd), resp.Reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&material, "material", "", "Material ID to ground the answer on")

	return cmd
}

func newTutorNotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notes MATERIAL_ID",
		Short: "Summarize a material into structured notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Writing notes...")
			notes, err := app.Tutor.Notes(ctx, app.UserID, id)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatNotes(notes))
			return nil
		},
	}
}

func newTutorCardsCmd(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "flashcards MATERIAL_ID",
		Aliases: []string{"cards"},
		Short:   "Generate flashcards from a material",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Writing flashcards...")
			cards, err := app.Tutor.Flashcards(ctx, app.UserID, id, count)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatFlashcards(cards))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", service.DefaultFlashcardCount, "Number of cards")

	return cmd
}

func newTutorQuizCmd(app *App) *cobra.Command {
	var count int
	var reveal bool

	cmd := &cobra.Command{
		Use:   "quiz MATERIAL_ID",
		Short: "Generate a multiple-choice quiz from a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Writing quiz...")
			questions, err := app.Tutor.Quiz(ctx, app.UserID, id, count)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatQuiz(questions, reveal))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", service.DefaultQuizCount, "Number of questions")
	cmd.Flags().BoolVar(&reveal, "answers", false, "Show the answer key")

	return cmd
}

func newTutorPackCmd(app *App) *cobra.Command {
	var kinds []string
	var count int
	var reveal bool

	cmd := &cobra.Command{
		Use:   "pack MATERIAL_ID",
		Short: "Generate notes, flashcards and a quiz concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Building study pack...")
			pack, err := app.Tutor.StudyPack(ctx, app.UserID, contract.StudyAidRequest{MaterialID: id, Kinds: kinds, Count: count})
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(out(cmd), formatter.FormatStudyPack(pack, reveal))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "Subset of notes,flashcards,quiz (default all)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Cards and questions per kind (default per kind)")
	cmd.Flags().BoolVar(&reveal, "answers", false, "Show the quiz answer key")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var kind string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent tutor and search interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.History.List(context.Background(), app.UserID, kind, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatHistory(items, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter: chat, notes, flashcards, quiz or search")

	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the web for study resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner(spinnerOut(cmd, app), "Searching...")
			resp, err := app.Search.Search(context.Background(), app.UserID, strings.Join(args, " "), limit)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatSearchResults(resp.Results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultSearchLimit, "Maximum results")

	return cmd
}
