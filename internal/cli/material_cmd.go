package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
)

func newMaterialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "material",
		Aliases: []string{"materials"},
		Short:   "Manage study materials used by the tutor",
	}

	cmd.AddCommand(
		newMaterialAddCmd(app),
		newMaterialListCmd(app),
		newMaterialShowCmd(app),
		newMaterialRemoveCmd(app),
	)

	return cmd
}

func newMaterialAddCmd(app *App) *cobra.Command {
	var file, subject, text string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Store plain-text material from a file, --text or stdin (--file -)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.CreateMaterialRequest{Title: args[0], SubjectID: subject, Content: text}

			if file != "" {
				content, err := readMaterial(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				req.Content = content
				if file != "-" {
					req.Source = filepath.Base(file)
				}
			}

			m, err := app.Materials.Create(context.Background(), app.UserID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Stored %s (%d chars) [%s]\n", m.Title, len([]rune(m.Content)), formatter.TruncID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Text or markdown file to read (- for stdin)")
	cmd.Flags().StringVar(&text, "text", "", "Inline content")
	cmd.Flags().StringVar(&subject, "subject", "", "Related subject ID")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	cmd.MarkFlagsOneRequired("file", "text")

	return cmd
}

func readMaterial(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading material: %w", err)
	}
	return string(b), nil
}

func newMaterialListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			materials, err := app.Materials.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatMaterials(materials, app.now()))
			return nil
		},
	}
}

func newMaterialShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a material's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Materials.Get(ctx, app.UserID, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.Header(m.Title))
			fmt.Fprintln(out(cmd), m.Content)
			return nil
		},
	}
}

func newMaterialRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a material",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMaterialID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Materials.Delete(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed material %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
