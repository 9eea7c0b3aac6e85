package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/httpapi"
)

var errNoJWTSecret = errors.New("http.jwt_secret is not set (config file or SCHOLAR_JWT_SECRET)")

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.HTTP.JWTSecret == "" {
				return errNoJWTSecret
			}
			if addr == "" {
				addr = app.Config.HTTP.Addr
			}
			if app.Config.Log.Mode != "dev" {
				gin.SetMode(gin.ReleaseMode)
			}

			router := httpapi.NewRouter(apiDeps(app))
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out(cmd), "Serving on %s\n", addr)
			return httpapi.Run(ctx, httpapi.NewServer(addr, router), app.Log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// apiDeps exposes the CLI's services over HTTP.
func apiDeps(app *App) httpapi.Deps {
	return httpapi.Deps{
		Plans:       app.Plans,
		GPA:         app.GPA,
		Materials:   app.Materials,
		Tutor:       app.Tutor,
		History:     app.History,
		Search:      app.Search,
		JWTSecret:   app.Config.HTTP.JWTSecret,
		CORSOrigins: app.Config.HTTP.CORSOrigins,
		Limiter:     app.Limiter,
		Log:         app.Log,
		Now:         app.Now,
	}
}

func newTokenCmd(app *App) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token [USER_ID]",
		Short: "Mint a bearer token for the API (defaults to the local user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.HTTP.JWTSecret == "" {
				return errNoJWTSecret
			}
			userID := app.UserID
			if len(args) == 1 {
				userID = args[0]
			}
			token, err := httpapi.IssueToken(app.Config.HTTP.JWTSecret, userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", httpapi.DefaultTokenTTL, "Token lifetime")

	return cmd
}
