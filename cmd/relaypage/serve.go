package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve collections over HTTP",
		Long: `Serve collections over HTTP:

  GET /collections/:name?first=&after=&last=&before=&sort=&direction=&where=
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := root.load(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := initializeApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return app.Serve(ctx)
		},
	}
}
