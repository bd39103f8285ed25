package cli

import (
	"github.com/spf13/cobra"

	"github.com/pkgdex/pkgdex/internal/web"
)

// serveCommand creates the serve subcommand, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP documentation API",
		Long:  "Starts an HTTP server exposing /api/v1/docs, /api/v1/search, and /api/v1/ecosystems. Shuts down gracefully on SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := c.newEngine(ctx, false)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			srv := web.New(engine, c.Logger, addr)
			c.Logger.Info("starting HTTP server", "addr", addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8383)")
	return cmd
}
