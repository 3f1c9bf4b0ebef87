package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geosql/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the rewrite API:

  GET|POST /api/v1/convert/sql2SQL   sql, geostore
  GET      /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			svc, err := cc.NewService()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Rewriter:          svc,
				Addr:              cc.Cfg.Server.Addr,
				ReadHeaderTimeout: cc.Cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cc.Cfg.Server.ShutdownTimeout,
				Logger:            cc.Logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :3000)")
	return cmd
}
