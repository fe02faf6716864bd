package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schema registry over HTTP",
		Long: `Start the schema registry API server.

Endpoints:
  GET    /api/schemas                  list stored schemas
  GET    /api/schemas/{name}           fetch a schema document
  PUT    /api/schemas/{name}           validate and store a document
  DELETE /api/schemas/{name}           remove a schema
  POST   /api/infer                    infer a schema from sample records
  GET    /api/schemas/{name}/query     parse a filter query (?q=...)
  GET    /api/schemas/{name}/projection derive rendering projections`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			if !cmd.Flags().Changed("port") {
				port = cmdCtx.Cfg.ServerPort
			}

			store, cleanup, err := openRegistry(cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Store:  store,
				Port:   port,
				Logger: cmdCtx.Logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8765, "Port to listen on")
	return cmd
}
