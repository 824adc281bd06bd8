package commands

import (
	"github.com/spf13/cobra"

	"lingo/internal/web"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local web companion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = wire.Config.Serve.Addr
			}
			srv := web.New(wire.Session, wire.API,
				web.WithGatherer(wire.Registry),
				web.WithLogger(wire.Logger.With("component", "web")),
			)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
