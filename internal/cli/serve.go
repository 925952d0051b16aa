package cli

import (
	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/config"
	"github.com/fleetshift/fleetshift/internal/server"
)

// newServeCmd creates the serve command, which exposes the calculator and the
// scenario store as a JSON API.
func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := listen
			if addr == "" {
				addr = config.GetGlobal().Server.Listen
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(store, logger)
			logger.Info().Str("addr", addr).Msg("starting API server")
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from configuration)")
	return cmd
}
