// Package cli implements the fleetshift command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/config"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the fleetshift CLI.
// It wires up configuration loading, logging and the subcommand groups
// (tco, scenario, vehicles, serve, config).
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fleetshift",
		Short:   "Diesel vs electric truck TCO calculator",
		Long:    "FleetShift: compare the total cost of ownership of diesel and electric truck fleets",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.Path()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			config.SetGlobal(cfg)

			setupLogging(cmd, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.fleetshift/config.yaml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table or json (default from configuration)")

	cmd.AddCommand(newTCOCmd(), newScenarioCmd(), newVehiclesCmd(), newServeCmd(), newConfigCmd())
	return cmd
}

const rootCmdExample = `  # Compare a single N3 truck over 8 years
  fleetshift tco calc --class N3 --mileage 120000 --years 8

  # Apply a usage profile template, then adjust the fleet size
  fleetshift tco calc --profile fernverkehr --fleet-size 10

  # Rank the cost drivers of the electric fleet TCO
  fleetshift tco sensitivity --class N3 --output json

  # Year-by-year cumulative cost series for charting
  fleetshift tco amortization --fleet-size 5 --infrastructure --charging-points 3

  # Adjust inputs interactively with live recomputation
  fleetshift tco tui

  # Persist the current inputs as a named scenario
  fleetshift scenario save "depot pilot" --fleet-size 5 --dc

  # Serve the engine as a JSON API
  fleetshift serve --listen 127.0.0.1:8383`
