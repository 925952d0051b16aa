package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/config"
	"github.com/fleetshift/fleetshift/internal/scenario"
	"github.com/fleetshift/fleetshift/internal/tco"
)

// newScenarioCmd creates the scenario command group for persisting and
// recalling named input snapshots.
func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage saved calculation scenarios",
	}

	cmd.AddCommand(
		newScenarioSaveCmd(),
		newScenarioListCmd(),
		newScenarioShowCmd(),
		newScenarioDeleteCmd(),
		newScenarioRecomputeCmd(),
	)
	return cmd
}

// openStore opens the scenario database configured in the scenarios section,
// creating its parent directory on first use.
func openStore() (*scenario.SQLiteStore, error) {
	dbPath := config.GetGlobal().Scenarios.Database
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create scenario directory: %w", err)
	}

	store, err := scenario.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open scenario store: %w", err)
	}
	return store, nil
}

func newScenarioSaveCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Calculate and persist a named scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			results, err := tco.Calculate(inputs)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sc, err := store.Save(cmd.Context(), args[0], inputs, results)
			if err != nil {
				return fmt.Errorf("save scenario: %w", err)
			}

			logger.Info().Str("id", sc.ID).Str("name", sc.Name).Msg("scenario saved")
			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), sc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %q (%s)\n", sc.Name, sc.ID)
			return nil
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}

func newScenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			scenarios, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list scenarios: %w", err)
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), scenarios)
			}

			if len(scenarios) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved scenarios.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tName\tCreated\tClass\tFleet\tSavings")
			for _, sc := range scenarios {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					sc.ID, sc.Name,
					sc.CreatedAt.Format("2006-01-02 15:04"),
					sc.Inputs.VehicleClass, sc.Inputs.FleetSize,
					tco.FormatCurrency(sc.Results.Fleet.Savings))
			}
			return tw.Flush()
		},
	}
}

func newScenarioShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sc, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get scenario: %w", err)
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), sc)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scenario %q (%s), saved %s\n\n",
				sc.Name, sc.ID, sc.CreatedAt.Format("2006-01-02 15:04"))
			renderResults(cmd.OutOrStdout(), sc.Inputs, sc.Results)
			return nil
		},
	}
}

func newScenarioDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete scenario: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %s\n", args[0])
			return nil
		},
	}
}

func newScenarioRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute <id>",
		Short: "Refresh a scenario's results from its stored inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sc, err := store.Recompute(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("recompute scenario: %w", err)
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), sc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recomputed scenario %q (%s)\n", sc.Name, sc.ID)
			renderResults(cmd.OutOrStdout(), sc.Inputs, sc.Results)
			return nil
		},
	}
}
