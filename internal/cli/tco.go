package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/tco"
	"github.com/fleetshift/fleetshift/internal/tui"
)

// newTCOCmd creates the tco command group: the calculator and its derived
// views (amortization, sensitivity, recommendations, tui).
func newTCOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tco",
		Short: "Calculate diesel vs electric total cost of ownership",
	}

	cmd.AddCommand(
		newTCOCalcCmd(),
		newTCOAmortizationCmd(),
		newTCOSensitivityCmd(),
		newTCORecommendationsCmd(),
		newTCOTUICmd(),
	)
	return cmd
}

func newTCOCalcCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the TCO comparison for the given inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			results, err := tco.Calculate(inputs)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), results)
			}
			renderResults(cmd.OutOrStdout(), inputs, results)
			return nil
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}

func newTCOAmortizationCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "amortization",
		Short: "Print the year-by-year cumulative cost series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			results, err := tco.Calculate(inputs)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}
			series := tco.Amortization(inputs, results)

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), series)
			}
			renderAmortization(cmd.OutOrStdout(), series)
			return nil
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}

func newTCOSensitivityCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Rank input parameters by their impact on the electric fleet TCO",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			rows, err := tco.Sensitivity(inputs)
			if err != nil {
				return fmt.Errorf("sensitivity: %w", err)
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), rows)
			}
			renderSensitivity(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}

func newTCORecommendationsCmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "recommendations",
		Short: "Derive advisory items from the comparison",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			results, err := tco.Calculate(inputs)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}
			recs := tco.Recommendations(inputs, results)

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), recs)
			}
			renderRecommendations(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}

func newTCOTUICmd() *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Adjust inputs interactively with live recomputation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := buildInputs(cmd, flags)
			if err != nil {
				return err
			}
			return tui.Run(inputs)
		},
	}
	registerInputFlags(cmd, &flags)
	return cmd
}
