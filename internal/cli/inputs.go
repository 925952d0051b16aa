package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/config"
	"github.com/fleetshift/fleetshift/internal/tco"
)

// inputFlags holds the calculator input flags shared by the tco and scenario
// commands.
type inputFlags struct {
	fleetSize        int
	class            string
	profile          string
	mileage          float64
	years            int
	highwayShare     float64
	depotShare       float64
	dieselPrice      float64
	electricityPrice float64
	infrastructure   bool
	chargingPoints   int
	dcCharging       bool
	gridUpgrade      bool
}

// registerInputFlags binds the calculator input flags on a command.
func registerInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().IntVar(&flags.fleetSize, "fleet-size", 0, "number of trucks")
	cmd.Flags().StringVar(&flags.class, "class", "", "vehicle class: N1, N2 or N3")
	cmd.Flags().StringVar(&flags.profile, "profile", "",
		"usage profile template: kep, nahverkehr, fernverkehr or custom")
	cmd.Flags().Float64Var(&flags.mileage, "mileage", 0, "annual mileage in km")
	cmd.Flags().IntVar(&flags.years, "years", 0, "usage period in years")
	cmd.Flags().Float64Var(&flags.highwayShare, "highway-share", 0, "highway driving fraction (0-1)")
	cmd.Flags().Float64Var(&flags.depotShare, "depot-share", 0, "depot charging fraction (0-1)")
	cmd.Flags().Float64Var(&flags.dieselPrice, "diesel-price", 0, "diesel price in EUR/liter")
	cmd.Flags().Float64Var(&flags.electricityPrice, "electricity-price", 0, "depot electricity price in EUR/kWh")
	cmd.Flags().BoolVar(&flags.infrastructure, "infrastructure", false, "include charging infrastructure costs")
	cmd.Flags().IntVar(&flags.chargingPoints, "charging-points", 0, "number of charging points")
	cmd.Flags().BoolVar(&flags.dcCharging, "dc", false, "use DC fast chargers instead of AC")
	cmd.Flags().BoolVar(&flags.gridUpgrade, "grid-upgrade", false, "include a grid connection upgrade")
}

// buildInputs assembles the input record: configuration defaults, then the
// profile template, then explicit flag overrides.
//
// A manual edit to the mileage, highway-share or depot-share fields reverts
// the profile tag to custom; the tag is a display label, not a computation
// input.
func buildInputs(cmd *cobra.Command, flags inputFlags) (tco.Inputs, error) {
	inputs := config.GetGlobal().BaseInputs()

	if cmd.Flags().Changed("profile") {
		applied, err := inputs.ApplyProfile(tco.UsageProfileType(flags.profile))
		if err != nil {
			return tco.Inputs{}, err
		}
		inputs = applied
	}

	if cmd.Flags().Changed("fleet-size") {
		inputs.FleetSize = flags.fleetSize
	}
	if cmd.Flags().Changed("class") {
		inputs.VehicleClass = tco.VehicleClass(flags.class)
	}
	if cmd.Flags().Changed("years") {
		inputs.UsageYears = flags.years
	}
	if cmd.Flags().Changed("diesel-price") {
		inputs.DieselPrice = flags.dieselPrice
	}
	if cmd.Flags().Changed("electricity-price") {
		inputs.ElectricityPrice = flags.electricityPrice
	}
	if cmd.Flags().Changed("infrastructure") {
		inputs.IncludeInfrastructure = flags.infrastructure
	}
	if cmd.Flags().Changed("charging-points") {
		inputs.ChargingPoints = flags.chargingPoints
	}
	if cmd.Flags().Changed("dc") {
		inputs.DCCharging = flags.dcCharging
	}
	if cmd.Flags().Changed("grid-upgrade") {
		inputs.GridUpgrade = flags.gridUpgrade
	}

	patternEdited := false
	if cmd.Flags().Changed("mileage") {
		inputs.AnnualMileage = flags.mileage
		patternEdited = true
	}
	if cmd.Flags().Changed("highway-share") {
		inputs.HighwayShare = flags.highwayShare
		patternEdited = true
	}
	if cmd.Flags().Changed("depot-share") {
		inputs.DepotChargingShare = flags.depotShare
		patternEdited = true
	}
	if patternEdited {
		inputs.UsageProfile = tco.ProfileCustom
	}

	if err := inputs.Validate(); err != nil {
		return tco.Inputs{}, fmt.Errorf("invalid inputs: %w", err)
	}
	return inputs, nil
}
