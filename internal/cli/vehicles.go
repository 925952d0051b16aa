package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fleetshift/fleetshift/internal/tco"
)

// newVehiclesCmd creates the vehicles command, which prints the reference
// vehicle classes and usage profile templates.
func newVehiclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "List the reference vehicle classes and usage profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			type catalog struct {
				Vehicles map[tco.VehicleClass]tco.VehicleProfile   `json:"vehicles"`
				Profiles map[tco.UsageProfileType]tco.UsageProfile `json:"profiles"`
			}

			vehicles := make(map[tco.VehicleClass]tco.VehicleProfile)
			for _, class := range tco.VehicleClasses() {
				profile, err := tco.VehicleProfileFor(class)
				if err != nil {
					return err
				}
				vehicles[class] = profile
			}
			profiles := make(map[tco.UsageProfileType]tco.UsageProfile)
			for _, typ := range tco.UsageProfileTypes() {
				profile, err := tco.UsageProfileFor(typ)
				if err != nil {
					return err
				}
				profiles[typ] = profile
			}

			if outputFormat(cmd) == "json" {
				return writeIndentedJSON(cmd.OutOrStdout(), catalog{
					Vehicles: vehicles,
					Profiles: profiles,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headingStyle.Render("Vehicle Classes"))
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Class\tName\tDiesel\tElectric\tConsumption")
			for _, class := range tco.VehicleClasses() {
				profile := vehicles[class]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s l / %s kWh per 100 km\n",
					class, profile.Name,
					tco.FormatCurrency(profile.DieselPurchase),
					tco.FormatCurrency(profile.ElectricPurchase),
					tco.FormatNumber(profile.DieselConsumption),
					tco.FormatNumber(profile.ElectricConsumption))
			}
			tw.Flush()

			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Usage Profiles"))
			tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Profile\tName\tMileage\tHighway\tDepot charging")
			for _, typ := range tco.UsageProfileTypes() {
				profile := profiles[typ]
				fmt.Fprintf(tw, "%s\t%s\t%s km\t%s\t%s\n",
					typ, profile.Name,
					tco.FormatNumber(profile.AnnualMileage),
					tco.FormatPercent(profile.HighwayShare*100),
					tco.FormatPercent(profile.DepotChargingShare*100))
			}
			return tw.Flush()
		},
	}
}
