package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleetshift/fleetshift/internal/tco"
)

//nolint:gochecknoglobals // Shared render styles, constructed once
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	savingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	deficitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// writeIndentedJSON writes v as indented JSON, used by every command's json
// output mode.
func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResults(w io.Writer, inputs tco.Inputs, results tco.Results) {
	fmt.Fprintln(w, headingStyle.Render("TCO Comparison"))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"%d × %s, %s km/year over %d years",
		inputs.FleetSize, inputs.VehicleClass,
		tco.FormatNumber(inputs.AnnualMileage), inputs.UsageYears)))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tDiesel\tElectric")
	fmt.Fprintf(tw, "Purchase (net)\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.Purchase),
		tco.FormatCurrency(results.Electric.NetPurchase))
	fmt.Fprintf(tw, "Energy / year\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.Energy),
		tco.FormatCurrency(results.Electric.Energy))
	fmt.Fprintf(tw, "Toll / year\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.Toll),
		tco.FormatCurrency(results.Electric.Toll))
	fmt.Fprintf(tw, "Maintenance / year\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.Maintenance),
		tco.FormatCurrency(results.Electric.Maintenance))
	fmt.Fprintf(tw, "Insurance / year\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.Insurance),
		tco.FormatCurrency(results.Electric.Insurance))
	fmt.Fprintf(tw, "THG credit / year\t%s\t%s\n",
		"—", tco.FormatCurrency(results.Electric.THGQuota))
	fmt.Fprintf(tw, "Operating / year\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.AnnualTotal),
		tco.FormatCurrency(results.Electric.AnnualTotal))
	fmt.Fprintf(tw, "Cost per km\t%s\t%s\n",
		tco.FormatCostPerKm(results.Diesel.CostPerKm),
		tco.FormatCostPerKm(results.Electric.CostPerKm))
	fmt.Fprintf(tw, "TCO per vehicle\t%s\t%s\n",
		tco.FormatCurrency(results.Diesel.TCO),
		tco.FormatCurrency(results.Electric.TCO))
	fmt.Fprintf(tw, "TCO fleet\t%s\t%s\n",
		tco.FormatCurrency(results.Fleet.DieselTCO),
		tco.FormatCurrency(results.Fleet.ElectricTCO))
	tw.Flush()

	if results.Infrastructure.Cost > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Infrastructure: %s (%s per vehicle)\n",
			tco.FormatCurrency(results.Infrastructure.Cost),
			tco.FormatCurrency(results.Infrastructure.PerVehicle))
	}

	fmt.Fprintln(w)
	savingsStyle := savingStyle
	if results.Fleet.Savings < 0 {
		savingsStyle = deficitStyle
	}
	fmt.Fprintf(w, "Fleet savings:  %s\n",
		savingsStyle.Render(tco.FormatCurrency(results.Fleet.Savings)))
	fmt.Fprintf(w, "Break-even:     %s\n", tco.FormatYears(results.BreakEvenYears))
	fmt.Fprintf(w, "ROI:            %s\n", tco.FormatPercent(results.ROI))
	fmt.Fprintf(w, "CO2 reduction:  %s t over %d years\n",
		tco.FormatNumber(results.CO2Savings), inputs.UsageYears)
}

func renderAmortization(w io.Writer, series []tco.AmortizationPoint) {
	fmt.Fprintln(w, headingStyle.Render("Cumulative Fleet Costs"))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tDiesel\tElectric\tDelta")
	for _, point := range series {
		delta := point.Diesel - point.Electric
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			point.Label,
			tco.FormatCurrency(point.Diesel),
			tco.FormatCurrency(point.Electric),
			tco.FormatCurrency(delta))
	}
	tw.Flush()
}

func renderSensitivity(w io.Writer, rows []tco.SensitivityRow) {
	fmt.Fprintln(w, headingStyle.Render("Sensitivity (fleet electric TCO)"))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Parameter\tRange\tTCO low\tTCO high\tImpact")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s – %s\t%s\t%s\t%s\n",
			row.Label,
			tco.FormatNumber(row.LowValue),
			tco.FormatNumber(row.HighValue),
			tco.FormatCurrency(row.LowTCO),
			tco.FormatCurrency(row.HighTCO),
			tco.FormatPercent(row.ImpactPercent))
	}
	tw.Flush()
}

func renderRecommendations(w io.Writer, recs []tco.Recommendation) {
	fmt.Fprintln(w, headingStyle.Render("Recommendations"))
	fmt.Fprintln(w)
	if len(recs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("none"))
		return
	}
	for _, rec := range recs {
		tag := strings.ToUpper(string(rec.Type))
		style := mutedStyle
		switch rec.Type {
		case tco.RecommendationSuccess:
			style = savingStyle
		case tco.RecommendationWarning:
			style = deficitStyle
		}
		fmt.Fprintf(w, "%s %s\n", style.Render("["+tag+"]"), headingStyle.Render(rec.Title))
		fmt.Fprintf(w, "  %s\n", rec.Description)
	}
}
