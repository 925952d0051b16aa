package tco

import "fmt"

// Amortization derives the year-by-year cumulative fleet cost series from a
// computed result set, for charting and break-even visualization.
//
// The series has exactly UsageYears+1 points, year 0 through UsageYears
// inclusive. Each point is computed in closed form from the purchase and
// annual totals; there is no shared accumulator.
func Amortization(inputs Inputs, results Results) []AmortizationPoint {
	fleetSize := float64(inputs.FleetSize)
	points := make([]AmortizationPoint, 0, inputs.UsageYears+1)

	for i := 0; i <= inputs.UsageYears; i++ {
		label := "Start"
		if i > 0 {
			label = fmt.Sprintf("Year %d", i)
		}
		year := float64(i)
		points = append(points, AmortizationPoint{
			Year:     i,
			Label:    label,
			Diesel:   (results.Diesel.Purchase + results.Diesel.AnnualTotal*year) * fleetSize,
			Electric: (results.Electric.NetPurchase+results.Electric.AnnualTotal*year)*fleetSize + results.Infrastructure.Cost,
		})
	}

	return points
}
