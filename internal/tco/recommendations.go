package tco

import (
	"fmt"
	"math"
)

// Recommendations inspects a computed result set and the inputs that produced
// it and emits up to MaxRecommendations advisory items.
//
// Rules are evaluated in a fixed priority order and multiple rules may fire;
// the list is truncated to the first MaxRecommendations in evaluation order,
// never re-ranked by severity. A reminder about the THG credit is always
// appended last when room remains.
func Recommendations(inputs Inputs, results Results) []Recommendation {
	recs := make([]Recommendation, 0, MaxRecommendations)

	breakEven := float64(results.BreakEvenYears)
	if breakEven < 3 {
		recs = append(recs, Recommendation{
			ID:    "quick-breakeven",
			Type:  RecommendationSuccess,
			Title: "Quick break-even",
			Description: fmt.Sprintf("With a break-even of only %.0f months, now is an ideal time to switch.",
				float64(results.PaybackMonths)),
			Icon: "TrendingDown",
		})
	} else if breakEven > float64(inputs.UsageYears) {
		recs = append(recs, Recommendation{
			ID:          "long-breakeven",
			Type:        RecommendationWarning,
			Title:       "No break-even within usage period",
			Description: "Consider a longer usage period or review your electricity costs.",
			Icon:        "AlertTriangle",
		})
	}

	if inputs.DepotChargingShare < depotTipThreshold {
		// Rough annual estimate with a flat consumption figure; deliberately
		// not a recomputation through the engine.
		potential := math.Round((PublicChargingPrice - inputs.ElectricityPrice) *
			(inputs.AnnualMileage / 100) * depotTipConsumption * depotTipShareStep)
		recs = append(recs, Recommendation{
			ID:    "increase-depot-charging",
			Type:  RecommendationTip,
			Title: "More depot charging",
			Description: fmt.Sprintf("+20%% depot charging could save about %s per year.",
				FormatCurrency(potential)),
			Icon: "Battery",
		})
	}

	if inputs.FleetSize >= 5 && !inputs.IncludeInfrastructure {
		recs = append(recs, Recommendation{
			ID:          "consider-infrastructure",
			Type:        RecommendationInfo,
			Title:       "Plan charging infrastructure",
			Description: "With 5+ vehicles, owning charging infrastructure almost always pays off.",
			Icon:        "Plug",
		})
	}

	if inputs.AnnualMileage > 100000 && inputs.IncludeInfrastructure && !inputs.DCCharging {
		recs = append(recs, Recommendation{
			ID:          "dc-charger",
			Type:        RecommendationInfo,
			Title:       "DC fast charging recommended",
			Description: "At high mileage, DC charging increases vehicle availability.",
			Icon:        "Zap",
		})
	}

	if results.ROI > 50 {
		recs = append(recs, Recommendation{
			ID:    "high-roi",
			Type:  RecommendationSuccess,
			Title: "High ROI",
			Description: fmt.Sprintf("%.0f%% ROI over %d years - an attractive investment.",
				results.ROI, inputs.UsageYears),
			Icon: "TrendingUp",
		})
	}

	if results.CO2Savings > 100 {
		recs = append(recs, Recommendation{
			ID:    "co2-savings",
			Type:  RecommendationSuccess,
			Title: "Significant CO2 reduction",
			Description: fmt.Sprintf("%.0f tonnes less CO2 - good for CSR reporting.",
				results.CO2Savings),
			Icon: "Leaf",
		})
	}

	if CurrentYear+inputs.UsageYears > TaxExemptionEnds {
		recs = append(recs, Recommendation{
			ID:    "regulatory-change",
			Type:  RecommendationWarning,
			Title: "Incentives expiring",
			Description: fmt.Sprintf("Vehicle tax exemption ends %d, toll exemption %d. Already priced in.",
				TaxExemptionEnds, TollExemptionEnds),
			Icon: "Clock",
		})
	}

	recs = append(recs, Recommendation{
		ID:    "thg-quote",
		Type:  RecommendationInfo,
		Title: "Remember the THG quota",
		Description: fmt.Sprintf("Up to %s per vehicle and year through THG credit trading.",
			FormatCurrency(math.Abs(results.Electric.THGQuota))),
		Icon: "Euro",
	})

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
