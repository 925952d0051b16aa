package tco

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
)

// SensitivityParameter describes one tracked input with its valid domain.
type SensitivityParameter struct {
	// Key is the input field key.
	Key string `json:"key"`

	// Label is the display label.
	Label string `json:"label"`

	// Min and Max bound the perturbed values.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Step is the suggested adjustment granularity for interactive editing.
	Step float64 `json:"step"`

	// Unit is the display unit.
	Unit string `json:"unit"`
}

// Tracked parameter keys.
const (
	ParamElectricityPrice   = "electricity_price"
	ParamDieselPrice        = "diesel_price"
	ParamAnnualMileage      = "annual_mileage"
	ParamUsageYears         = "usage_years"
	ParamDepotChargingShare = "depot_charging_share"
)

// sensitivityParameters lists the tracked parameters in declaration order.
// The order is the tie-break for the ranking: the sort is stable.
//
//nolint:gochecknoglobals // Static reference table
var sensitivityParameters = []SensitivityParameter{
	{Key: ParamElectricityPrice, Label: "Electricity price", Min: 0.15, Max: 0.45, Step: 0.01, Unit: "€/kWh"},
	{Key: ParamDieselPrice, Label: "Diesel price", Min: 1.20, Max: 2.00, Step: 0.05, Unit: "€/L"},
	{Key: ParamAnnualMileage, Label: "Annual mileage", Min: 50000, Max: 200000, Step: 10000, Unit: "km"},
	{Key: ParamUsageYears, Label: "Usage period", Min: 4, Max: 12, Step: 1, Unit: "years"},
	{Key: ParamDepotChargingShare, Label: "Depot charging share", Min: 0.3, Max: 1.0, Step: 0.1, Unit: "%"},
}

// SensitivityParameters returns the tracked parameters in declaration order.
func SensitivityParameters() []SensitivityParameter {
	params := make([]SensitivityParameter, len(sensitivityParameters))
	copy(params, sensitivityParameters)
	return params
}

// relativeStep is the perturbation applied to unbounded-ratio parameters.
const relativeStep = 0.2

// Sensitivity perturbs each tracked parameter, recomputes the TCO with only
// that field changed, and ranks the parameters by impact magnitude (tornado
// ranking).
//
// The perturbation is ±20% relative, except the depot charging share which
// uses an absolute ±0.2 step since it is a bounded ratio. Perturbed values
// are clamped to the parameter domain; the returned rows carry the clamped
// values actually used. The impact percent is the larger absolute percent
// change of the fleet electric TCO against the baseline, so the ranking
// reflects magnitude of influence, not direction.
//
// The result is sorted descending by impact percent with a stable sort: ties
// keep parameter declaration order, making the ranking reproducible.
func Sensitivity(baseInputs Inputs) ([]SensitivityRow, error) {
	baseResults, err := Calculate(baseInputs)
	if err != nil {
		return nil, err
	}
	baseTCO := baseResults.Fleet.ElectricTCO

	rows := make([]SensitivityRow, 0, len(sensitivityParameters))
	for _, param := range sensitivityParameters {
		base, err := parameterValue(baseInputs, param.Key)
		if err != nil {
			return nil, err
		}

		var low, high float64
		if param.Key == ParamDepotChargingShare {
			low = math.Max(param.Min, base-relativeStep)
			high = math.Min(param.Max, base+relativeStep)
		} else {
			low = clamp(base*(1-relativeStep), param.Min, param.Max)
			high = clamp(base*(1+relativeStep), param.Min, param.Max)
		}

		lowInputs, err := withParameter(baseInputs, param.Key, low)
		if err != nil {
			return nil, err
		}
		lowResults, err := Calculate(lowInputs)
		if err != nil {
			return nil, err
		}

		highInputs, err := withParameter(baseInputs, param.Key, high)
		if err != nil {
			return nil, err
		}
		highResults, err := Calculate(highInputs)
		if err != nil {
			return nil, err
		}

		impactLow := (lowResults.Fleet.ElectricTCO - baseTCO) / baseTCO * 100
		impactHigh := (highResults.Fleet.ElectricTCO - baseTCO) / baseTCO * 100

		lowUsed, err := parameterValue(lowInputs, param.Key)
		if err != nil {
			return nil, err
		}
		highUsed, err := parameterValue(highInputs, param.Key)
		if err != nil {
			return nil, err
		}

		rows = append(rows, SensitivityRow{
			Parameter:     param.Key,
			Label:         param.Label,
			LowValue:      lowUsed,
			HighValue:     highUsed,
			LowTCO:        lowResults.Fleet.ElectricTCO,
			HighTCO:       highResults.Fleet.ElectricTCO,
			ImpactPercent: math.Max(math.Abs(impactLow), math.Abs(impactHigh)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ImpactPercent > rows[j].ImpactPercent
	})

	log.Debug().
		Str("component", "tco").
		Int("parameters", len(rows)).
		Str("top_driver", rows[0].Parameter).
		Msg("sensitivity analysis complete")

	return rows, nil
}

// clamp bounds v to [min, max].
func clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// parameterValue reads a tracked parameter from an input record.
func parameterValue(in Inputs, key string) (float64, error) {
	switch key {
	case ParamElectricityPrice:
		return in.ElectricityPrice, nil
	case ParamDieselPrice:
		return in.DieselPrice, nil
	case ParamAnnualMileage:
		return in.AnnualMileage, nil
	case ParamUsageYears:
		return float64(in.UsageYears), nil
	case ParamDepotChargingShare:
		return in.DepotChargingShare, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
}

// withParameter returns a copy of the input record with one tracked parameter
// replaced. The usage period is an integer field, so perturbed values are
// rounded to the nearest whole year.
func withParameter(in Inputs, key string, value float64) (Inputs, error) {
	switch key {
	case ParamElectricityPrice:
		in.ElectricityPrice = value
	case ParamDieselPrice:
		in.DieselPrice = value
	case ParamAnnualMileage:
		in.AnnualMileage = value
	case ParamUsageYears:
		in.UsageYears = int(math.Round(value))
	case ParamDepotChargingShare:
		in.DepotChargingShare = value
	default:
		return in, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	return in, nil
}
