package tco

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate computes the full cost, emission and ROI result set for one input
// record.
//
// The computation is deterministic and performs no I/O: results depend only
// on the inputs and the static reference tables. No rounding happens inside
// the engine; formatting is a presentation concern.
//
// It returns an error wrapping ErrInvalidInput for inputs outside their
// domain and ErrUnknownVehicleClass / ErrUnknownUsageProfile for reference
// keys not present in the tables.
func Calculate(inputs Inputs) (Results, error) {
	if err := inputs.Validate(); err != nil {
		return Results{}, err
	}

	vd, err := VehicleProfileFor(inputs.VehicleClass)
	if err != nil {
		return Results{}, err
	}

	fleetSize := float64(inputs.FleetSize)
	usageYears := float64(inputs.UsageYears)

	// Diesel annual operating cost.
	dieselEnergy := (inputs.AnnualMileage / 100) * vd.DieselConsumption * inputs.DieselPrice
	dieselToll := inputs.AnnualMileage * inputs.HighwayShare * TollRateDiesel
	dieselMaintenance := inputs.AnnualMileage * vd.MaintenanceDiesel
	dieselAnnualTotal := dieselEnergy + dieselToll + dieselMaintenance + vd.InsuranceDiesel + vd.DieselTax

	// Electric annual operating cost at the blended charging price. The THG
	// credit reduces cost.
	blendedPrice := inputs.ElectricityPrice*inputs.DepotChargingShare +
		PublicChargingPrice*(1-inputs.DepotChargingShare)
	electricEnergy := (inputs.AnnualMileage / 100) * vd.ElectricConsumption * blendedPrice
	electricMaintenance := inputs.AnnualMileage * vd.MaintenanceElectric
	electricAnnualTotal := electricEnergy + electricMaintenance + vd.InsuranceElectric - vd.THGQuota

	// Regulatory phase-out: tax and toll exemptions expire on fixed calendar
	// years. Post-exemption years accrue fleet-level absolute totals, folded
	// into per-vehicle TCO divided by fleet size.
	taxExemptYears := math.Min(usageYears, math.Max(0, TaxExemptionEnds-CurrentYear))
	tollExemptYears := math.Min(usageYears, math.Max(0, TollExemptionEnds-CurrentYear))
	electricTaxTotal := vd.DieselTax * ElectricTaxRate * (usageYears - taxExemptYears)
	electricTollTotal := inputs.AnnualMileage * inputs.HighwayShare * TollRateElectric * (usageYears - tollExemptYears)

	// Purchase prices and residual values.
	electricNetPurchase := vd.ElectricPurchase * (1 - ElectricSubsidyRate)
	dieselResidual := vd.DieselPurchase * DieselResidualRate
	electricResidual := vd.ElectricPurchase * ElectricResidualRate

	// Charging infrastructure, zero unless included.
	infrastructureCost := 0.0
	if inputs.IncludeInfrastructure {
		unitCost := ACChargerCost
		if inputs.DCCharging {
			unitCost = DCChargerCost
		}
		infrastructureCost = float64(inputs.ChargingPoints) * unitCost
		if inputs.GridUpgrade {
			infrastructureCost += GridUpgradeCost
		}
	}

	// Per-vehicle TCO.
	dieselTCO := vd.DieselPurchase + dieselAnnualTotal*usageYears - dieselResidual
	electricTCO := electricNetPurchase + electricAnnualTotal*usageYears +
		electricTaxTotal/fleetSize + electricTollTotal/fleetSize -
		electricResidual + infrastructureCost/fleetSize

	// Fleet aggregation.
	fleetDieselTCO := dieselTCO * fleetSize
	fleetElectricTCO := electricTCO * fleetSize
	fleetInvestment := electricNetPurchase*fleetSize + infrastructureCost

	// Break-even on the operating-cost delta only; regulatory and
	// infrastructure terms excluded. Unreachable when electric is not cheaper
	// to run.
	annualSavings := dieselAnnualTotal - electricAnnualTotal
	purchaseDiff := electricNetPurchase - vd.DieselPurchase + infrastructureCost/fleetSize
	breakEvenYears := math.Inf(1)
	if annualSavings > 0 {
		breakEvenYears = purchaseDiff / annualSavings
	}
	breakEvenYears = math.Max(0, breakEvenYears)

	// Fleet CO2 over the usage period, tonnes.
	dieselCO2 := (inputs.AnnualMileage / 100) * vd.DieselConsumption * CO2FactorDiesel * usageYears / 1000
	electricCO2 := (inputs.AnnualMileage / 100) * vd.ElectricConsumption * CO2FactorElectricity * usageYears / 1000

	results := Results{
		Diesel: DieselCosts{
			Purchase:    vd.DieselPurchase,
			AnnualTotal: dieselAnnualTotal,
			Energy:      dieselEnergy,
			Toll:        dieselToll,
			Maintenance: dieselMaintenance,
			Insurance:   vd.InsuranceDiesel,
			TCO:         dieselTCO,
			CostPerKm:   dieselAnnualTotal / inputs.AnnualMileage,
		},
		Electric: ElectricCosts{
			Purchase:    vd.ElectricPurchase,
			NetPurchase: electricNetPurchase,
			AnnualTotal: electricAnnualTotal,
			Energy:      electricEnergy,
			Toll:        0,
			Maintenance: electricMaintenance,
			Insurance:   vd.InsuranceElectric,
			THGQuota:    -vd.THGQuota,
			TCO:         electricTCO,
			CostPerKm:   electricAnnualTotal / inputs.AnnualMileage,
		},
		Fleet: FleetTotals{
			DieselTCO:   fleetDieselTCO,
			ElectricTCO: fleetElectricTCO,
			Investment:  fleetInvestment,
			Savings:     fleetDieselTCO - fleetElectricTCO,
		},
		Infrastructure: InfrastructureCosts{
			Cost:       infrastructureCost,
			PerVehicle: infrastructureCost / fleetSize,
		},
		Savings:        dieselTCO - electricTCO,
		AnnualSavings:  annualSavings,
		BreakEvenYears: BreakEven(breakEvenYears),
		PaybackMonths:  BreakEven(breakEvenYears * 12),
		ROI:            (fleetDieselTCO - fleetElectricTCO) / fleetInvestment * 100,
		CO2Savings:     (dieselCO2 - electricCO2) * fleetSize,
		DieselCO2:      dieselCO2 * fleetSize,
	}

	log.Debug().
		Str("component", "tco").
		Str("vehicle_class", string(inputs.VehicleClass)).
		Int("fleet_size", inputs.FleetSize).
		Float64("fleet_diesel_tco", fleetDieselTCO).
		Float64("fleet_electric_tco", fleetElectricTCO).
		Msg("calculation complete")

	return results, nil
}
