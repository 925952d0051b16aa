package tco

// Toll rate constants (German truck toll, EUR per km).
//
// Electric trucks are toll-exempt until TollExemptionEnds; afterwards the
// reduced electric rate applies.
const (
	// TollRateDiesel is the toll rate for diesel trucks in EUR per highway km.
	TollRateDiesel = 0.348

	// TollRateElectric is the reduced toll rate for electric trucks in EUR per
	// highway km, charged only after the toll exemption expires.
	TollRateElectric = 0.19
)

// CO2 emission factors.
const (
	// CO2FactorDiesel is kg CO2 per liter of diesel burned.
	CO2FactorDiesel = 2.64

	// CO2FactorElectricity is kg CO2 per kWh (German grid mix).
	CO2FactorElectricity = 0.38
)

// PublicChargingPrice is the assumed public fast-charging price in EUR per kWh.
// It is blended with the operator's depot electricity price by the
// depot-charging share.
const PublicChargingPrice = 0.55

// Regulatory dates for electric truck incentives.
//
// The calculation assumes a fixed reference year so that results are
// deterministic; wall-clock time never enters the engine.
const (
	// CurrentYear is the reference year for exemption phase-out arithmetic.
	CurrentYear = 2026

	// TaxExemptionEnds is the calendar year the vehicle tax exemption expires.
	TaxExemptionEnds = 2030

	// TollExemptionEnds is the calendar year the toll exemption expires.
	TollExemptionEnds = 2031
)

// Purchase and end-of-life rates.
const (
	// ElectricSubsidyRate is the purchase subsidy fraction applied to the
	// electric list price (Sonder-AfA effect).
	ElectricSubsidyRate = 0.25

	// DieselResidualRate is the residual value fraction of the diesel
	// purchase price at the end of the usage period.
	DieselResidualRate = 0.15

	// ElectricResidualRate is the residual value fraction of the electric
	// purchase price at the end of the usage period.
	ElectricResidualRate = 0.20

	// ElectricTaxRate is the fraction of the diesel-equivalent vehicle tax
	// charged to electric trucks after the tax exemption expires.
	ElectricTaxRate = 0.25
)

// Infrastructure unit costs in EUR.
const (
	// ACChargerCost is the installed cost of one AC depot charging point.
	ACChargerCost = 8000.0

	// DCChargerCost is the installed cost of one DC fast-charging point.
	DCChargerCost = 50000.0

	// GridUpgradeCost is the one-time grid connection upgrade cost.
	GridUpgradeCost = 30000.0
)

// MaxRecommendations caps the advisory list; later rules are dropped once the
// cap is reached.
const MaxRecommendations = 5

// Depot charging tip heuristic constants.
//
// The savings estimate deliberately uses a flat consumption figure independent
// of the selected vehicle class; it is a rough annual estimate, not a full
// recomputation through the engine.
const (
	// depotTipThreshold is the depot-charging share below which the tip fires.
	depotTipThreshold = 0.6

	// depotTipConsumption is the flat consumption assumption in kWh/100km.
	depotTipConsumption = 120.0

	// depotTipShareStep is the depot-share increase the estimate assumes.
	depotTipShareStep = 0.2
)
