// Package tco implements the diesel versus electric truck total cost of
// ownership engine.
//
// The package exposes four pure functions over an immutable Inputs record and
// static reference tables: Calculate, Amortization, Sensitivity and
// Recommendations. All computation is synchronous, deterministic and free of
// I/O; identical inputs always yield identical outputs. Formatting is kept
// strictly separate from the numeric results (see formatter.go).
package tco

import (
	"encoding/json"
	"fmt"
	"math"
)

// VehicleClass identifies a truck category in the reference tables.
type VehicleClass string

// Supported vehicle classes.
const (
	// ClassN1 covers vans up to 3.5 tonnes.
	ClassN1 VehicleClass = "N1"

	// ClassN2 covers distribution trucks between 3.5 and 12 tonnes.
	ClassN2 VehicleClass = "N2"

	// ClassN3 covers heavy trucks above 12 tonnes.
	ClassN3 VehicleClass = "N3"
)

// UsageProfileType identifies a named driving-pattern template.
//
// Applying a named profile overwrites the mileage, highway-share and
// depot-charging-share inputs. The tag itself is a display label: any manual
// edit to those fields reverts it to ProfileCustom, and it never influences
// the computation.
type UsageProfileType string

// Supported usage profiles.
const (
	// ProfileKEP is parcel/courier duty: short urban routes, full depot charging.
	ProfileKEP UsageProfileType = "kep"

	// ProfileRegional is regional distribution duty.
	ProfileRegional UsageProfileType = "nahverkehr"

	// ProfileLongHaul is long-haul duty: high mileage, mostly highway.
	ProfileLongHaul UsageProfileType = "fernverkehr"

	// ProfileCustom marks manually entered values.
	ProfileCustom UsageProfileType = "custom"
)

// VehicleProfile holds the per-class technical and economic reference data.
// Profiles are immutable and looked up by class, never mutated.
type VehicleProfile struct {
	// Name is the display name, e.g. "N3 - Sattelzug".
	Name string `json:"name"`

	// Specs is the short spec string, e.g. "über 12 Tonnen".
	Specs string `json:"specs"`

	// DieselConsumption is liters per 100 km.
	DieselConsumption float64 `json:"diesel_consumption"`

	// ElectricConsumption is kWh per 100 km.
	ElectricConsumption float64 `json:"electric_consumption"`

	// DieselPurchase is the diesel list price in EUR.
	DieselPurchase float64 `json:"diesel_purchase"`

	// ElectricPurchase is the electric list price in EUR, before subsidy.
	ElectricPurchase float64 `json:"electric_purchase"`

	// THGQuota is the annual emissions-trading credit in EUR per vehicle.
	THGQuota float64 `json:"thg_quota"`

	// MaintenanceDiesel is the diesel maintenance rate in EUR per km.
	MaintenanceDiesel float64 `json:"maintenance_diesel"`

	// MaintenanceElectric is the electric maintenance rate in EUR per km.
	MaintenanceElectric float64 `json:"maintenance_electric"`

	// InsuranceDiesel is the fixed annual diesel insurance in EUR.
	InsuranceDiesel float64 `json:"insurance_diesel"`

	// InsuranceElectric is the fixed annual electric insurance in EUR.
	InsuranceElectric float64 `json:"insurance_electric"`

	// DieselTax is the fixed annual vehicle tax for the diesel variant in EUR.
	DieselTax float64 `json:"diesel_tax"`
}

// UsageProfile holds the default driving pattern for a profile type.
type UsageProfile struct {
	// Name is the display name, e.g. "Fernverkehr".
	Name string `json:"name"`

	// Description is the short characterization, e.g. "~600 km/Tag, Langstrecke".
	Description string `json:"description"`

	// AnnualMileage is the default annual mileage in km.
	AnnualMileage float64 `json:"annual_mileage"`

	// HighwayShare is the default highway driving fraction in [0,1].
	HighwayShare float64 `json:"highway_share"`

	// DepotChargingShare is the default depot charging fraction in [0,1].
	DepotChargingShare float64 `json:"depot_charging_share"`
}

// Inputs is the complete parameter set for one computation. It is the sole
// input to every downstream function; no hidden state affects results.
type Inputs struct {
	// FleetSize is the number of trucks, at least 1.
	FleetSize int `json:"fleet_size"`

	// UsageProfile is the active profile tag (display label only).
	UsageProfile UsageProfileType `json:"usage_profile"`

	// VehicleClass selects the reference VehicleProfile.
	VehicleClass VehicleClass `json:"vehicle_class"`

	// AnnualMileage is km per year per vehicle, greater than 0.
	AnnualMileage float64 `json:"annual_mileage"`

	// UsageYears is the usage period in whole years, at least 1.
	UsageYears int `json:"usage_years"`

	// HighwayShare is the highway driving fraction in [0,1].
	HighwayShare float64 `json:"highway_share"`

	// DepotChargingShare is the depot charging fraction in [0,1].
	DepotChargingShare float64 `json:"depot_charging_share"`

	// DieselPrice is EUR per liter, greater than 0.
	DieselPrice float64 `json:"diesel_price"`

	// ElectricityPrice is the depot electricity price in EUR per kWh,
	// greater than 0.
	ElectricityPrice float64 `json:"electricity_price"`

	// IncludeInfrastructure enables charging infrastructure costs.
	IncludeInfrastructure bool `json:"include_infrastructure"`

	// ChargingPoints is the number of charging points, at least 1.
	ChargingPoints int `json:"charging_points"`

	// DCCharging selects DC fast chargers instead of AC chargers.
	DCCharging bool `json:"dc_charging"`

	// GridUpgrade adds a one-time grid connection upgrade.
	GridUpgrade bool `json:"grid_upgrade"`
}

// Validate checks every domain constraint on the input record. It returns an
// error wrapping ErrInvalidInput naming the first offending field, or nil.
//
// Validation happens once at this boundary; the engine never silently clamps
// an out-of-domain value (sensitivity's clamping of perturbed values is a
// designed behavior, not error recovery).
func (in Inputs) Validate() error {
	switch {
	case in.FleetSize < 1:
		return fmt.Errorf("%w: fleet size must be at least 1, got %d", ErrInvalidInput, in.FleetSize)
	case in.AnnualMileage <= 0:
		return fmt.Errorf("%w: annual mileage must be positive, got %g", ErrInvalidInput, in.AnnualMileage)
	case in.UsageYears < 1:
		return fmt.Errorf("%w: usage years must be at least 1, got %d", ErrInvalidInput, in.UsageYears)
	case in.HighwayShare < 0 || in.HighwayShare > 1:
		return fmt.Errorf("%w: highway share must be within [0,1], got %g", ErrInvalidInput, in.HighwayShare)
	case in.DepotChargingShare < 0 || in.DepotChargingShare > 1:
		return fmt.Errorf("%w: depot charging share must be within [0,1], got %g", ErrInvalidInput, in.DepotChargingShare)
	case in.DieselPrice <= 0:
		return fmt.Errorf("%w: diesel price must be positive, got %g", ErrInvalidInput, in.DieselPrice)
	case in.ElectricityPrice <= 0:
		return fmt.Errorf("%w: electricity price must be positive, got %g", ErrInvalidInput, in.ElectricityPrice)
	case in.ChargingPoints < 1:
		return fmt.Errorf("%w: charging points must be at least 1, got %d", ErrInvalidInput, in.ChargingPoints)
	}

	if _, err := VehicleProfileFor(in.VehicleClass); err != nil {
		return err
	}
	if _, err := UsageProfileFor(in.UsageProfile); err != nil {
		return err
	}

	return nil
}

// ApplyProfile overwrites the driving-pattern fields from the named template
// and sets the profile tag. It returns an error wrapping
// ErrUnknownUsageProfile for an unknown key.
func (in Inputs) ApplyProfile(profile UsageProfileType) (Inputs, error) {
	tmpl, err := UsageProfileFor(profile)
	if err != nil {
		return in, err
	}

	in.UsageProfile = profile
	in.AnnualMileage = tmpl.AnnualMileage
	in.HighwayShare = tmpl.HighwayShare
	in.DepotChargingShare = tmpl.DepotChargingShare
	return in, nil
}

// BreakEven is a duration-like value that may be unreachable.
//
// The unreachable sentinel is +Inf, which JSON cannot represent; it is
// marshaled as null and unmarshaled back to +Inf.
type BreakEven float64

// Reachable reports whether the value is finite.
func (b BreakEven) Reachable() bool {
	return !math.IsInf(float64(b), 0) && !math.IsNaN(float64(b))
}

// MarshalJSON encodes unreachable values as null.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.Reachable() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(b))
}

// UnmarshalJSON decodes null as the unreachable sentinel.
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = BreakEven(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = BreakEven(f)
	return nil
}

// DieselCosts is the per-vehicle diesel cost breakdown.
type DieselCosts struct {
	// Purchase is the list price in EUR.
	Purchase float64 `json:"purchase"`

	// AnnualTotal is the annual operating cost in EUR.
	AnnualTotal float64 `json:"annual_total"`

	// Energy is the annual fuel cost in EUR.
	Energy float64 `json:"energy"`

	// Toll is the annual toll cost in EUR.
	Toll float64 `json:"toll"`

	// Maintenance is the annual maintenance cost in EUR.
	Maintenance float64 `json:"maintenance"`

	// Insurance is the annual insurance cost in EUR.
	Insurance float64 `json:"insurance"`

	// TCO is the per-vehicle total cost of ownership in EUR.
	TCO float64 `json:"tco"`

	// CostPerKm is the annual operating cost divided by annual mileage.
	CostPerKm float64 `json:"cost_per_km"`
}

// ElectricCosts is the per-vehicle electric cost breakdown.
type ElectricCosts struct {
	// Purchase is the gross list price in EUR, before subsidy.
	Purchase float64 `json:"purchase"`

	// NetPurchase is the list price after the purchase subsidy in EUR.
	NetPurchase float64 `json:"net_purchase"`

	// AnnualTotal is the annual operating cost in EUR, THG credit included.
	AnnualTotal float64 `json:"annual_total"`

	// Energy is the annual charging cost at the blended price in EUR.
	Energy float64 `json:"energy"`

	// Toll is the annual toll during the exemption period (always 0; the
	// post-exemption toll is a fleet-level total folded into TCO).
	Toll float64 `json:"toll"`

	// Maintenance is the annual maintenance cost in EUR.
	Maintenance float64 `json:"maintenance"`

	// Insurance is the annual insurance cost in EUR.
	Insurance float64 `json:"insurance"`

	// THGQuota is the annual emissions-trading credit, negative-signed since
	// it reduces cost.
	THGQuota float64 `json:"thg_quota"`

	// TCO is the per-vehicle total cost of ownership in EUR.
	TCO float64 `json:"tco"`

	// CostPerKm is the annual operating cost divided by annual mileage.
	CostPerKm float64 `json:"cost_per_km"`
}

// FleetTotals aggregates per-vehicle results over the fleet.
type FleetTotals struct {
	// DieselTCO is the fleet diesel total cost of ownership in EUR.
	DieselTCO float64 `json:"diesel_tco"`

	// ElectricTCO is the fleet electric total cost of ownership in EUR.
	ElectricTCO float64 `json:"electric_tco"`

	// Investment is the fleet electric purchase plus infrastructure in EUR.
	Investment float64 `json:"investment"`

	// Savings is fleet diesel TCO minus fleet electric TCO in EUR.
	Savings float64 `json:"savings"`
}

// InfrastructureCosts holds the charging infrastructure cost.
type InfrastructureCosts struct {
	// Cost is the total infrastructure cost in EUR (0 when not included).
	Cost float64 `json:"cost"`

	// PerVehicle is Cost divided by fleet size.
	PerVehicle float64 `json:"per_vehicle"`
}

// Results is the complete output of one calculation. It is a pure function of
// Inputs and the static reference tables, recomputed rather than mutated on
// every input change.
type Results struct {
	// Diesel is the per-vehicle diesel breakdown.
	Diesel DieselCosts `json:"diesel"`

	// Electric is the per-vehicle electric breakdown.
	Electric ElectricCosts `json:"electric"`

	// Fleet is the fleet-level aggregation.
	Fleet FleetTotals `json:"fleet"`

	// Infrastructure is the charging infrastructure cost.
	Infrastructure InfrastructureCosts `json:"infrastructure"`

	// Savings is the per-vehicle TCO advantage of electric in EUR.
	Savings float64 `json:"savings"`

	// AnnualSavings is the per-vehicle operating-cost delta in EUR per year,
	// regulatory and infrastructure terms excluded.
	AnnualSavings float64 `json:"annual_savings"`

	// BreakEvenYears is the break-even point in years, unreachable when
	// electric is not cheaper to run, clamped to 0 as a display floor.
	BreakEvenYears BreakEven `json:"break_even_years"`

	// PaybackMonths is BreakEvenYears expressed in months.
	PaybackMonths BreakEven `json:"payback_months"`

	// ROI is the return on investment in percent.
	ROI float64 `json:"roi"`

	// CO2Savings is the fleet CO2 reduction over the usage period in tonnes.
	CO2Savings float64 `json:"co2_savings"`

	// DieselCO2 is the fleet diesel-baseline CO2 over the usage period in
	// tonnes.
	DieselCO2 float64 `json:"diesel_co2"`
}

// AmortizationPoint is one point in the year-indexed cumulative cost series.
type AmortizationPoint struct {
	// Year is the series index, 0 through usage years inclusive.
	Year int `json:"year"`

	// Label is "Start" for year 0, "Year N" otherwise.
	Label string `json:"label"`

	// Diesel is the cumulative fleet diesel cost in EUR.
	Diesel float64 `json:"diesel"`

	// Electric is the cumulative fleet electric cost in EUR, infrastructure
	// included.
	Electric float64 `json:"electric"`
}

// SensitivityRow is one ranked row of the tornado analysis.
type SensitivityRow struct {
	// Parameter is the tracked input key.
	Parameter string `json:"parameter"`

	// Label is the display label for the parameter.
	Label string `json:"label"`

	// LowValue is the perturbed low parameter value actually used, after
	// clamping to the parameter domain.
	LowValue float64 `json:"low_value"`

	// HighValue is the perturbed high parameter value actually used.
	HighValue float64 `json:"high_value"`

	// LowTCO is the fleet electric TCO at the low perturbation.
	LowTCO float64 `json:"low_tco"`

	// HighTCO is the fleet electric TCO at the high perturbation.
	HighTCO float64 `json:"high_tco"`

	// ImpactPercent is the larger absolute percent change against the
	// baseline fleet electric TCO.
	ImpactPercent float64 `json:"impact_percent"`
}

// RecommendationType tags the severity of an advisory item.
type RecommendationType string

// Recommendation severities, in no particular order; output order is rule
// evaluation order, never a severity sort.
const (
	// RecommendationSuccess marks a favorable finding.
	RecommendationSuccess RecommendationType = "success"

	// RecommendationWarning marks a risk the operator should review.
	RecommendationWarning RecommendationType = "warning"

	// RecommendationInfo marks neutral guidance.
	RecommendationInfo RecommendationType = "info"

	// RecommendationTip marks an optimization opportunity.
	RecommendationTip RecommendationType = "tip"
)

// Recommendation is one advisory item derived from inputs and results.
type Recommendation struct {
	// ID is a stable rule identifier.
	ID string `json:"id"`

	// Type is the severity tag.
	Type RecommendationType `json:"type"`

	// Title is the short headline.
	Title string `json:"title"`

	// Description is the full advisory text.
	Description string `json:"description"`

	// Icon is a presentation hint for UI collaborators.
	Icon string `json:"icon"`
}
