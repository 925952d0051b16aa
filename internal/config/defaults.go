package config

import "github.com/fleetshift/fleetshift/internal/tco"

// InputDefaults optionally overrides individual fields of the built-in
// calculator defaults. Pointer fields distinguish "not set" from a zero
// value; nil fields leave the engine default untouched.
type InputDefaults struct {
	FleetSize          *int     `yaml:"fleet_size"`
	VehicleClass       *string  `yaml:"vehicle_class"`
	UsageProfile       *string  `yaml:"usage_profile"`
	AnnualMileage      *float64 `yaml:"annual_mileage"`
	UsageYears         *int     `yaml:"usage_years"`
	HighwayShare       *float64 `yaml:"highway_share"`
	DepotChargingShare *float64 `yaml:"depot_charging_share"`
	DieselPrice        *float64 `yaml:"diesel_price"`
	ElectricityPrice   *float64 `yaml:"electricity_price"`
	ChargingPoints     *int     `yaml:"charging_points"`
}

// ApplyTo overlays the set fields onto an input record and returns the
// result. Values are not validated here; the engine boundary does that.
func (d InputDefaults) ApplyTo(in tco.Inputs) tco.Inputs {
	if d.FleetSize != nil {
		in.FleetSize = *d.FleetSize
	}
	if d.VehicleClass != nil {
		in.VehicleClass = tco.VehicleClass(*d.VehicleClass)
	}
	if d.UsageProfile != nil {
		in.UsageProfile = tco.UsageProfileType(*d.UsageProfile)
	}
	if d.AnnualMileage != nil {
		in.AnnualMileage = *d.AnnualMileage
	}
	if d.UsageYears != nil {
		in.UsageYears = *d.UsageYears
	}
	if d.HighwayShare != nil {
		in.HighwayShare = *d.HighwayShare
	}
	if d.DepotChargingShare != nil {
		in.DepotChargingShare = *d.DepotChargingShare
	}
	if d.DieselPrice != nil {
		in.DieselPrice = *d.DieselPrice
	}
	if d.ElectricityPrice != nil {
		in.ElectricityPrice = *d.ElectricityPrice
	}
	if d.ChargingPoints != nil {
		in.ChargingPoints = *d.ChargingPoints
	}
	return in
}

// BaseInputs returns the engine defaults with the config overlay applied.
func (c *Config) BaseInputs() tco.Inputs {
	return c.Defaults.ApplyTo(tco.DefaultInputs())
}
