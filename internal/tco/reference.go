package tco

import "fmt"

// vehicleProfiles is the static per-class reference table. Loaded once,
// looked up by key, never mutated.
//
//nolint:gochecknoglobals // Static reference table
var vehicleProfiles = map[VehicleClass]VehicleProfile{
	ClassN1: {
		Name:                "N1 - Transporter",
		Specs:               "bis 3,5 Tonnen",
		DieselConsumption:   12,
		ElectricConsumption: 28,
		DieselPurchase:      45000,
		ElectricPurchase:    75000,
		THGQuota:            225,
		MaintenanceDiesel:   0.08,
		MaintenanceElectric: 0.05,
		InsuranceDiesel:     2500,
		InsuranceElectric:   2375,
		DieselTax:           556,
	},
	ClassN2: {
		Name:                "N2 - Verteiler-LKW",
		Specs:               "3,5 - 12 Tonnen",
		DieselConsumption:   22,
		ElectricConsumption: 100,
		DieselPurchase:      95000,
		ElectricPurchase:    180000,
		THGQuota:            1545,
		MaintenanceDiesel:   0.12,
		MaintenanceElectric: 0.08,
		InsuranceDiesel:     5000,
		InsuranceElectric:   4750,
		DieselTax:           914,
	},
	ClassN3: {
		Name:                "N3 - Sattelzug",
		Specs:               "über 12 Tonnen",
		DieselConsumption:   32,
		ElectricConsumption: 120,
		DieselPurchase:      120000,
		ElectricPurchase:    350000,
		THGQuota:            2505,
		MaintenanceDiesel:   0.15,
		MaintenanceElectric: 0.10,
		InsuranceDiesel:     8000,
		InsuranceElectric:   7500,
		DieselTax:           1681,
	},
}

// usageProfiles is the static driving-pattern template table.
//
//nolint:gochecknoglobals // Static reference table
var usageProfiles = map[UsageProfileType]UsageProfile{
	ProfileKEP: {
		Name:               "KEP / Kurier",
		Description:        "~80 km/Tag, Stadt",
		AnnualMileage:      20000,
		HighwayShare:       0.05,
		DepotChargingShare: 1.0,
	},
	ProfileRegional: {
		Name:               "Nahverkehr",
		Description:        "~200 km/Tag, Regional",
		AnnualMileage:      50000,
		HighwayShare:       0.4,
		DepotChargingShare: 0.8,
	},
	ProfileLongHaul: {
		Name:               "Fernverkehr",
		Description:        "~600 km/Tag, Langstrecke",
		AnnualMileage:      150000,
		HighwayShare:       0.9,
		DepotChargingShare: 0.4,
	},
	ProfileCustom: {
		Name:               "Individuell",
		Description:        "Eigene Werte",
		AnnualMileage:      120000,
		HighwayShare:       0.8,
		DepotChargingShare: 0.7,
	},
}

// VehicleProfileFor returns the reference profile for a vehicle class.
// It returns an error wrapping ErrUnknownVehicleClass for keys not present in
// the table; there is no silent default.
func VehicleProfileFor(class VehicleClass) (VehicleProfile, error) {
	profile, ok := vehicleProfiles[class]
	if !ok {
		return VehicleProfile{}, fmt.Errorf("%w: %q", ErrUnknownVehicleClass, class)
	}
	return profile, nil
}

// UsageProfileFor returns the driving-pattern template for a profile type.
// It returns an error wrapping ErrUnknownUsageProfile for unknown keys.
func UsageProfileFor(profile UsageProfileType) (UsageProfile, error) {
	tmpl, ok := usageProfiles[profile]
	if !ok {
		return UsageProfile{}, fmt.Errorf("%w: %q", ErrUnknownUsageProfile, profile)
	}
	return tmpl, nil
}

// VehicleClasses returns the supported classes in display order.
func VehicleClasses() []VehicleClass {
	return []VehicleClass{ClassN1, ClassN2, ClassN3}
}

// UsageProfileTypes returns the supported profile types in display order.
func UsageProfileTypes() []UsageProfileType {
	return []UsageProfileType{ProfileKEP, ProfileRegional, ProfileLongHaul, ProfileCustom}
}

// DefaultInputs returns the default calculator inputs: a single N3 truck on
// the custom profile with no infrastructure.
func DefaultInputs() Inputs {
	return Inputs{
		FleetSize:             1,
		UsageProfile:          ProfileCustom,
		VehicleClass:          ClassN3,
		AnnualMileage:         120000,
		UsageYears:            8,
		HighwayShare:          0.8,
		DepotChargingShare:    0.7,
		DieselPrice:           1.45,
		ElectricityPrice:      0.25,
		IncludeInfrastructure: false,
		ChargingPoints:        1,
		DCCharging:            false,
		GridUpgrade:           false,
	}
}
