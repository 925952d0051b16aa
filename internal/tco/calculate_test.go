package tco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenInputs is the reference scenario used for regression anchors:
// a single N3 truck, 120,000 km/year over 8 years, no infrastructure.
func goldenInputs() Inputs {
	return Inputs{
		FleetSize:          1,
		UsageProfile:       ProfileCustom,
		VehicleClass:       ClassN3,
		AnnualMileage:      120000,
		UsageYears:         8,
		HighwayShare:       0.8,
		DepotChargingShare: 0.7,
		DieselPrice:        1.45,
		ElectricityPrice:   0.25,
		ChargingPoints:     1,
	}
}

func TestCalculateGoldenScenario(t *testing.T) {
	results, err := Calculate(goldenInputs())
	require.NoError(t, err)

	// Diesel breakdown: 1200*32*1.45, 120000*0.8*0.348, 120000*0.15.
	assert.InDelta(t, 55680, results.Diesel.Energy, 1e-9)
	assert.InDelta(t, 33408, results.Diesel.Toll, 1e-9)
	assert.InDelta(t, 18000, results.Diesel.Maintenance, 1e-9)
	assert.InDelta(t, 8000, results.Diesel.Insurance, 1e-9)
	assert.InDelta(t, 116769, results.Diesel.AnnualTotal, 1e-9)

	// Electric breakdown at blended price 0.25*0.7 + 0.55*0.3 = 0.34.
	assert.InDelta(t, 48960, results.Electric.Energy, 1e-9)
	assert.InDelta(t, 12000, results.Electric.Maintenance, 1e-9)
	assert.InDelta(t, 7500, results.Electric.Insurance, 1e-9)
	assert.InDelta(t, -2505, results.Electric.THGQuota, 1e-9)
	assert.InDelta(t, 65955, results.Electric.AnnualTotal, 1e-9)

	// Purchase side.
	assert.InDelta(t, 350000, results.Electric.Purchase, 1e-9)
	assert.InDelta(t, 262500, results.Electric.NetPurchase, 1e-9)

	// TCO: diesel 120000 + 116769*8 - 18000; electric adds post-exemption
	// tax 1681*0.25*4 and toll 120000*0.8*0.19*3.
	assert.InDelta(t, 1036152, results.Diesel.TCO, 1e-6)
	assert.InDelta(t, 776541, results.Electric.TCO, 1e-6)

	// Fleet of one mirrors the per-vehicle values.
	assert.InDelta(t, 1036152, results.Fleet.DieselTCO, 1e-6)
	assert.InDelta(t, 776541, results.Fleet.ElectricTCO, 1e-6)
	assert.InDelta(t, 262500, results.Fleet.Investment, 1e-9)
	assert.InDelta(t, 259611, results.Fleet.Savings, 1e-6)

	// Derived metrics.
	assert.InDelta(t, 50814, results.AnnualSavings, 1e-9)
	assert.InDelta(t, 142500.0/50814.0, float64(results.BreakEvenYears), 1e-9)
	assert.InDelta(t, 142500.0/50814.0*12, float64(results.PaybackMonths), 1e-9)
	assert.InDelta(t, 259611.0/262500.0*100, results.ROI, 1e-9)
	assert.InDelta(t, 116769.0/120000.0, results.Diesel.CostPerKm, 1e-12)
	assert.InDelta(t, 65955.0/120000.0, results.Electric.CostPerKm, 1e-12)

	// CO2 over 8 years, fleet tonnes.
	assert.InDelta(t, 811.008, results.DieselCO2, 1e-9)
	assert.InDelta(t, 373.248, results.CO2Savings, 1e-9)

	// No infrastructure requested.
	assert.Zero(t, results.Infrastructure.Cost)
	assert.Zero(t, results.Infrastructure.PerVehicle)
}

func TestCalculateDeterminism(t *testing.T) {
	first, err := Calculate(goldenInputs())
	require.NoError(t, err)
	second, err := Calculate(goldenInputs())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateRegulatoryClamp(t *testing.T) {
	// Usage ends 2030 or earlier: both exemption totals must be exactly 0,
	// so the electric TCO reduces to purchase + operating - residual.
	inputs := goldenInputs()
	inputs.UsageYears = 4

	results, err := Calculate(inputs)
	require.NoError(t, err)

	want := results.Electric.NetPurchase +
		results.Electric.AnnualTotal*4 -
		350000*ElectricResidualRate
	assert.InDelta(t, want, results.Electric.TCO, 1e-9)
}

func TestCalculatePostExemptionCharges(t *testing.T) {
	// Over 8 years from 2026: 4 years of tax liability, 3 years of reduced
	// toll, both fleet-level totals divided by fleet size.
	inputs := goldenInputs()
	inputs.FleetSize = 4

	results, err := Calculate(inputs)
	require.NoError(t, err)

	taxTotal := 1681 * ElectricTaxRate * 4
	tollTotal := 120000 * 0.8 * TollRateElectric * 3
	want := results.Electric.NetPurchase +
		results.Electric.AnnualTotal*8 +
		(taxTotal+tollTotal)/4 -
		350000*ElectricResidualRate
	assert.InDelta(t, want, results.Electric.TCO, 1e-9)
}

func TestCalculateFleetScaling(t *testing.T) {
	single := goldenInputs()
	fleet := goldenInputs()
	fleet.FleetSize = 7

	singleResults, err := Calculate(single)
	require.NoError(t, err)
	fleetResults, err := Calculate(fleet)
	require.NoError(t, err)

	assert.InDelta(t, singleResults.Diesel.TCO*7, fleetResults.Fleet.DieselTCO, 1e-6)
}

func TestCalculateBreakEvenUnreachable(t *testing.T) {
	// N2 at low mileage with pure public charging: electric operating cost
	// exceeds diesel, so no break-even exists.
	inputs := Inputs{
		FleetSize:          1,
		UsageProfile:       ProfileCustom,
		VehicleClass:       ClassN2,
		AnnualMileage:      20000,
		UsageYears:         5,
		HighwayShare:       0,
		DepotChargingShare: 0,
		DieselPrice:        1.0,
		ElectricityPrice:   0.30,
		ChargingPoints:     1,
	}

	results, err := Calculate(inputs)
	require.NoError(t, err)

	require.LessOrEqual(t, results.AnnualSavings, 0.0)
	assert.False(t, results.BreakEvenYears.Reachable())
	assert.False(t, results.PaybackMonths.Reachable())
	assert.True(t, math.IsInf(float64(results.BreakEvenYears), 1))
}

func TestCalculateInfrastructure(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Inputs)
		wantCost float64
	}{
		{
			name: "AC chargers",
			mutate: func(in *Inputs) {
				in.IncludeInfrastructure = true
				in.ChargingPoints = 3
			},
			wantCost: 3 * ACChargerCost,
		},
		{
			name: "DC chargers with grid upgrade",
			mutate: func(in *Inputs) {
				in.IncludeInfrastructure = true
				in.ChargingPoints = 2
				in.DCCharging = true
				in.GridUpgrade = true
			},
			wantCost: 2*DCChargerCost + GridUpgradeCost,
		},
		{
			name:     "flag unset keeps cost at zero",
			mutate:   func(in *Inputs) { in.ChargingPoints = 5 },
			wantCost: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := goldenInputs()
			inputs.FleetSize = 4
			tt.mutate(&inputs)

			results, err := Calculate(inputs)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantCost, results.Infrastructure.Cost, 1e-9)
			assert.InDelta(t, tt.wantCost/4, results.Infrastructure.PerVehicle, 1e-9)
			assert.InDelta(t, results.Electric.NetPurchase*4+tt.wantCost,
				results.Fleet.Investment, 1e-9)
		})
	}
}

func TestCalculateRejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Inputs)
		wantErr error
	}{
		{"zero fleet size", func(in *Inputs) { in.FleetSize = 0 }, ErrInvalidInput},
		{"zero mileage", func(in *Inputs) { in.AnnualMileage = 0 }, ErrInvalidInput},
		{"negative mileage", func(in *Inputs) { in.AnnualMileage = -1 }, ErrInvalidInput},
		{"zero usage years", func(in *Inputs) { in.UsageYears = 0 }, ErrInvalidInput},
		{"highway share above one", func(in *Inputs) { in.HighwayShare = 1.1 }, ErrInvalidInput},
		{"negative depot share", func(in *Inputs) { in.DepotChargingShare = -0.1 }, ErrInvalidInput},
		{"zero diesel price", func(in *Inputs) { in.DieselPrice = 0 }, ErrInvalidInput},
		{"zero electricity price", func(in *Inputs) { in.ElectricityPrice = 0 }, ErrInvalidInput},
		{"zero charging points", func(in *Inputs) { in.ChargingPoints = 0 }, ErrInvalidInput},
		{"unknown vehicle class", func(in *Inputs) { in.VehicleClass = "N4" }, ErrUnknownVehicleClass},
		{"unknown usage profile", func(in *Inputs) { in.UsageProfile = "mixed" }, ErrUnknownUsageProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := goldenInputs()
			tt.mutate(&inputs)

			_, err := Calculate(inputs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
