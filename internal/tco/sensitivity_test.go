package tco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityRanking(t *testing.T) {
	rows, err := Sensitivity(goldenInputs())
	require.NoError(t, err)
	require.Len(t, rows, len(sensitivityParameters))

	// Descending by impact magnitude.
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].ImpactPercent, rows[i].ImpactPercent)
	}

	// Every tracked parameter appears exactly once.
	seen := map[string]bool{}
	for _, row := range rows {
		assert.False(t, seen[row.Parameter], "duplicate parameter %s", row.Parameter)
		seen[row.Parameter] = true
		assert.NotEmpty(t, row.Label)
		assert.GreaterOrEqual(t, row.ImpactPercent, 0.0)
	}
}

func TestSensitivityDeterministicOrder(t *testing.T) {
	first, err := Sensitivity(goldenInputs())
	require.NoError(t, err)
	second, err := Sensitivity(goldenInputs())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSensitivityPerturbedValues(t *testing.T) {
	rows, err := Sensitivity(goldenInputs())
	require.NoError(t, err)

	byKey := map[string]SensitivityRow{}
	for _, row := range rows {
		byKey[row.Parameter] = row
	}

	// Electricity price: plain ±20% stays inside [0.15, 0.45].
	assert.InDelta(t, 0.20, byKey[ParamElectricityPrice].LowValue, 1e-9)
	assert.InDelta(t, 0.30, byKey[ParamElectricityPrice].HighValue, 1e-9)

	// Diesel price: 1.45*0.8 = 1.16 clamps up to the domain minimum 1.20.
	assert.InDelta(t, 1.20, byKey[ParamDieselPrice].LowValue, 1e-9)
	assert.InDelta(t, 1.74, byKey[ParamDieselPrice].HighValue, 1e-9)

	// Usage years is an integer field: 6.4 and 9.6 land on 6 and 10.
	assert.InDelta(t, 6, byKey[ParamUsageYears].LowValue, 1e-9)
	assert.InDelta(t, 10, byKey[ParamUsageYears].HighValue, 1e-9)

	// Depot share uses the absolute ±0.2 step.
	assert.InDelta(t, 0.5, byKey[ParamDepotChargingShare].LowValue, 1e-9)
	assert.InDelta(t, 0.9, byKey[ParamDepotChargingShare].HighValue, 1e-9)
}

func TestSensitivityDepotShareClampsAtDomainMax(t *testing.T) {
	inputs := goldenInputs()
	inputs.DepotChargingShare = 0.95

	rows, err := Sensitivity(inputs)
	require.NoError(t, err)

	for _, row := range rows {
		if row.Parameter != ParamDepotChargingShare {
			continue
		}
		assert.InDelta(t, 0.75, row.LowValue, 1e-9)
		assert.InDelta(t, 1.0, row.HighValue, 1e-9)
		return
	}
	t.Fatal("depot charging share row missing")
}

func TestSensitivityBaselineIsFleetElectricTCO(t *testing.T) {
	inputs := goldenInputs()
	base, err := Calculate(inputs)
	require.NoError(t, err)

	rows, err := Sensitivity(inputs)
	require.NoError(t, err)

	for _, row := range rows {
		if row.Parameter != ParamDieselPrice {
			continue
		}
		// Diesel price does not enter the electric TCO at all: both
		// perturbed TCO values equal the baseline and the impact is zero.
		assert.InDelta(t, base.Fleet.ElectricTCO, row.LowTCO, 1e-9)
		assert.InDelta(t, base.Fleet.ElectricTCO, row.HighTCO, 1e-9)
		assert.InDelta(t, 0, row.ImpactPercent, 1e-9)
		return
	}
	t.Fatal("diesel price row missing")
}

func TestSensitivityPropagatesInvalidBase(t *testing.T) {
	inputs := goldenInputs()
	inputs.VehicleClass = "N9"

	_, err := Sensitivity(inputs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVehicleClass)
}

func TestSensitivityParametersCopy(t *testing.T) {
	params := SensitivityParameters()
	require.Len(t, params, 5)
	params[0].Label = "mutated"
	assert.NotEqual(t, params[0].Label, sensitivityParameters[0].Label)
}
