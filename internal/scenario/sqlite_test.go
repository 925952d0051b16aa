package scenario

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetshift/fleetshift/internal/tco"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot(t *testing.T) (tco.Inputs, tco.Results) {
	t.Helper()
	inputs := tco.DefaultInputs()
	results, err := tco.Calculate(inputs)
	require.NoError(t, err)
	return inputs, results
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inputs, results := testSnapshot(t)

	saved, err := store.Save(ctx, "base case", inputs, results)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "base case", saved.Name)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, inputs, got.Inputs)
	assert.InDelta(t, results.Fleet.ElectricTCO, got.Results.Fleet.ElectricTCO, 1e-9)
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inputs, results := testSnapshot(t)

	first, err := store.Save(ctx, "first", inputs, results)
	require.NoError(t, err)
	second, err := store.Save(ctx, "second", inputs, results)
	require.NoError(t, err)

	scenarios, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	// Same second-granularity timestamp is possible; the ULID breaks the tie
	// in insertion order.
	assert.Equal(t, second.ID, scenarios[0].ID)
	assert.Equal(t, first.ID, scenarios[1].ID)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inputs, results := testSnapshot(t)

	saved, err := store.Save(ctx, "before", inputs, results)
	require.NoError(t, err)

	saved.Name = "after"
	saved.Inputs.FleetSize = 3
	require.NoError(t, store.Update(ctx, saved))

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, 3, got.Inputs.FleetSize)
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore(t)
	inputs, results := testSnapshot(t)

	err := store.Update(context.Background(), Scenario{
		ID:      "missing",
		Name:    "x",
		Inputs:  inputs,
		Results: results,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inputs, results := testSnapshot(t)

	saved, err := store.Save(ctx, "doomed", inputs, results)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))
	_, err = store.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, saved.ID), ErrNotFound)
}

func TestRecompute(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	inputs, results := testSnapshot(t)

	saved, err := store.Save(ctx, "stale", inputs, results)
	require.NoError(t, err)

	// Tamper with the stored results to simulate a stale snapshot.
	saved.Results.Fleet.ElectricTCO = 0
	require.NoError(t, store.Update(ctx, saved))

	recomputed, err := store.Recompute(ctx, saved.ID)
	require.NoError(t, err)
	assert.InDelta(t, results.Fleet.ElectricTCO, recomputed.Results.Fleet.ElectricTCO, 1e-9)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.InDelta(t, results.Fleet.ElectricTCO, got.Results.Fleet.ElectricTCO, 1e-9)
}

func TestScenarioSurvivesUnreachableBreakEven(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inputs := tco.Inputs{
		FleetSize:          1,
		UsageProfile:       tco.ProfileCustom,
		VehicleClass:       tco.ClassN2,
		AnnualMileage:      20000,
		UsageYears:         5,
		HighwayShare:       0,
		DepotChargingShare: 0,
		DieselPrice:        1.0,
		ElectricityPrice:   0.30,
		ChargingPoints:     1,
	}
	results, err := tco.Calculate(inputs)
	require.NoError(t, err)
	require.False(t, results.BreakEvenYears.Reachable())

	saved, err := store.Save(ctx, "no break-even", inputs, results)
	require.NoError(t, err)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.Results.BreakEvenYears.Reachable())
}
