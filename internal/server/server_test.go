package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetshift/fleetshift/internal/scenario"
	"github.com/fleetshift/fleetshift/internal/tco"
)

func newTestServer(t *testing.T) (*Server, *scenario.SQLiteStore) {
	t.Helper()
	store, err := scenario.Open(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, zerolog.Nop()), store
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCalculateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/tco", tco.DefaultInputs())
	require.Equal(t, http.StatusOK, rec.Code)

	var results tco.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.InDelta(t, 116769, results.Diesel.AnnualTotal, 1e-6)
	assert.InDelta(t, 65955, results.Electric.AnnualTotal, 1e-6)
}

func TestCalculateEndpointRejectsInvalidInput(t *testing.T) {
	srv, _ := newTestServer(t)

	inputs := tco.DefaultInputs()
	inputs.FleetSize = 0
	rec := postJSON(t, srv.Router(), "/api/v1/tco", inputs)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "fleet size")
}

func TestCalculateEndpointRejectsUnknownClass(t *testing.T) {
	srv, _ := newTestServer(t)

	inputs := tco.DefaultInputs()
	inputs.VehicleClass = "N7"
	rec := postJSON(t, srv.Router(), "/api/v1/tco", inputs)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown vehicle class")
}

func TestCalculateEndpointRejectsUnknownFields(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postJSON(t, srv.Router(), "/api/v1/tco", map[string]any{
		"fleet_sizes": 3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateEndpointEncodesUnreachableBreakEvenAsNull(t *testing.T) {
	srv, _ := newTestServer(t)

	inputs := tco.DefaultInputs()
	inputs.VehicleClass = tco.ClassN2
	inputs.AnnualMileage = 20000
	inputs.HighwayShare = 0
	inputs.DepotChargingShare = 0
	inputs.DieselPrice = 1.0
	inputs.ElectricityPrice = 0.30
	inputs.UsageYears = 5
	rec := postJSON(t, srv.Router(), "/api/v1/tco", inputs)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["break_even_years"]))
	assert.Equal(t, "null", string(raw["payback_months"]))
}

func TestAmortizationEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/tco/amortization", tco.DefaultInputs())
	require.Equal(t, http.StatusOK, rec.Code)

	var points []tco.AmortizationPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 9)
	assert.Equal(t, "Start", points[0].Label)
}

func TestSensitivityEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/tco/sensitivity", tco.DefaultInputs())
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []tco.SensitivityRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 5)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].ImpactPercent, rows[i].ImpactPercent)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/tco/recommendations", tco.DefaultInputs())
	require.Equal(t, http.StatusOK, rec.Code)

	var recs []tco.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), tco.MaxRecommendations)
}

func TestVehiclesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []vehicleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, tco.ClassN1, entries[0].Class)
}

func TestProfilesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []profileEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 4)
}

func TestScenarioLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := postJSON(t, router, "/api/v1/scenarios/", saveScenarioRequest{
		Name:   "fleet pilot",
		Inputs: tco.DefaultInputs(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved scenario.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	// List contains the saved scenario.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)
	var scenarios []scenario.Scenario
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &scenarios))
	require.Len(t, scenarios, 1)

	// Recompute succeeds and returns the scenario.
	recomputeRec := httptest.NewRecorder()
	router.ServeHTTP(recomputeRec, httptest.NewRequest(
		http.MethodPost, fmt.Sprintf("/api/v1/scenarios/%s/recompute", saved.ID), nil))
	assert.Equal(t, http.StatusOK, recomputeRec.Code)

	// Delete, then a second delete 404s.
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, httptest.NewRequest(
		http.MethodDelete, "/api/v1/scenarios/"+saved.ID, nil))
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	delAgain := httptest.NewRecorder()
	router.ServeHTTP(delAgain, httptest.NewRequest(
		http.MethodDelete, "/api/v1/scenarios/"+saved.ID, nil))
	assert.Equal(t, http.StatusNotFound, delAgain.Code)
}

func TestScenarioSaveRequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/scenarios/", saveScenarioRequest{
		Inputs: tco.DefaultInputs(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarioRoutesWithoutStore(t *testing.T) {
	srv := New(nil, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
