package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetshift/fleetshift/internal/scenario"
	"github.com/fleetshift/fleetshift/internal/tco"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeInputs reads an input record from the request body and validates it.
// Unknown fields are rejected so typos in collaborator payloads surface as
// errors rather than silently falling back to defaults.
func (s *Server) decodeInputs(w http.ResponseWriter, r *http.Request) (tco.Inputs, bool) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	inputs := tco.DefaultInputs()
	if err := dec.Decode(&inputs); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return tco.Inputs{}, false
	}
	if err := inputs.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return tco.Inputs{}, false
	}
	return inputs, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	results, err := tco.Calculate(inputs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleAmortization(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	results, err := tco.Calculate(inputs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tco.Amortization(inputs, results))
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	rows, err := tco.Sensitivity(inputs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	results, err := tco.Calculate(inputs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tco.Recommendations(inputs, results))
}

// vehicleEntry pairs a class key with its reference profile.
type vehicleEntry struct {
	Class   tco.VehicleClass   `json:"class"`
	Profile tco.VehicleProfile `json:"profile"`
}

func (s *Server) handleVehicles(w http.ResponseWriter, _ *http.Request) {
	classes := tco.VehicleClasses()
	entries := make([]vehicleEntry, 0, len(classes))
	for _, class := range classes {
		profile, err := tco.VehicleProfileFor(class)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		entries = append(entries, vehicleEntry{Class: class, Profile: profile})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// profileEntry pairs a profile key with its template.
type profileEntry struct {
	Type    tco.UsageProfileType `json:"type"`
	Profile tco.UsageProfile     `json:"profile"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	types := tco.UsageProfileTypes()
	entries := make([]profileEntry, 0, len(types))
	for _, profileType := range types {
		profile, err := tco.UsageProfileFor(profileType)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		entries = append(entries, profileEntry{Type: profileType, Profile: profile})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// requireStore guards the scenario routes when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable,
			errorResponse{Error: "scenario store not configured"})
		return false
	}
	return true
}

func (s *Server) handleScenarioList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	scenarios, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if scenarios == nil {
		scenarios = []scenario.Scenario{}
	}
	s.writeJSON(w, http.StatusOK, scenarios)
}

// saveScenarioRequest is the payload for creating a scenario.
type saveScenarioRequest struct {
	Name   string     `json:"name"`
	Inputs tco.Inputs `json:"inputs"`
}

func (s *Server) handleScenarioSave(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req saveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "scenario name is required"})
		return
	}

	results, err := tco.Calculate(req.Inputs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := s.store.Save(r.Context(), req.Name, req.Inputs, results)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleScenarioGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	sc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeScenarioError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleScenarioRecompute(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	sc, err := s.store.Recompute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeScenarioError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleScenarioDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeScenarioError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeScenarioError(w http.ResponseWriter, err error) {
	if errors.Is(err, scenario.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}
