// Package scenario persists named calculator scenarios: a snapshot of the
// inputs together with the results computed from them.
//
// The calculation engine never calls into this package; the store calls
// tco.Calculate when a stale snapshot needs recomputing.
package scenario

import (
	"context"
	"time"

	"github.com/fleetshift/fleetshift/internal/tco"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNotFound indicates a scenario id with no stored record.
const ErrNotFound = constError("scenario not found")

// Scenario is one persisted snapshot.
type Scenario struct {
	// ID is a ULID assigned on save.
	ID string `json:"id"`

	// Name is the user-supplied label.
	Name string `json:"name"`

	// CreatedAt is the save timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Inputs is the parameter snapshot.
	Inputs tco.Inputs `json:"inputs"`

	// Results is the result snapshot computed from Inputs.
	Results tco.Results `json:"results"`
}

// Store is the persistence capability for scenarios.
type Store interface {
	// List returns all scenarios, newest first.
	List(ctx context.Context) ([]Scenario, error)

	// Get returns one scenario by id.
	Get(ctx context.Context, id string) (Scenario, error)

	// Save stores a new scenario and returns it with id and timestamp set.
	Save(ctx context.Context, name string, inputs tco.Inputs, results tco.Results) (Scenario, error)

	// Update replaces the stored snapshot for an existing scenario.
	Update(ctx context.Context, sc Scenario) error

	// Delete removes a scenario by id.
	Delete(ctx context.Context, id string) error

	// Recompute refreshes a stale result snapshot through the engine and
	// stores the updated scenario.
	Recompute(ctx context.Context, id string) (Scenario, error)
}
