package tco

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for the calculation engine.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidInput indicates an input value outside its domain constraint.
	// Inputs are rejected at the boundary, never silently clamped.
	ErrInvalidInput = constError("invalid calculator input")

	// ErrUnknownVehicleClass indicates a vehicle class key not present in the
	// reference tables.
	ErrUnknownVehicleClass = constError("unknown vehicle class")

	// ErrUnknownUsageProfile indicates a usage profile key not present in the
	// reference tables.
	ErrUnknownUsageProfile = constError("unknown usage profile")

	// ErrUnknownParameter indicates a sensitivity parameter key that is not
	// tracked.
	ErrUnknownParameter = constError("unknown sensitivity parameter")
)
