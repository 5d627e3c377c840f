package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTransmissionModel is returned when both beta_exp and beta_inf are zero.
var ErrNoTransmissionModel = errors.New("both beta_exp and beta_inf cannot be zero")

// ErrAmbiguousTransmissionModel is returned when both beta_exp and beta_inf are non-zero.
var ErrAmbiguousTransmissionModel = errors.New("both beta_exp and beta_inf cannot be non-zero")

// ErrNonPositiveDuration is returned when a stage duration or the sampling interval is not strictly positive.
var ErrNonPositiveDuration = errors.New("duration must be strictly positive")

// ErrNegativeValue is returned for negative rates, counts or horizons.
var ErrNegativeValue = errors.New("value must be non-negative")

// ErrNotFinite is returned for NaN or infinite parameters.
var ErrNotFinite = errors.New("value must be finite")

// ErrInvalidProbability is returned when a probability lies outside [0, 1].
var ErrInvalidProbability = errors.New("probability must lie in [0, 1]")

// ErrChainTooLong is returned when a duration spans more sampling intervals
// than a single chain may hold.
var ErrChainTooLong = errors.New("chain exceeds the maximum length")

// ErrUnresolvedEndpoint marks a transition endpoint that names no compartment.
var ErrUnresolvedEndpoint = errors.New("unresolved transition endpoint")

// ErrCapacityExceeded is returned when generation emits more entries than were sized upfront.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrModelNotFound is returned when a model cannot be found in the store.
var ErrModelNotFound = errors.New("model not found")

// ErrInvalidSnapshot is returned when a serialized model fails structural checks.
var ErrInvalidSnapshot = errors.New("invalid model snapshot")

// ConfigError reports a single invalid parameter.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parameter %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("parameter %q: %s: %v", e.Field, e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AggregateError represents multiple configuration failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// UnresolvedEndpointError is a build defect: a generation rule produced a
// compartment name that the registry does not know.
type UnresolvedEndpointError struct {
	Name string
	Rule TransitionKind
}

func (e *UnresolvedEndpointError) Error() string {
	return fmt.Sprintf("%v: %q (rule %s)", ErrUnresolvedEndpoint, e.Name, e.Rule)
}

func (e *UnresolvedEndpointError) Unwrap() error { return ErrUnresolvedEndpoint }
