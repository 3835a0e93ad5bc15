package simulator

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by every ValidationError, so callers
// can test with errors.Is without caring about the kind.
var ErrValidation = errors.New("validation error")

// Kind distinguishes the reasons a simulation input is rejected.
type Kind string

const (
	KindEmptyArchitecture  Kind = "empty-architecture"
	KindDuplicateComponent Kind = "duplicate-component"
	KindUnknownSource      Kind = "unknown-source"
	KindUnknownTarget      Kind = "unknown-target"
	KindUnknownScenario    Kind = "unknown-scenario"
	KindTargetNotFound     Kind = "target-not-found"
)

// ValidationError reports a caller-correctable problem with an architecture,
// scenario or target. It never represents an internal bug.
type ValidationError struct {
	Kind        Kind
	FlowID      string // offending flow, for unknown-source / unknown-target
	ComponentID string // missing or duplicated component ID
	Scenario    string // normalized scenario name, for unknown-scenario
	Msg         string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Kind)
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// KindOf returns the Kind of err if it is (or wraps) a ValidationError.
func KindOf(err error) (Kind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}

func emptyArchitectureError() *ValidationError {
	return &ValidationError{
		Kind: KindEmptyArchitecture,
		Msg:  "Architecture must contain at least one component.",
	}
}

func duplicateComponentError(id string) *ValidationError {
	return &ValidationError{
		Kind:        KindDuplicateComponent,
		ComponentID: id,
		Msg:         fmt.Sprintf("Component '%s' is declared more than once.", id),
	}
}

func danglingFlowError(kind Kind, flowID, componentID string) *ValidationError {
	end := "source"
	if kind == KindUnknownTarget {
		end = "target"
	}
	return &ValidationError{
		Kind:        kind,
		FlowID:      flowID,
		ComponentID: componentID,
		Msg:         fmt.Sprintf("Data flow '%s' references unknown %s component '%s'.", flowID, end, componentID),
	}
}

func targetNotFoundError(id string) *ValidationError {
	return &ValidationError{
		Kind:        KindTargetNotFound,
		ComponentID: id,
		Msg:         fmt.Sprintf("Component '%s' not found in the architecture.", id),
	}
}
