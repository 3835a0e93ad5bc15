package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/missionsim/pkg/mission"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrInvalid is wrapped by every request validation failure.
	ErrInvalid = errors.New("invalid request")

	// Validation limits
	MaxComponents = 5000
	MaxFlows      = 20000
)

func init() {
	validate = validator.New()
	// Report fields by their JSON names so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateArchitecture checks field-level constraints on an architecture
// submitted for storage or simulation. Referential integrity between flows
// and components is left to the simulator's graph builder.
func ValidateArchitecture(arch *mission.Architecture) error {
	if arch == nil {
		return fmt.Errorf("%w: architecture cannot be nil", ErrInvalid)
	}

	if err := validate.Struct(arch); err != nil {
		return formatValidationError(err)
	}

	if len(arch.Components) > MaxComponents {
		return fmt.Errorf("%w: components: maximum %d components allowed, got %d", ErrInvalid, MaxComponents, len(arch.Components))
	}
	if len(arch.Flows) > MaxFlows {
		return fmt.Errorf("%w: flows: maximum %d flows allowed, got %d", ErrInvalid, MaxFlows, len(arch.Flows))
	}

	return nil
}

// ValidateTarget validates a target component ID taken from a query string.
func ValidateTarget(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: target_component_id: field is required", ErrInvalid)
	}
	if err := validate.Var(id, "max=255"); err != nil {
		return fmt.Errorf("%w: target_component_id: must not exceed 255", ErrInvalid)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
		case "min":
			return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, param)
		case "max":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalid, field, param)
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
		}
	}

	return err
}

// fieldPath drops the root struct name from a validator namespace, turning
// "Architecture.components[2].id" into "components[2].id".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
