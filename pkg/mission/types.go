// Package mission defines the mission architecture data model: components,
// the data flows between them, and the architecture that groups both.
//
// The types are plain data. They are decoded from JSON or YAML at the edges
// of the system and handed read-only to the simulator.
package mission

// Well-known component categories. Type is an open string; these are the
// values the planner UI offers by default.
const (
	TypeSensor    = "Sensor"
	TypeCompute   = "Compute"
	TypeControl   = "Control"
	TypeStorage   = "Storage"
	TypeCommsLink = "CommsLink"
	TypeExternal  = "External"
)

// CIA requirement values carried on flows.
const (
	CIAConfidentiality = "confidentiality"
	CIAIntegrity       = "integrity"
	CIAAvailability    = "availability"
)

// DefaultCriticality is used when a component is created without one.
const DefaultCriticality = 5

// Position is the canvas position of a component. Passthrough only.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Component is a system element of the mission architecture.
type Component struct {
	ID          string   `json:"id" yaml:"id" validate:"required,max=255"`
	Name        string   `json:"name" yaml:"name" validate:"required,max=255"`
	Type        string   `json:"type" yaml:"type" validate:"required,max=50"`
	Criticality int      `json:"criticality" yaml:"criticality" validate:"min=1,max=10"`
	Position    Position `json:"position" yaml:"position"`
}

// Flow is a directed data dependency from Source to Target.
type Flow struct {
	ID                 string `json:"id" yaml:"id" validate:"required,max=255"`
	Source             string `json:"source" yaml:"source" validate:"required"`
	Target             string `json:"target" yaml:"target" validate:"required"`
	DataType           string `json:"data_type,omitempty" yaml:"data_type,omitempty" validate:"max=100"`
	CIARequirement     string `json:"cia_requirement,omitempty" yaml:"cia_requirement,omitempty" validate:"max=50"`
	LatencySensitivity string `json:"latency_sensitivity,omitempty" yaml:"latency_sensitivity,omitempty" validate:"max=20"`
}

// Architecture is a named set of components and flows.
type Architecture struct {
	ID          int64       `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name" validate:"required,max=255"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Components  []Component `json:"components" yaml:"components" validate:"dive"`
	Flows       []Flow      `json:"flows" yaml:"flows" validate:"dive"`
}

// ArchitectureSummary is the listing view of an Architecture.
type ArchitectureSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ComponentCount int    `json:"component_count"`
	FlowCount      int    `json:"flow_count"`
}

// Summary returns the listing view of a.
func (a *Architecture) Summary() ArchitectureSummary {
	return ArchitectureSummary{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		ComponentCount: len(a.Components),
		FlowCount:      len(a.Flows),
	}
}

// Clone returns a deep copy of a so callers can hand out architectures
// without sharing the component and flow slices.
func (a *Architecture) Clone() *Architecture {
	if a == nil {
		return nil
	}
	c := *a
	c.Components = append([]Component(nil), a.Components...)
	c.Flows = append([]Flow(nil), a.Flows...)
	return &c
}
