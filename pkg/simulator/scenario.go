package simulator

import "strings"

// Scenario is an attack policy: it decides which components are affected
// when a target is attacked. Each scenario kind is its own type, so adding
// one means adding a type and listing it in the Simulator's options.
type Scenario interface {
	// Name is the normalized identifier callers pass to Run.
	Name() string
	// Label is the human-readable name used in explanations.
	Label() string
	// Affected returns the affected set for an attack on targetID. targetID
	// is guaranteed to be a node of g.
	Affected(g *Graph, targetID string) *ComponentSet
}

// NodeCompromise compromises the target and spreads to every component
// downstream of it.
type NodeCompromise struct{}

func (NodeCompromise) Name() string  { return "node_compromise" }
func (NodeCompromise) Label() string { return "Node compromise" }

func (NodeCompromise) Affected(g *Graph, targetID string) *ComponentSet {
	return Propagate(g, targetID)
}

// DefaultScenarios returns the scenarios a Simulator supports when none are
// configured.
func DefaultScenarios() []Scenario {
	return []Scenario{NodeCompromise{}}
}

// NormalizeScenario trims and lower-cases a scenario name.
func NormalizeScenario(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
