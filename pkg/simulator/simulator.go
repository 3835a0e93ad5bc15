// Package simulator is the mission attack simulation engine. It turns an
// architecture into a directed component graph, propagates a compromise
// along data flows, scores mission health before and after, ranks
// components by structural criticality and narrates the spread.
//
// A Simulator owns its graph exclusively and is not safe for concurrent
// use; build one per request.
package simulator

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/mission"
)

// Simulator runs attack scenarios against one architecture.
type Simulator struct {
	arch      *mission.Architecture
	graph     *Graph
	scenarios map[string]Scenario
	topN      int
	logger    logging.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logging.Logger) Option {
	return func(s *Simulator) {
		s.logger = logging.OrNop(logger)
	}
}

// WithScenarios replaces the supported scenario set.
func WithScenarios(scenarios ...Scenario) Option {
	return func(s *Simulator) {
		s.scenarios = make(map[string]Scenario, len(scenarios))
		for _, sc := range scenarios {
			s.scenarios[NormalizeScenario(sc.Name())] = sc
		}
	}
}

// WithTopN sets the criticality ranking length. Values <= 0 keep DefaultTopN.
func WithTopN(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.topN = n
		}
	}
}

// New builds the component graph for arch. Structural problems are
// reported here as *ValidationError, before any scenario runs.
func New(arch *mission.Architecture, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		arch:   arch,
		topN:   DefaultTopN,
		logger: logging.NopLogger{},
	}
	WithScenarios(DefaultScenarios()...)(s)
	for _, opt := range opts {
		opt(s)
	}

	timer := logging.StartTimer(s.logger, "graph built")
	g, err := BuildGraph(arch)
	if err != nil {
		return nil, err
	}
	s.graph = g
	timer.EndDebug(logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()),
		logging.Int("flows", g.FlowCount()))

	return s, nil
}

// Run executes the named scenario against targetID. The scenario name is
// matched case-insensitively after trimming.
func (s *Simulator) Run(scenarioType, targetID string) (*Result, error) {
	name := NormalizeScenario(scenarioType)
	sc, ok := s.scenarios[name]
	if !ok {
		return nil, &ValidationError{
			Kind:     KindUnknownScenario,
			Scenario: name,
			Msg: fmt.Sprintf("Unknown scenario '%s'. Supported: [%s]",
				name, strings.Join(s.SupportedScenarios(), ", ")),
		}
	}

	if !s.graph.Has(targetID) {
		return nil, targetNotFoundError(targetID)
	}

	s.logger.Info("running scenario", logging.Scenario(name), logging.ComponentID(targetID))
	return s.run(sc, targetID), nil
}

func (s *Simulator) run(sc Scenario, targetID string) *Result {
	affected := sc.Affected(s.graph, targetID)

	baseline := Score(s.graph, nil)
	compromised := Score(s.graph, affected)

	ids := affected.IDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.graph.Component(id); ok {
			names = append(names, nameOrID(c))
		}
	}

	return &Result{
		ArchitectureID:         s.arch.ID,
		ScenarioType:           sc.Name(),
		TargetComponentID:      targetID,
		BaselineScore:          baseline,
		CompromisedScore:       compromised,
		ScoreDelta:             round2(compromised - baseline),
		AffectedComponents:     ids,
		AffectedComponentNames: names,
		AttackPath:             BuildAttackPath(s.graph, targetID, affected),
		Explanation:            BuildExplanation(s.graph, sc, targetID, affected, baseline, compromised),
		CriticalityRanking:     RankCriticality(s.graph, affected, s.topN),
	}
}

// Propagate returns the components affected by compromising id. An unknown
// id is logged and yields an empty set.
func (s *Simulator) Propagate(id string) *ComponentSet {
	if !s.graph.Has(id) {
		s.logger.Warn("propagate: component not in graph", logging.ComponentID(id))
		return NewComponentSet()
	}
	affected := Propagate(s.graph, id)
	s.logger.Debug("compromise propagated", logging.ComponentID(id), logging.Count(affected.Len()))
	return affected
}

// Score returns the mission success percentage with affected compromised.
func (s *Simulator) Score(affected *ComponentSet) float64 {
	return Score(s.graph, affected)
}

// RankCriticality ranks components using the configured ranking length.
func (s *Simulator) RankCriticality(affected *ComponentSet) []RankEntry {
	return RankCriticality(s.graph, affected, s.topN)
}

// SupportedScenarios returns the configured scenario names, sorted.
func (s *Simulator) SupportedScenarios() []string {
	names := maps.Keys(s.scenarios)
	slices.Sort(names)
	return names
}

// ComponentMetadata returns a copy of the component stored under id.
func (s *Simulator) ComponentMetadata(id string) (mission.Component, error) {
	c, ok := s.graph.Component(id)
	if !ok {
		return mission.Component{}, targetNotFoundError(id)
	}
	return c, nil
}

// Graph returns the simulator's component graph.
func (s *Simulator) Graph() *Graph { return s.graph }

// NodeCount returns the number of components.
func (s *Simulator) NodeCount() int { return s.graph.NodeCount() }

// EdgeCount returns the number of distinct component pairs joined by flows.
func (s *Simulator) EdgeCount() int { return s.graph.EdgeCount() }

// FlowCount returns the number of declared flows.
func (s *Simulator) FlowCount() int { return s.graph.FlowCount() }
