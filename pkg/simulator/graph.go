package simulator

import (
	"github.com/dd0wney/missionsim/pkg/mission"
)

// Edge is the directed connection between an ordered pair of components.
// Every flow declared on the pair is kept, in declaration order.
type Edge struct {
	Source string
	Target string
	Flows  []mission.Flow
}

type edgeKey struct {
	from, to int
}

// Graph is the directed component graph of one architecture. Nodes live in
// an arena addressed by index; adjacency lists hold indices, and an index is
// listed at most once per neighbour no matter how many flows join the pair.
//
// A Graph is immutable after BuildGraph returns.
type Graph struct {
	nodes []mission.Component
	index map[string]int
	succ  [][]int
	pred  [][]int
	edges map[edgeKey]*Edge
	flows int
}

// BuildGraph converts an architecture into a Graph. Referential integrity is
// checked for every flow before its edge is added, so a dangling reference
// never produces an undeclared node.
func BuildGraph(arch *mission.Architecture) (*Graph, error) {
	if arch == nil || len(arch.Components) == 0 {
		return nil, emptyArchitectureError()
	}

	n := len(arch.Components)
	g := &Graph{
		nodes: make([]mission.Component, 0, n),
		index: make(map[string]int, n),
		succ:  make([][]int, n),
		pred:  make([][]int, n),
		edges: make(map[edgeKey]*Edge, len(arch.Flows)),
	}

	for _, c := range arch.Components {
		if _, dup := g.index[c.ID]; dup {
			return nil, duplicateComponentError(c.ID)
		}
		g.index[c.ID] = len(g.nodes)
		g.nodes = append(g.nodes, c)
	}

	for _, f := range arch.Flows {
		from, ok := g.index[f.Source]
		if !ok {
			return nil, danglingFlowError(KindUnknownSource, f.ID, f.Source)
		}
		to, ok := g.index[f.Target]
		if !ok {
			return nil, danglingFlowError(KindUnknownTarget, f.ID, f.Target)
		}
		g.addFlow(from, to, f)
	}

	return g, nil
}

func (g *Graph) addFlow(from, to int, f mission.Flow) {
	g.flows++
	key := edgeKey{from, to}
	if e, ok := g.edges[key]; ok {
		e.Flows = append(e.Flows, f)
		return
	}
	g.edges[key] = &Edge{
		Source: g.nodes[from].ID,
		Target: g.nodes[to].ID,
		Flows:  []mission.Flow{f},
	}
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

// NodeCount returns the number of components.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct (source, target) pairs.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// FlowCount returns the number of flows, counting parallel flows separately.
func (g *Graph) FlowCount() int { return g.flows }

// Has reports whether id is a component of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Component returns the component stored under id.
func (g *Graph) Component(id string) (mission.Component, bool) {
	i, ok := g.index[id]
	if !ok {
		return mission.Component{}, false
	}
	return g.nodes[i], true
}

// Components returns the components in declaration order.
func (g *Graph) Components() []mission.Component {
	return append([]mission.Component(nil), g.nodes...)
}

// Successors returns the IDs of the direct downstream neighbours of id.
func (g *Graph) Successors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.ids(g.succ[i])
}

// Predecessors returns the IDs of the direct upstream neighbours of id.
func (g *Graph) Predecessors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.ids(g.pred[i])
}

// InDegree returns the number of distinct direct predecessors of id.
func (g *Graph) InDegree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.pred[i])
}

// Edge returns the edge from source to target, if any.
func (g *Graph) Edge(source, target string) (*Edge, bool) {
	from, ok := g.index[source]
	if !ok {
		return nil, false
	}
	to, ok := g.index[target]
	if !ok {
		return nil, false
	}
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// DescendantCount returns how many components are reachable from id,
// excluding id itself.
func (g *Graph) DescendantCount(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.reach(i)) - 1
}

// reach returns start followed by every index reachable from it, in
// breadth-first discovery order. Each index appears once.
func (g *Graph) reach(start int) []int {
	visited := make([]bool, len(g.nodes))
	visited[start] = true
	order := []int{start}

	for head := 0; head < len(order); head++ {
		for _, next := range g.succ[order[head]] {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
		}
	}
	return order
}

func (g *Graph) ids(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = g.nodes[idx].ID
	}
	return out
}
