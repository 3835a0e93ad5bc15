package simulator

// Propagate returns the components affected by compromising startID: the
// start itself followed by everything reachable from it along flow
// direction, in breadth-first discovery order. Cycles are visited once.
//
// An unknown startID yields an empty set rather than an error so the
// function is safe to call without prior validation.
func Propagate(g *Graph, startID string) *ComponentSet {
	affected := NewComponentSet()
	start, ok := g.index[startID]
	if !ok {
		return affected
	}
	for _, i := range g.reach(start) {
		affected.Add(g.nodes[i].ID)
	}
	return affected
}
