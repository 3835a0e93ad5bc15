package simulator

import "math"

// Score returns the mission success percentage: the share of components not
// in affected, rounded to two decimals. IDs in affected that are not graph
// nodes still count against the total, but healthy never drops below zero.
func Score(g *Graph, affected *ComponentSet) float64 {
	total := g.NodeCount()
	if total == 0 {
		return 0.0
	}

	healthy := total - affected.Len()
	healthy = max(0, min(healthy, total))

	return round2(float64(healthy) / float64(total) * 100.0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
