package simulator

import (
	"fmt"
	"math"

	"github.com/dd0wney/missionsim/pkg/mission"
)

// BuildAttackPath describes how a compromise of targetID spread, one line per
// step. Step 1 is the target itself; later steps follow breadth-first
// discovery through successors that are in affected. When more than one
// component was hit, a closing step reports the total.
func BuildAttackPath(g *Graph, targetID string, affected *ComponentSet) []string {
	start, ok := g.index[targetID]
	if !ok {
		return []string{}
	}

	target := g.nodes[start]
	path := []string{
		fmt.Sprintf("Step 1: %s '%s' directly compromised (integrity and availability loss)",
			typeOrDefault(target.Type), nameOrID(target)),
	}

	step := 2
	visited := map[int]bool{start: true}
	queue := []int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range g.succ[current] {
			if visited[next] || !affected.Contains(g.nodes[next].ID) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)

			c := g.nodes[next]
			path = append(path, fmt.Sprintf("Step %d: %s '%s' receives corrupted data from '%s'",
				step, typeOrDefault(c.Type), nameOrID(c), nameOrID(g.nodes[current])))
			step++
		}
	}

	if affected.Len() > 1 {
		path = append(path, fmt.Sprintf("Step %d: Mission objective degraded due to %d compromised components",
			step, affected.Len()))
	}

	return path
}

// BuildExplanation summarizes a run in one sentence: what was attacked,
// whether the compromise spread, and how far the mission score fell.
func BuildExplanation(g *Graph, scenario Scenario, targetID string, affected *ComponentSet, baseline, compromised float64) string {
	name := targetID
	if c, ok := g.Component(targetID); ok {
		name = nameOrID(c)
	}

	others := affected.Len()
	if affected.Contains(targetID) {
		others--
	}

	spread := "stayed isolated with no downstream propagation"
	if others > 0 {
		spread = fmt.Sprintf("propagated to %d downstream component(s)", others)
	}

	return fmt.Sprintf("%s on '%s' %s, degrading mission success from %.1f%% to %.1f%% (–%.1f percentage points).",
		scenario.Label(), name, spread, baseline, compromised, math.Abs(baseline-compromised))
}

func nameOrID(c mission.Component) string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}

func typeOrDefault(t string) string {
	if t == "" {
		return "Component"
	}
	return t
}
