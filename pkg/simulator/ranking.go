package simulator

import "sort"

// DefaultTopN is the ranking length used when none is configured.
const DefaultTopN = 10

// RankEntry is one row of the criticality ranking.
type RankEntry struct {
	ComponentID      string  `json:"component_id"`
	ComponentName    string  `json:"component_name"`
	ComponentType    string  `json:"component_type"`
	CriticalityScore float64 `json:"criticality_score"`
	Affected         bool    `json:"affected"`
}

// RankCriticality scores every component as assigned criticality plus
// in-degree and returns the topN highest. Ties go to the component with more
// descendants, then to declaration order. A nil affected set marks nothing.
func RankCriticality(g *Graph, affected *ComponentSet, topN int) []RankEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}

	type scored struct {
		node        int
		composite   float64
		descendants int
	}

	entries := make([]scored, len(g.nodes))
	for i, c := range g.nodes {
		entries[i] = scored{
			node:        i,
			composite:   float64(c.Criticality + len(g.pred[i])),
			descendants: len(g.reach(i)) - 1,
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].composite != entries[b].composite {
			return entries[a].composite > entries[b].composite
		}
		return entries[a].descendants > entries[b].descendants
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}

	ranking := make([]RankEntry, len(entries))
	for i, e := range entries {
		c := g.nodes[e.node]
		ranking[i] = RankEntry{
			ComponentID:      c.ID,
			ComponentName:    c.Name,
			ComponentType:    c.Type,
			CriticalityScore: e.composite,
			Affected:         affected.Contains(c.ID),
		}
	}
	return ranking
}
