package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/missionsim/pkg/mission"
)

func rankIDs(ranking []RankEntry) []string {
	ids := make([]string, len(ranking))
	for i, r := range ranking {
		ids[i] = r.ComponentID
	}
	return ids
}

func TestRankCriticality_CompositeIsCriticalityPlusInDegree(t *testing.T) {
	g := mustGraph(t, linearArch())
	ranking := RankCriticality(g, nil, 10)

	require.Len(t, ranking, 3)
	assert.Equal(t, []string{"C", "B", "A"}, rankIDs(ranking))
	assert.Equal(t, 10.0, ranking[0].CriticalityScore)
	assert.Equal(t, 9.0, ranking[1].CriticalityScore)
	assert.Equal(t, 7.0, ranking[2].CriticalityScore)
	for _, r := range ranking {
		assert.False(t, r.Affected, "nil affected set marks nothing")
	}
}

func TestRankCriticality_TiesBrokenByDescendantsThenDeclaration(t *testing.T) {
	g := mustGraph(t, branchingArch())
	ranking := RankCriticality(g, nil, 10)

	// b1, b2 and leaf all score 6; b1 has a descendant, b2 precedes leaf.
	assert.Equal(t, []string{"b1", "b2", "leaf", "root"}, rankIDs(ranking))
}

func TestRankCriticality_TopN(t *testing.T) {
	g := mustGraph(t, chainArch(25))

	assert.Len(t, RankCriticality(g, nil, 5), 5)
	assert.Len(t, RankCriticality(g, nil, 0), DefaultTopN)
	assert.Len(t, RankCriticality(g, nil, -3), DefaultTopN)
	assert.Len(t, RankCriticality(g, nil, 100), 25)
}

func TestRankCriticality_AffectedFlags(t *testing.T) {
	g := mustGraph(t, disconnectedArch())
	ranking := RankCriticality(g, NewComponentSet("a1", "a2"), 10)

	flags := make(map[string]bool)
	for _, r := range ranking {
		flags[r.ComponentID] = r.Affected
	}
	assert.Equal(t, map[string]bool{"a1": true, "a2": true, "b1": false, "b2": false}, flags)
}

func TestRankCriticality_ParallelFlowsCountOnce(t *testing.T) {
	arch := &mission.Architecture{
		Components: []mission.Component{comp("src", 1), comp("dst", 1)},
		Flows:      []mission.Flow{flow("f1", "src", "dst"), flow("f2", "src", "dst"), flow("f3", "src", "dst")},
	}
	ranking := RankCriticality(mustGraph(t, arch), nil, 10)

	require.Len(t, ranking, 2)
	assert.Equal(t, "dst", ranking[0].ComponentID)
	assert.Equal(t, 2.0, ranking[0].CriticalityScore)
}

func TestRankCriticality_CarriesMetadata(t *testing.T) {
	ranking := RankCriticality(mustGraph(t, mission.StubArchitecture(1)), nil, 1)

	require.Len(t, ranking, 1)
	assert.Equal(t, RankEntry{
		ComponentID:      "control-1",
		ComponentName:    "Control-1",
		ComponentType:    mission.TypeControl,
		CriticalityScore: 10,
	}, ranking[0])
}
