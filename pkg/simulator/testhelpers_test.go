package simulator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/missionsim/pkg/mission"
)

func comp(id string, crit int) mission.Component {
	return mission.Component{ID: id, Name: "Name-" + id, Type: mission.TypeCompute, Criticality: crit}
}

func flow(id, src, dst string) mission.Flow {
	return mission.Flow{ID: id, Source: src, Target: dst}
}

// linearArch: A -> B -> C
func linearArch() *mission.Architecture {
	return &mission.Architecture{
		ID:   1,
		Name: "linear",
		Components: []mission.Component{
			{ID: "A", Name: "Sensor-A", Type: mission.TypeSensor, Criticality: 7},
			{ID: "B", Name: "Compute-B", Type: mission.TypeCompute, Criticality: 8},
			{ID: "C", Name: "Control-C", Type: mission.TypeControl, Criticality: 9},
		},
		Flows: []mission.Flow{flow("f1", "A", "B"), flow("f2", "B", "C")},
	}
}

// branchingArch: root -> b1 -> leaf, root -> b2
func branchingArch() *mission.Architecture {
	return &mission.Architecture{
		ID:         2,
		Name:       "branching",
		Components: []mission.Component{comp("root", 5), comp("b1", 5), comp("b2", 5), comp("leaf", 5)},
		Flows: []mission.Flow{
			flow("f1", "root", "b1"),
			flow("f2", "root", "b2"),
			flow("f3", "b1", "leaf"),
		},
	}
}

// disconnectedArch: a1 -> a2, b1 -> b2
func disconnectedArch() *mission.Architecture {
	return &mission.Architecture{
		ID:         3,
		Name:       "disconnected",
		Components: []mission.Component{comp("a1", 3), comp("a2", 3), comp("b1", 3), comp("b2", 3)},
		Flows:      []mission.Flow{flow("f1", "a1", "a2"), flow("f2", "b1", "b2")},
	}
}

// cyclicArch: x -> y -> z -> x
func cyclicArch() *mission.Architecture {
	return &mission.Architecture{
		ID:         4,
		Name:       "cyclic",
		Components: []mission.Component{comp("x", 4), comp("y", 4), comp("z", 4)},
		Flows:      []mission.Flow{flow("f1", "x", "y"), flow("f2", "y", "z"), flow("f3", "z", "x")},
	}
}

func singleArch() *mission.Architecture {
	return &mission.Architecture{
		ID:         5,
		Name:       "single",
		Components: []mission.Component{comp("solo", 6)},
	}
}

// chainArch builds c0 -> c1 -> ... -> c(n-1).
func chainArch(n int) *mission.Architecture {
	arch := &mission.Architecture{ID: 6, Name: fmt.Sprintf("chain-%d", n)}
	for i := 0; i < n; i++ {
		arch.Components = append(arch.Components, comp(fmt.Sprintf("c%d", i), 1+i%10))
		if i > 0 {
			arch.Flows = append(arch.Flows, flow(fmt.Sprintf("f%d", i), fmt.Sprintf("c%d", i-1), fmt.Sprintf("c%d", i)))
		}
	}
	return arch
}

func mustGraph(t *testing.T, arch *mission.Architecture) *Graph {
	t.Helper()
	g, err := BuildGraph(arch)
	require.NoError(t, err)
	return g
}

func mustSimulator(t *testing.T, arch *mission.Architecture, opts ...Option) *Simulator {
	t.Helper()
	s, err := New(arch, opts...)
	require.NoError(t, err)
	return s
}
