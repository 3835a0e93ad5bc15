package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	g := mustGraph(t, branchingArch())

	tests := []struct {
		name     string
		affected *ComponentSet
		want     float64
	}{
		{"nil set", nil, 100},
		{"empty set", NewComponentSet(), 100},
		{"one of four", NewComponentSet("root"), 75},
		{"all", NewComponentSet("root", "b1", "b2", "leaf"), 0},
		{"unknown ids clamp at zero", NewComponentSet("root", "b1", "b2", "leaf", "x", "y"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(g, tt.affected))
		})
	}

	assert.Equal(t, 33.33, Score(mustGraph(t, linearArch()), NewComponentSet("A", "B")))
	assert.Equal(t, 0.0, Score(&Graph{}, nil), "empty graph scores zero")
}
