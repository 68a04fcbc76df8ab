package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/zdd"
)

func twoDisjointEdgeGraph(t *testing.T) *graphio.Graph {
	t.Helper()
	g := graphio.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("c", "d", 0)
	require.NoError(t, err)
	g.Update()
	return g
}

func TestFrontierBasedSearchUnconstrainedAcceptsEveryAcyclicSubset(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdgeGraph(t)
	fm := graphio.NewFrontierManager(g)
	spec := NewFrontierBasedSearch(g, fm, nil, -1, NoRootRequirement)
	h, err := ddspec.Build(context.Background(), k, spec)
	require.NoError(t, err)
	assert.Equal(t, "4", k.Card(h).String())
}

func TestFrontierBasedSearchTargetComponentsRejectsTooMany(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdgeGraph(t)
	fm := graphio.NewFrontierManager(g)
	spec := NewFrontierBasedSearch(g, fm, nil, 1, NoRootRequirement)
	h, err := ddspec.Build(context.Background(), k, spec)
	require.NoError(t, err)
	assert.Equal(t, "0", k.Card(h).String(), "two disjoint edges can never form a single component")
}
