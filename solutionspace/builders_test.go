package solutionspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/zdd"
)

// triangle builds K3 over vertices "a", "b", "c" (inner indices 1, 2, 3).
func triangle(t *testing.T) *graphio.Graph {
	t.Helper()
	g := graphio.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("a", "c", 0)
	require.NoError(t, err)
	g.Update()
	return g
}

func members(t *testing.T, k *zdd.Kernel, h zdd.Handle) [][]int {
	t.Helper()
	var out [][]int
	k.Enumerate(h, func(m []int) bool {
		out = append(out, append([]int(nil), m...))
		return true
	})
	return out
}

func TestIndependentSetOverCompleteGraph(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := triangle(t)
	h, err := Build(context.Background(), k, g, IndependentSet, nil, false, nil)
	require.NoError(t, err)

	got := members(t, k, h)
	want := [][]int{{}, {1}, {2}, {3}}
	assert.ElementsMatch(t, want, got, "a complete graph's only independent sets are the empty set and singletons")
}

func TestVertexCoverOverCompleteGraph(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := triangle(t)
	h, err := Build(context.Background(), k, g, VertexCover, nil, false, nil)
	require.NoError(t, err)

	got := members(t, k, h)
	want := [][]int{{1, 2}, {1, 3}, {2, 3}, {1, 2, 3}}
	assert.ElementsMatch(t, want, got)
}

func TestCliqueOverCompleteGraphIsPowerSet(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := triangle(t)
	h, err := Build(context.Background(), k, g, Clique, nil, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "8", k.Card(h).String())
}

func TestDominatingSetOverCompleteGraphExcludesEmpty(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := triangle(t)
	h, err := Build(context.Background(), k, g, DominatingSet, nil, false, nil)
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true}))
	assert.Equal(t, "7", k.Card(h).String())
}

func TestIsEdgeVariable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{IndependentSet, false},
		{Clique, false},
		{VertexCover, false},
		{DominatingSet, false},
		{Matching, true},
		{Path, true},
		{Tree, true},
		{SpanningTree, true},
		{Forest, true},
		{RootedSpanningForest, true},
		{SteinerTree, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.IsEdgeVariable(), "kind %d", tt.kind)
	}
}

func TestMatchingOverCompleteGraph(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := triangle(t)
	h, err := Build(context.Background(), k, g, Matching, nil, false, nil)
	require.NoError(t, err)

	got := members(t, k, h)
	// Edges are 1:(a,b) 2:(b,c) 3:(a,c). Valid matchings: empty, any single
	// edge (3), or any two edges sharing no endpoint - but in a triangle no
	// two edges are independent, so only the empty set and singletons.
	want := [][]int{{}, {1}, {2}, {3}}
	assert.ElementsMatch(t, want, got)
}

// singleEdge builds one edge between a(1) and b(2).
func singleEdge(t *testing.T) *graphio.Graph {
	t.Helper()
	g := graphio.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	g.Update()
	return g
}

// twoDisjointEdges builds a(1)-b(2) and c(3)-d(4), sharing no vertex.
func twoDisjointEdges(t *testing.T) *graphio.Graph {
	t.Helper()
	g := graphio.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("c", "d", 0)
	require.NoError(t, err)
	g.Update()
	return g
}

// path3 builds a path a(1)-b(2)-c(3): edge 1 is (a,b), edge 2 is (b,c).
func path3(t *testing.T) *graphio.Graph {
	t.Helper()
	g := graphio.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 0)
	require.NoError(t, err)
	g.Update()
	return g
}

func TestTreeOverSingleEdgeRequiresTakingIt(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := singleEdge(t)
	h, err := Build(context.Background(), k, g, Tree, nil, false, nil)
	require.NoError(t, err)

	// Leaving an edge untaken strands its two endpoints as separate
	// singleton components, so only the single-edge selection yields
	// exactly one closed component.
	got := members(t, k, h)
	assert.Equal(t, [][]int{{1}}, got)
}

func TestSpanningTreeOverSingleEdgeMatchesTree(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := singleEdge(t)
	h, err := Build(context.Background(), k, g, SpanningTree, nil, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}}, members(t, k, h))
}

func TestForestOverDisjointEdgesAllowsAnyCombination(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdges(t)
	h, err := Build(context.Background(), k, g, Forest, nil, false, nil)
	require.NoError(t, err)

	// Forest has no connectivity requirement, so every subset of two
	// disjoint (and therefore acyclic) edges qualifies.
	want := [][]int{{}, {1}, {2}, {1, 2}}
	assert.ElementsMatch(t, want, members(t, k, h))
}

func TestTreeOverDisjointEdgesIsEmpty(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdges(t)
	h, err := Build(context.Background(), k, g, Tree, nil, false, nil)
	require.NoError(t, err)

	// A single tree must be one connected component; two disjoint edges
	// can never merge into one, regardless of which are taken.
	assert.Equal(t, "0", k.Card(h).String())
}

func TestPathOverSingleEdgeRequiresTakingIt(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := singleEdge(t)
	h, err := Build(context.Background(), k, g, Path, nil, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}}, members(t, k, h))
}

func TestRootedSpanningForestWithTooFewRootsIsEmpty(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdges(t)
	// Only vertex a is a root; spanning both disjoint edges necessarily
	// creates a second component with no root at all.
	h, err := Build(context.Background(), k, g, RootedSpanningForest, []int{1}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "0", k.Card(h).String())
}

func TestRootedSpanningForestWithOneRootPerComponent(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdges(t)
	// a roots the first component, c roots the second; both edges must be
	// taken so every non-root vertex (b, d) reaches degree 1.
	h, err := Build(context.Background(), k, g, RootedSpanningForest, []int{1, 3}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, members(t, k, h))
}

func TestSteinerTreeOverDisconnectedTerminalsIsEmpty(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := twoDisjointEdges(t)
	h, err := Build(context.Background(), k, g, SteinerTree, []int{1, 3}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "0", k.Card(h).String())
}

func TestSteinerTreeOverPathConnectsBothTerminals(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	g := path3(t)
	h, err := Build(context.Background(), k, g, SteinerTree, []int{1, 3}, false, nil)
	require.NoError(t, err)
	// Only taking both edges connects terminals a and c into one component;
	// either edge alone leaves a and c in separate components.
	assert.Equal(t, [][]int{{1, 2}}, members(t, k, h))
}
