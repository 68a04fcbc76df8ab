// Package solutionspace builds the ZDD representing each supported
// solution-space family (independent set, clique, vertex cover,
// dominating set, matching, path, forest, tree, spanning tree, rooted
// spanning forest, Steiner tree), each grounded directly on the matching
// composition recipe from the original tool.
package solutionspace

import (
	"context"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/specs"
	"github.com/ddreconf/reconf/zdd"
)

// Kind identifies which family to build, mirroring the original's
// SolKind enum.
type Kind int

const (
	IndependentSet Kind = iota
	Clique
	VertexCover
	DominatingSet
	Matching
	Path
	Tree
	SpanningTree
	Forest
	RootedSpanningForest
	SteinerTree
)

// IsEdgeVariable reports whether kind's universe is the graph's edges
// (true) or its vertices (false), matching Option::isEdgeVariable.
func (k Kind) IsEdgeVariable() bool {
	switch k {
	case Matching, Path, Tree, SpanningTree, Forest, RootedSpanningForest, SteinerTree:
		return true
	default:
		return false
	}
}

// Build constructs the ZDD for kind over g, optionally restricted to a
// given root set (rooted spanning forest and Steiner tree) and rainbow
// coloring (colors indexed by the same universe as kind, 0 = uncolored).
func Build(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph, kind Kind, roots []int, rainbow bool, colors []int) (zdd.Handle, error) {
	var (
		h   zdd.Handle
		err error
	)
	switch kind {
	case IndependentSet:
		h, err = buildIndependentSetOrCover(ctx, kernel, g, true)
	case VertexCover:
		h, err = buildIndependentSetOrCover(ctx, kernel, g, false)
	case Clique:
		h, err = buildClique(ctx, kernel, g)
	case DominatingSet:
		h, err = buildDominatingSet(ctx, kernel, g)
	case Matching:
		h, err = buildMatching(ctx, kernel, g)
	case Path:
		h, err = buildPath(ctx, kernel, g)
	case Forest:
		h, err = buildForestOrTree(ctx, kernel, g, false, false, nil, false)
	case Tree:
		h, err = buildForestOrTree(ctx, kernel, g, true, false, nil, false)
	case SpanningTree:
		h, err = buildForestOrTree(ctx, kernel, g, true, true, nil, false)
	case RootedSpanningForest:
		h, err = buildForestOrTree(ctx, kernel, g, false, true, roots, false)
	case SteinerTree:
		h, err = buildForestOrTree(ctx, kernel, g, true, false, roots, true)
	default:
		return zdd.Bot, errUnknownKind(kind)
	}
	if err != nil {
		return zdd.Bot, err
	}

	if rainbow {
		rb, rerr := specs.NewRainbowSpec(universeSize(g, kind), colors)
		if rerr != nil {
			return zdd.Bot, rerr
		}
		rbZdd, berr := ddspec.Build(ctx, kernel, rb)
		if berr != nil {
			return zdd.Bot, berr
		}
		h, err = kernel.Intersect(h, rbZdd)
		if err != nil {
			return zdd.Bot, err
		}
	}
	return h, nil
}

func universeSize(g *graphio.Graph, kind Kind) int {
	if kind.IsEdgeVariable() {
		return g.EdgeCount()
	}
	return g.VertexCount()
}

// buildIndependentSetOrCover builds {S ⊆ V : no edge has both endpoints
// in S} when independentSet is true, or {S ⊆ V : every edge has at least
// one endpoint in S} (vertex cover) otherwise. Grounded on
// IndependentSet.hpp.
func buildIndependentSetOrCover(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph, independentSet bool) (zdd.Handle, error) {
	n := g.VertexCount()
	h, err := ddspec.Build(ctx, kernel, specs.NewPowerSetSpec(n))
	if err != nil {
		return zdd.Bot, err
	}
	for _, e := range g.Edges() {
		edgeZdd, err := ddspec.Build(ctx, kernel, specs.NewAdjacentSpec(e.U, e.V, n, independentSet))
		if err != nil {
			return zdd.Bot, err
		}
		h, err = kernel.Intersect(h, edgeZdd)
		if err != nil {
			return zdd.Bot, err
		}
	}
	return h, nil
}

// buildClique builds {S ⊆ V : every pair of distinct vertices in S is
// adjacent}, via forbidding both endpoints of every non-edge pair.
// Grounded on Clique.hpp.
func buildClique(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph) (zdd.Handle, error) {
	n := g.VertexCount()
	h, err := ddspec.Build(ctx, kernel, specs.NewPowerSetSpec(n))
	if err != nil {
		return zdd.Bot, err
	}
	for u := 1; u <= n; u++ {
		for v := u + 1; v <= n; v++ {
			if g.HasEdgeBetween(u, v) {
				continue
			}
			pairZdd, err := ddspec.Build(ctx, kernel, specs.NewAdjacentSpec(u, v, n, true))
			if err != nil {
				return zdd.Bot, err
			}
			h, err = kernel.Intersect(h, pairZdd)
			if err != nil {
				return zdd.Bot, err
			}
		}
	}
	return h, nil
}

// buildDominatingSet builds {S ⊆ V : every vertex is in S or adjacent to
// a vertex in S}. Grounded on DominatingSet.hpp.
func buildDominatingSet(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph) (zdd.Handle, error) {
	n := g.VertexCount()
	h, err := ddspec.Build(ctx, kernel, specs.NewPowerSetSpec(n))
	if err != nil {
		return zdd.Bot, err
	}
	for v := 1; v <= n; v++ {
		closedNbhd := []int{v}
		for _, idx := range g.IncidentEdges(v) {
			e := g.Edge(idx)
			other := e.U
			if other == v {
				other = e.V
			}
			closedNbhd = append(closedNbhd, other)
		}
		spec := specs.NewVariableConditionSpec(closedNbhd, n, specs.AtLeastOne)
		condZdd, err := ddspec.Build(ctx, kernel, spec)
		if err != nil {
			return zdd.Bot, err
		}
		h, err = kernel.Intersect(h, condZdd)
		if err != nil {
			return zdd.Bot, err
		}
	}
	return h, nil
}

// buildMatching builds {S ⊆ E : every vertex touches at most one edge of
// S}, directly via a uniform [0,1] DegreeConstraint. Grounded on
// Matching.hpp.
func buildMatching(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph) (zdd.Handle, error) {
	fm := graphio.NewFrontierManager(g)
	dc := specs.NewDegreeConstraint(g, fm, func(int) specs.IntRange { return specs.Between(0, 1) })
	return ddspec.Build(ctx, kernel, dc)
}

// buildPath builds {S ⊆ E : S forms a single simple path}, via degree
// buckets requiring exactly two degree-1 vertices and any number of
// degree-2 vertices in a single connected acyclic component. Grounded on
// Path.hpp.
func buildPath(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph) (zdd.Handle, error) {
	fm := graphio.NewFrontierManager(g)
	degRanges := []specs.IntRange{
		specs.AtLeast(0),
		specs.Exactly(2),
		specs.AtLeast(0),
	}
	spec := specs.NewFrontierDegreeSpecifiedSpec(g, fm, degRanges)
	return ddspec.Build(ctx, kernel, spec)
}

// buildForestOrTree covers FOREST, TREE, SP_TREE, R_SP_FOREST, and
// ST_TREE, mirroring ForestOrTree.hpp's single parameterized class.
func buildForestOrTree(ctx context.Context, kernel *zdd.Kernel, g *graphio.Graph, isTree, isSpanning bool, roots []int, isSteiner bool) (zdd.Handle, error) {
	fm := graphio.NewFrontierManager(g)

	target := -1
	rootReq := specs.NoRootRequirement
	switch {
	case isSteiner:
		target = 1
		rootReq = specs.AllRootsInOneComponent
	case isTree:
		target = 1
	case len(roots) > 0:
		rootReq = specs.AtLeastOneRootPerComponent
	}

	fbs := specs.NewFrontierBasedSearch(g, fm, roots, target, rootReq)
	h, err := ddspec.Build(ctx, kernel, fbs)
	if err != nil {
		return zdd.Bot, err
	}

	if isSpanning {
		rootSet := make(map[int]bool, len(roots))
		for _, r := range roots {
			rootSet[r] = true
		}
		dc := specs.NewDegreeConstraint(g, fm, func(v int) specs.IntRange {
			if rootSet[v] {
				return specs.AtLeast(0)
			}
			return specs.AtLeast(1)
		})
		dcZdd, err := ddspec.Build(ctx, kernel, dc)
		if err != nil {
			return zdd.Bot, err
		}
		h, err = kernel.Intersect(h, dcZdd)
		if err != nil {
			return zdd.Bot, err
		}
	}
	return h, nil
}
