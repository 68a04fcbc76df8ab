// Package graphio owns the Graph model, DIMACS-like input parsing, the
// frontier bookkeeping the connectivity-style specs in package specs rely
// on, and the result/enumeration output formats.
package graphio

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/internal/dderr"
)

// Edge is one input-ordered edge. Index is the edge's 1-based variable
// number when the solution-space universe is edges (matching/tree/forest
// families); vertex-universe families ignore it.
type Edge struct {
	U, V  int // 1-based vertex indices
	Color int // 0 means uncolored
	Index int // 1-based position in input order
}

// Graph is an undirected multigraph with up to 32767 named vertices,
// built incrementally and then finalized with Update. Vertex names are
// whatever strings the DIMACS-like input used; Graph assigns each a
// stable 1-based inner index in first-appearance order, mirroring the
// original tool's inner/outer vertex numbering.
type Graph struct {
	names   []string // names[i-1] is the name of inner vertex i
	index   map[string]int
	edges   []Edge
	adj     [][]int // adj[v] = incident edge indices (1-based into edges, stored as edges[i-1])
	built   bool
	vColors []int // 1-based: vColors[v] (slot 0 unused), for root/rainbow-on-vertices use
}

// MaxVertices is the largest graph this implementation accepts, matching
// the original tool's 15-bit vertex-index limit.
const MaxVertices = 32767

// MaxColors is the largest edge/vertex color value accepted, matching
// RainbowSpec's 64-bit used-color mask.
const MaxColors = 64

// NewGraph creates an empty graph builder.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// VertexID returns name's inner 1-based index, assigning one if name has
// not been seen before.
func (g *Graph) VertexID(name string) (int, error) {
	if id, ok := g.index[name]; ok {
		return id, nil
	}
	if len(g.names) >= MaxVertices {
		return 0, errors.Wrapf(dderr.ErrInput, "graph exceeds %d vertices", MaxVertices)
	}
	g.names = append(g.names, name)
	id := len(g.names)
	g.index[name] = id
	return id, nil
}

// VertexName returns the original name for inner vertex id.
func (g *Graph) VertexName(id int) string {
	if id < 1 || id > len(g.names) {
		return fmt.Sprintf("%d", id)
	}
	return g.names[id-1]
}

// AddEdge appends an edge between the named endpoints, in input order.
func (g *Graph) AddEdge(uName, vName string, color int) (*Edge, error) {
	u, err := g.VertexID(uName)
	if err != nil {
		return nil, err
	}
	v, err := g.VertexID(vName)
	if err != nil {
		return nil, err
	}
	e := Edge{U: u, V: v, Color: color, Index: len(g.edges) + 1}
	g.edges = append(g.edges, e)
	return &g.edges[len(g.edges)-1], nil
}

// Update finalizes the adjacency structure after all edges have been
// added. Must be called once before the graph is used by any spec.
func (g *Graph) Update() {
	g.adj = make([][]int, len(g.names)+1)
	for i, e := range g.edges {
		g.adj[e.U] = append(g.adj[e.U], i+1)
		g.adj[e.V] = append(g.adj[e.V], i+1)
	}
	if g.vColors == nil {
		g.vColors = make([]int, len(g.names)+1)
	}
	g.built = true
}

// SetVertexColor records a per-vertex color (used by rooted spanning
// forest's per-root coloring).
func (g *Graph) SetVertexColor(v, color int) {
	if g.vColors == nil {
		g.vColors = make([]int, len(g.names)+1)
	}
	for len(g.vColors) <= v {
		g.vColors = append(g.vColors, 0)
	}
	g.vColors[v] = color
}

func (g *Graph) VertexColor(v int) int {
	if v < 0 || v >= len(g.vColors) {
		return 0
	}
	return g.vColors[v]
}

// VertexCount returns the number of distinct vertices.
func (g *Graph) VertexCount() int { return len(g.names) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns the input-ordered edge slice.
func (g *Graph) Edges() []Edge { return g.edges }

// Edge returns the 1-based indexed edge (edge variable numbers are
// 1-based, matching ZDD levels).
func (g *Graph) Edge(index int) Edge { return g.edges[index-1] }

// IncidentEdges returns the edge indices (1-based) touching vertex v.
func (g *Graph) IncidentEdges(v int) []int { return g.adj[v] }

// HasEdgeBetween reports whether u and v are directly connected.
func (g *Graph) HasEdgeBetween(u, v int) bool {
	for _, idx := range g.adj[u] {
		e := g.edges[idx-1]
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			return true
		}
	}
	return false
}
