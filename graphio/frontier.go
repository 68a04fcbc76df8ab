package graphio

// FrontierManager precomputes, for each edge index (1-based, matching the
// ZDD variable numbering when the universe is edges), which vertices enter
// the frontier (are seen for the first time), which are already on the
// frontier, and which leave it (are seen for the last time). This is the
// bookkeeping every connectivity-style spec (DegreeConstraint,
// FrontierBasedSearch, FrontierDegreeSpecifiedSpec) consults to know when
// a vertex's final degree and component membership can be checked.
//
// Decision order runs from the highest edge index down to 1 (ddspec.Build
// visits levels top-down from Variables()), so a vertex is entered at the
// largest edge index touching it and left at the smallest: the opposite of
// array order.
type FrontierManager struct {
	numEdges   int
	entering   [][]int // entering[i] = vertices first decided at edge i (largest incident index)
	leaving    [][]int // leaving[i] = vertices last decided at edge i (smallest incident index)
	frontierAt [][]int // frontierAt[i] = vertices present in the frontier while processing edge i
}

// NewFrontierManager computes frontier bookkeeping for g, whose Update
// must already have been called.
func NewFrontierManager(g *Graph) *FrontierManager {
	m := g.EdgeCount()
	first := make([]int, g.VertexCount()+1)
	last := make([]int, g.VertexCount()+1)
	for v := 1; v <= g.VertexCount(); v++ {
		first[v] = 0
		last[v] = 0
	}
	for i, e := range g.Edges() {
		idx := i + 1
		for _, v := range [2]int{e.U, e.V} {
			if first[v] == 0 {
				first[v] = idx
			}
			last[v] = idx
		}
	}

	fm := &FrontierManager{
		numEdges:   m,
		entering:   make([][]int, m+1),
		leaving:    make([][]int, m+1),
		frontierAt: make([][]int, m+1),
	}
	for v := 1; v <= g.VertexCount(); v++ {
		if first[v] == 0 {
			continue // isolated vertex, touches no edge
		}
		// Decision order is descending, so the largest incident index is
		// decided first (entering) and the smallest is decided last (leaving).
		fm.entering[last[v]] = append(fm.entering[last[v]], v)
		fm.leaving[first[v]] = append(fm.leaving[first[v]], v)
	}
	for v := 1; v <= g.VertexCount(); v++ {
		if first[v] == 0 {
			continue
		}
		for i := first[v]; i <= last[v]; i++ {
			fm.frontierAt[i] = append(fm.frontierAt[i], v)
		}
	}
	return fm
}

// NumEdges returns the number of edges (and therefore decision levels).
func (fm *FrontierManager) NumEdges() int { return fm.numEdges }

// Entering returns the vertices introduced when edge index i is decided.
func (fm *FrontierManager) Entering(i int) []int { return fm.entering[i] }

// Leaving returns the vertices decided for the last time at edge index i;
// once edge i is decided, these vertices' final degree and component
// membership are fixed.
func (fm *FrontierManager) Leaving(i int) []int { return fm.leaving[i] }

// FrontierAt returns every vertex active (already entered, not yet left)
// while deciding edge index i, in a stable order usable as a canonical
// key for per-vertex state slices.
func (fm *FrontierManager) FrontierAt(i int) []int { return fm.frontierAt[i] }
