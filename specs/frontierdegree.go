package specs

import (
	"context"
	"sort"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
)

// FrontierDegreeSpecifiedSpec generalizes FrontierBasedSearch with a
// global constraint on how many vertices end with each possible final
// degree: degRanges[d] bounds the count of vertices whose final selected
// degree equals d, for d in 0..len(degRanges)-1. A vertex whose degree
// would exceed len(degRanges)-1 is rejected outright. Used by Path, whose
// degRanges requires exactly two degree-1 vertices (the endpoints) with
// every other touched vertex at degree 2, within a single connected,
// acyclic component.
type FrontierDegreeSpecifiedSpec struct {
	graph     *graphio.Graph
	fm        *graphio.FrontierManager
	degRanges []IntRange
}

// NewFrontierDegreeSpecifiedSpec builds the spec over g's edges.
func NewFrontierDegreeSpecifiedSpec(g *graphio.Graph, fm *graphio.FrontierManager, degRanges []IntRange) *FrontierDegreeSpecifiedSpec {
	return &FrontierDegreeSpecifiedSpec{graph: g, fm: fm, degRanges: degRanges}
}

func (s *FrontierDegreeSpecifiedSpec) Variables() int { return s.fm.NumEdges() }

func (s *FrontierDegreeSpecifiedSpec) InitialState() ddspec.State {
	return &fdsState{
		comp:       map[int]int{},
		deg:        map[int]int{},
		nextCompID: 1,
		degCount:   make([]int, len(s.degRanges)),
	}
}

type fdsState struct {
	comp        map[int]int
	deg         map[int]int
	nextCompID  int
	closedCount int
	degCount    []int
}

func (s *fdsState) Clone() ddspec.State {
	cp := &fdsState{
		comp:        make(map[int]int, len(s.comp)),
		deg:         make(map[int]int, len(s.deg)),
		nextCompID:  s.nextCompID,
		closedCount: s.closedCount,
		degCount:    append([]int(nil), s.degCount...),
	}
	for k, v := range s.comp {
		cp.comp[k] = v
	}
	for k, v := range s.deg {
		cp.deg[k] = v
	}
	return cp
}

func (s *fdsState) Hash() uint64 {
	keys := make([]int, 0, len(s.comp))
	for k := range s.comp {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	// Hash the component labels Equal compares (numbered by first
	// appearance), not the raw ids, so equal states hash alike.
	label := map[int]int{}
	var h uint64 = 1469598103934665603
	for _, k := range keys {
		lbl, ok := label[s.comp[k]]
		if !ok {
			lbl = len(label)
			label[s.comp[k]] = lbl
		}
		h = (h ^ uint64(k)) * 1099511628211
		h = (h ^ uint64(lbl)) * 1099511628211
		h = (h ^ uint64(s.deg[k])) * 1099511628211
	}
	for _, c := range s.degCount {
		h = (h ^ uint64(c)) * 1099511628211
	}
	h = (h ^ uint64(s.closedCount)) * 1099511628211
	return h
}

func (s *fdsState) Equal(other ddspec.State) bool {
	o, ok := other.(*fdsState)
	if !ok || s.closedCount != o.closedCount || len(s.comp) != len(o.comp) {
		return false
	}
	for i, c := range s.degCount {
		if o.degCount[i] != c {
			return false
		}
	}
	label := map[int]int{}
	next := 0
	shapeOf := func(m map[int]int) []int {
		keys := make([]int, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		out := make([]int, 0, len(keys)*3)
		for _, k := range keys {
			c := m[k]
			lbl, ok := label[c]
			if !ok {
				lbl = next
				label[c] = lbl
				next++
			}
			out = append(out, k, lbl, s.deg[k])
		}
		return out
	}
	a := shapeOf(s.comp)
	label = map[int]int{}
	next = 0
	bShape := func(m map[int]int) []int {
		keys := make([]int, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		out := make([]int, 0, len(keys)*3)
		for _, k := range keys {
			c := m[k]
			lbl, ok := label[c]
			if !ok {
				lbl = next
				label[c] = lbl
				next++
			}
			out = append(out, k, lbl, o.deg[k])
		}
		return out
	}
	b := bShape(o.comp)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *FrontierDegreeSpecifiedSpec) GetChild(_ context.Context, state ddspec.State, level int, take bool) (ddspec.Child, error) {
	st := state.(*fdsState).Clone().(*fdsState)

	for _, v := range s.fm.Entering(level) {
		id := st.nextCompID
		st.nextCompID++
		st.comp[v] = id
		st.deg[v] = 0
	}

	e := s.graph.Edge(level)
	if take {
		cu, cv := st.comp[e.U], st.comp[e.V]
		if cu == cv {
			return ddspec.RejectChild(), nil
		}
		survivor, loser := cu, cv
		if loser < survivor {
			survivor, loser = loser, survivor
		}
		for v, c := range st.comp {
			if c == loser {
				st.comp[v] = survivor
			}
		}
		st.deg[e.U]++
		st.deg[e.V]++
	}

	for _, v := range s.fm.Leaving(level) {
		d := st.deg[v]
		if d >= len(s.degRanges) {
			return ddspec.RejectChild(), nil
		}
		st.degCount[d]++
		if s.degRanges[d].Max != NoLimit && st.degCount[d] > s.degRanges[d].Max {
			return ddspec.RejectChild(), nil
		}
		c := st.comp[v]
		delete(st.comp, v)
		delete(st.deg, v)
		stillOpen := false
		for _, cc := range st.comp {
			if cc == c {
				stillOpen = true
				break
			}
		}
		if !stillOpen && d > 0 {
			st.closedCount++
			if st.closedCount > 1 {
				return ddspec.RejectChild(), nil // more than one nontrivial component
			}
		}
	}

	return ddspec.NextChild(st), nil
}

func (s *FrontierDegreeSpecifiedSpec) IsValid(state ddspec.State) bool {
	st := state.(*fdsState)
	if st.closedCount != 1 {
		return false
	}
	for d, rng := range s.degRanges {
		if st.degCount[d] < rng.Min {
			return false
		}
	}
	return true
}
