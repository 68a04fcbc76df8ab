package specs

import (
	"context"
	"sort"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
)

// DegreeConstraint restricts a family over the edge universe so that
// every vertex's final degree (count of selected incident edges) falls
// within RangeFor(vertex). Vertices that never appear in any edge are
// untouched. Built directly for Matching (uniform [0,1] range) and
// composed with ForestOrTree's spanning requirement (range [1,∞) on every
// non-root vertex).
type DegreeConstraint struct {
	graph    *graphio.Graph
	fm       *graphio.FrontierManager
	rangeFor func(vertex int) IntRange
}

// NewDegreeConstraint builds a spec requiring every vertex's degree to
// satisfy rangeFor(vertex).
func NewDegreeConstraint(g *graphio.Graph, fm *graphio.FrontierManager, rangeFor func(int) IntRange) *DegreeConstraint {
	return &DegreeConstraint{graph: g, fm: fm, rangeFor: rangeFor}
}

func (s *DegreeConstraint) Variables() int { return s.fm.NumEdges() }

func (s *DegreeConstraint) InitialState() ddspec.State {
	return &degreeState{deg: map[int]int{}}
}

type degreeState struct {
	deg map[int]int
}

func (s *degreeState) Clone() ddspec.State {
	cp := make(map[int]int, len(s.deg))
	for k, v := range s.deg {
		cp[k] = v
	}
	return &degreeState{deg: cp}
}

func (s *degreeState) Hash() uint64 {
	keys := make([]int, 0, len(s.deg))
	for k := range s.deg {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	var h uint64 = 1469598103934665603
	for _, k := range keys {
		h = (h ^ uint64(k)) * 1099511628211
		h = (h ^ uint64(s.deg[k])) * 1099511628211
	}
	return h
}

func (s *degreeState) Equal(other ddspec.State) bool {
	o, ok := other.(*degreeState)
	if !ok || len(s.deg) != len(o.deg) {
		return false
	}
	for k, v := range s.deg {
		if ov, ok := o.deg[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (s *DegreeConstraint) GetChild(_ context.Context, state ddspec.State, level int, take bool) (ddspec.Child, error) {
	st := state.(*degreeState).Clone().(*degreeState)

	for _, v := range s.fm.Entering(level) {
		if _, ok := st.deg[v]; !ok {
			st.deg[v] = 0
		}
	}

	e := s.graph.Edge(level)
	if take {
		st.deg[e.U]++
		st.deg[e.V]++
	}

	for _, v := range s.fm.Leaving(level) {
		if !s.rangeFor(v).Contains(st.deg[v]) {
			return ddspec.RejectChild(), nil
		}
		delete(st.deg, v)
	}

	return ddspec.NextChild(st), nil
}

func (s *DegreeConstraint) IsValid(state ddspec.State) bool {
	return len(state.(*degreeState).deg) == 0
}
