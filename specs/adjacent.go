package specs

import (
	"context"

	"github.com/ddreconf/reconf/ddspec"
)

// AdjacentSpec constrains a single pair of variables (v1, v2): when cond
// is true it forbids both being taken together (the independent-set
// condition for one graph edge); when false it requires at least one of
// them to be taken (the vertex-cover condition for the same edge).
// Intersecting one AdjacentSpec per edge, starting from the full power
// set, is how solutionspace.IndependentSet and solutionspace.VertexCover
// build their families.
type AdjacentSpec struct {
	n          int
	v1, v2     int // v1 = max(v1,v2), v2 = min(v1,v2)
	forbidBoth bool
}

// NewAdjacentSpec builds the spec for the unordered pair {a,b} over n
// total variables.
func NewAdjacentSpec(a, b, n int, forbidBoth bool) *AdjacentSpec {
	v1, v2 := a, b
	if v2 > v1 {
		v1, v2 = v2, v1
	}
	return &AdjacentSpec{n: n, v1: v1, v2: v2, forbidBoth: forbidBoth}
}

func (s *AdjacentSpec) Variables() int          { return s.n }
func (s *AdjacentSpec) InitialState() ddspec.State { return bitState(0) }

func (s *AdjacentSpec) GetChild(_ context.Context, state ddspec.State, level int, take bool) (ddspec.Child, error) {
	st := int(state.(bitState))

	switch level {
	case s.v1:
		if take {
			st = 1
		} else {
			st = 0
		}
	case s.v2:
		if s.forbidBoth {
			if st == 1 && take {
				return ddspec.RejectChild(), nil
			}
		} else {
			if st == 0 && !take {
				return ddspec.RejectChild(), nil
			}
		}
		st = 0
	}
	return ddspec.NextChild(bitState(st)), nil
}

func (s *AdjacentSpec) IsValid(ddspec.State) bool { return true }
