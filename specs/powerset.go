package specs

import (
	"context"

	"github.com/ddreconf/reconf/ddspec"
)

// PowerSetSpec is the unconstrained family of all subsets of
// {1,...,n}: the starting point IndependentSet, Clique, and
// DominatingSet each narrow by intersecting with per-edge or per-vertex
// conditions.
type PowerSetSpec struct{ n int }

// NewPowerSetSpec builds the full power set over n variables.
func NewPowerSetSpec(n int) *PowerSetSpec { return &PowerSetSpec{n: n} }

func (s *PowerSetSpec) Variables() int             { return s.n }
func (s *PowerSetSpec) InitialState() ddspec.State { return bitState(0) }
func (s *PowerSetSpec) GetChild(_ context.Context, state ddspec.State, _ int, _ bool) (ddspec.Child, error) {
	return ddspec.NextChild(state), nil
}
func (s *PowerSetSpec) IsValid(ddspec.State) bool { return true }
