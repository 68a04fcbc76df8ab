package specs

import (
	"context"

	"github.com/ddreconf/reconf/ddspec"
)

// VariableConditionKind selects the relation VariableConditionSpec checks
// across its tracked variable set.
type VariableConditionKind int

const (
	// AtLeastOne requires at least one of the tracked variables to be
	// taken.
	AtLeastOne VariableConditionKind = iota
	// NotAll is unsupported, matching the original implementation, which
	// never completed this kind either.
	NotAll
)

// VariableConditionSpec constrains a set of variables vs to satisfy kind.
// Used by solutionspace.DominatingSet, where vs is {v} ∪ N(v) for each
// vertex v.
type VariableConditionSpec struct {
	n    int
	vs   map[int]bool
	vmin int
	kind VariableConditionKind
}

// NewVariableConditionSpec builds a spec tracking vs over n variables.
func NewVariableConditionSpec(vs []int, n int, kind VariableConditionKind) *VariableConditionSpec {
	set := make(map[int]bool, len(vs))
	vmin := n + 1
	for _, v := range vs {
		set[v] = true
		if v < vmin {
			vmin = v
		}
	}
	return &VariableConditionSpec{n: n, vs: set, vmin: vmin, kind: kind}
}

func (s *VariableConditionSpec) Variables() int           { return s.n }
func (s *VariableConditionSpec) InitialState() ddspec.State { return bitState(0) }

func (s *VariableConditionSpec) GetChild(_ context.Context, state ddspec.State, level int, take bool) (ddspec.Child, error) {
	if s.kind != AtLeastOne {
		return ddspec.Child{}, errUnsupportedKind
	}
	st := int(state.(bitState))
	if s.vs[level] && take {
		st = 1
	}
	if level == s.vmin && st == 0 {
		return ddspec.RejectChild(), nil
	}
	return ddspec.NextChild(bitState(st)), nil
}

func (s *VariableConditionSpec) IsValid(ddspec.State) bool { return true }
