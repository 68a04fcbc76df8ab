package ddspec

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/zdd"
)

// capSpec accepts exactly those subsets of {1,...,n} with at most max
// elements taken, a minimal ConstraintSpec standing in for the ones in
// package specs so this package's tests don't depend on it.
type capSpec struct {
	n, max int
}

func (s *capSpec) Variables() int           { return s.n }
func (s *capSpec) InitialState() State      { return NewIntState(0) }
func (s *capSpec) GetChild(_ context.Context, state State, _ int, take bool) (Child, error) {
	st := state.(*IntState)
	next := st.Clone().(*IntState)
	if take {
		next.Values[0]++
		if next.Values[0] > s.max {
			return RejectChild(), nil
		}
	}
	return NextChild(next), nil
}
func (s *capSpec) IsValid(State) bool { return true }

func enumerateAll(k *zdd.Kernel, h zdd.Handle) [][]int {
	var out [][]int
	k.Enumerate(h, func(m []int) bool {
		out = append(out, append([]int(nil), m...))
		return true
	})
	return out
}

func TestBuildProducesExpectedMembers(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := Build(context.Background(), k, &capSpec{n: 3, max: 1})
	require.NoError(t, err)

	got := enumerateAll(k, h)
	want := [][]int{{}, {1}, {2}, {3}}
	assert.ElementsMatch(t, want, got)
}

func TestBuildRejectsOverCap(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := Build(context.Background(), k, &capSpec{n: 2, max: 1})
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true}))
}

func TestBuildDedupesEquivalentStates(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	// With max >= n no branch is rejected, so the ZDD holds the full power
	// set: 2^n members. Equal counter states reached along different paths
	// share one handle, and every count compiles to the same sub-diagram,
	// so only one node per level is created.
	n := 5
	h, err := Build(context.Background(), k, &capSpec{n: n, max: n})
	require.NoError(t, err)
	assert.Equal(t, "32", k.Card(h).String())
	assert.Equal(t, n, k.Size())
}

func TestSkipStateJumpsLevels(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := Build(context.Background(), k, &skippingSpec{n: 5})
	require.NoError(t, err)

	got := enumerateAll(k, h)
	sort.Slice(got, func(i, j int) bool { return len(got[i]) < len(got[j]) })
	// skippingSpec requests a jump from level 5 straight to level 1,
	// treating levels 2-4 as always absent: only variables 1 and 5 are
	// ever free, so exactly four members exist.
	want := [][]int{{}, {1}, {5}, {1, 5}}
	assert.ElementsMatch(t, want, got)
	assert.Equal(t, "4", k.Card(h).String())
}

// skippingSpec only cares about variables 1 and n and skips straight past
// everything in between via SkipState, exercising the level-skipping
// optimization.
type skippingSpec struct{ n int }

func (s *skippingSpec) Variables() int      { return s.n }
func (s *skippingSpec) InitialState() State { return NewIntState(0) }
func (s *skippingSpec) GetChild(_ context.Context, state State, level int, take bool) (Child, error) {
	if level == s.n {
		return NextChild(NewSkipState(state, 1)), nil
	}
	return NextChild(state), nil
}
func (s *skippingSpec) IsValid(State) bool { return true }
