package specs

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/internal/dderr"
)

// RainbowSpec enforces that every selected edge (or vertex) carries a
// distinct color: no two taken variables may share colors[level]. A color
// of 0 means "uncolored", exempt from the rainbow requirement.
type RainbowSpec struct {
	n      int
	colors []int // 1-based, colors[level]
}

// NewRainbowSpec validates the color list (colors[level] for level
// 1..n, 0 meaning uncolored) and returns the spec.
func NewRainbowSpec(n int, colors []int) (*RainbowSpec, error) {
	for _, c := range colors {
		if c > graphio.MaxColors {
			return nil, errors.Wrapf(dderr.ErrInput, "color %d exceeds the %d-color limit", c, graphio.MaxColors)
		}
	}
	padded := make([]int, n+1)
	copy(padded, colors)
	return &RainbowSpec{n: n, colors: padded}, nil
}

func (s *RainbowSpec) Variables() int { return s.n }

func (s *RainbowSpec) InitialState() ddspec.State {
	return &rainbowState{used: bitset.New(uint(graphio.MaxColors + 1))}
}

type rainbowState struct {
	used *bitset.BitSet
}

func (s *rainbowState) Clone() ddspec.State { return &rainbowState{used: s.used.Clone()} }
func (s *rainbowState) Hash() uint64 {
	words := s.used.Bytes()
	var h uint64 = 1469598103934665603
	for _, w := range words {
		h = (h ^ w) * 1099511628211
	}
	return h
}
func (s *rainbowState) Equal(other ddspec.State) bool {
	o, ok := other.(*rainbowState)
	return ok && s.used.Equal(o.used)
}

func (s *RainbowSpec) GetChild(_ context.Context, state ddspec.State, level int, take bool) (ddspec.Child, error) {
	st := state.(*rainbowState)
	color := s.colors[level]
	if !take || color == 0 {
		return ddspec.NextChild(st), nil
	}
	if st.used.Test(uint(color)) {
		return ddspec.RejectChild(), nil
	}
	next := st.Clone().(*rainbowState)
	next.used.Set(uint(color))
	return ddspec.NextChild(next), nil
}

func (s *RainbowSpec) IsValid(ddspec.State) bool { return true }
