package ddspec

import "hash/maphash"

var stateSeed = maphash.MakeSeed()

// IntState is a ready-to-use State backed by a small slice of integer
// counters, suitable for automata whose entire memory is a handful of
// bounded counts or flags (degree counters, color-used bitmasks stored as
// plain ints, and so on). The concrete specs in package specs define
// their own State types; IntState is used by this package's tests.
type IntState struct {
	Values []int
}

// NewIntState copies values into a fresh IntState.
func NewIntState(values ...int) *IntState {
	v := make([]int, len(values))
	copy(v, values)
	return &IntState{Values: v}
}

func (s *IntState) Clone() State {
	v := make([]int, len(s.Values))
	copy(v, s.Values)
	return &IntState{Values: v}
}

func (s *IntState) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(stateSeed)
	for _, v := range s.Values {
		h.WriteByte(byte(v))
		h.WriteByte(byte(v >> 8))
		h.WriteByte(byte(v >> 16))
		h.WriteByte(byte(v >> 24))
	}
	return h.Sum64()
}

func (s *IntState) Equal(other State) bool {
	o, ok := other.(*IntState)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i, v := range s.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}
