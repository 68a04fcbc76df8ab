package specs

import (
	"context"

	"github.com/ddreconf/reconf/ddspec"
)

// SizeConstraint restricts a family to members whose cardinality falls
// within rng. Used for the TAR (token addition/removal) model, where the
// CLI intersects the solution space with the members of size at least k.
type SizeConstraint struct {
	n   int
	rng IntRange
}

// NewSizeConstraint builds a spec over n variables accepting only members
// whose size is in rng.
func NewSizeConstraint(n int, rng IntRange) *SizeConstraint {
	return &SizeConstraint{n: n, rng: rng}
}

func (s *SizeConstraint) Variables() int           { return s.n }
func (s *SizeConstraint) InitialState() ddspec.State { return bitState(0) }

func (s *SizeConstraint) GetChild(_ context.Context, state ddspec.State, _ int, take bool) (ddspec.Child, error) {
	count := int(state.(bitState))
	if take {
		count++
		if s.rng.Max != NoLimit && count > s.rng.Max {
			return ddspec.RejectChild(), nil
		}
	}
	return ddspec.NextChild(bitState(count)), nil
}

func (s *SizeConstraint) IsValid(state ddspec.State) bool {
	return s.rng.Contains(int(state.(bitState)))
}
