// Package specs provides the concrete ddspec.ConstraintSpec
// implementations the solution-space builders compose: adjacency
// conditions, at-least-one-of conditions, rainbow coloring, size bounds,
// per-vertex degree bounds, and the frontier-based connectivity search
// used by every tree/forest/path family.
package specs

import "math"

// IntRange is an inclusive integer range, with Max == NoLimit meaning
// unbounded above. Mirrors the original's IntRange helper used throughout
// DegreeConstraint and FrontierDegreeSpecifiedSpec.
type IntRange struct {
	Min, Max int
}

// NoLimit marks a range as having no upper bound.
const NoLimit = math.MaxInt32

// Exactly returns the single-value range [n, n].
func Exactly(n int) IntRange { return IntRange{n, n} }

// AtLeast returns the range [n, NoLimit].
func AtLeast(n int) IntRange { return IntRange{n, NoLimit} }

// Between returns the range [lo, hi].
func Between(lo, hi int) IntRange { return IntRange{lo, hi} }

// Contains reports whether v falls within the range.
func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }
