package zdd

// Singleton builds the handle for the family containing exactly one
// member: the set of variable indices in members, out of a universe of n
// variables. Used throughout the reconfiguration engine to turn a start
// or goal configuration into a ZDD it can intersect and compare against
// frontiers.
func (k *Kernel) Singleton(members []int, n int) (Handle, error) {
	present := make(map[int]bool, len(members))
	for _, m := range members {
		present[m] = true
	}
	h := Top
	for level := 1; level <= n; level++ {
		if present[level] {
			var err error
			h, err = k.Getz(level, Bot, h)
			if err != nil {
				return Bot, err
			}
		}
	}
	return h, nil
}

// MemberSet extracts the sole member of a singleton-family handle as a
// sorted slice of variable indices. Used to turn a sampled frontier
// member back into concrete output.
func (k *Kernel) MemberSet(h Handle) []int {
	var out []int
	for h != Top && h != Bot {
		out = append(out, k.Level(h))
		h = k.Hi(h)
	}
	return out
}
