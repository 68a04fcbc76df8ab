package zdd

import (
	"math/rand/v2"
	"sort"

	"github.com/ddreconf/reconf/internal/bigint"
)

// Card returns the number of members of the family rooted at f, as an
// arbitrary-precision count since a ZDD over a few hundred variables can
// represent far more members than fits in a uint64.
func (k *Kernel) Card(f Handle) *bigint.Big {
	memo := make(map[Handle]*bigint.Big)
	return k.cardRec(f, memo)
}

func (k *Kernel) cardRec(f Handle, memo map[Handle]*bigint.Big) *bigint.Big {
	if f == Bot {
		return bigint.Zero()
	}
	if f == Top {
		return bigint.FromInt64(1)
	}
	if c, ok := memo[f]; ok {
		return c
	}
	c := bigint.Add(k.cardRec(k.Lo(f), memo), k.cardRec(k.Hi(f), memo))
	memo[f] = c
	return c
}

// MaxCardinality returns the size of the largest member of the family
// rooted at f, used by --randmax to restrict sampling to maximum sets.
// Mirrors the original's MaxEval bottom-up evaluator.
func (k *Kernel) MaxCardinality(f Handle) int {
	memo := make(map[Handle]int)
	return k.maxCardRec(f, memo)
}

func (k *Kernel) maxCardRec(f Handle, memo map[Handle]int) int {
	if f == Bot {
		return -1 << 30 // represents "no member", never the max of a non-empty union
	}
	if f == Top {
		return 0
	}
	if v, ok := memo[f]; ok {
		return v
	}
	loMax := k.maxCardRec(k.Lo(f), memo)
	hiMax := k.maxCardRec(k.Hi(f), memo) + 1
	v := loMax
	if hiMax > v {
		v = hiMax
	}
	memo[f] = v
	return v
}

// SampleRandom draws one member of the family rooted at f uniformly at
// random, following the classic ZDD sampling algorithm: at each node,
// descend into lo with probability Card(lo)/Card(f), else descend into hi
// and record the variable as present. f must not be Bot.
func (k *Kernel) SampleRandom(f Handle, r *rand.Rand) map[int]bool {
	memo := make(map[Handle]*bigint.Big)
	result := make(map[int]bool)
	for f != Top {
		loCard := k.cardRec(k.Lo(f), memo)
		total := k.cardRec(f, memo)
		pick := bigint.RandBelow(total, r)
		if bigint.Cmp(pick, loCard) < 0 {
			f = k.Lo(f)
		} else {
			result[k.Level(f)] = true
			f = k.Hi(f)
		}
	}
	return result
}

// Enumerate calls visit once per member of the family rooted at f, in
// ascending variable-index order within each member, stopping early if
// visit returns false. Intended for small families only (--enum on a
// ZDD with a huge member count will simply run for a long time, as in
// the original tool).
func (k *Kernel) Enumerate(f Handle, visit func(members []int) bool) {
	var path []int
	var walk func(h Handle) bool
	walk = func(h Handle) bool {
		if h == Bot {
			return true
		}
		if h == Top {
			cp := append([]int(nil), path...)
			sort.Ints(cp)
			return visit(cp)
		}
		if !walk(k.Lo(h)) {
			return false
		}
		path = append(path, k.Level(h))
		ok := walk(k.Hi(h))
		path = path[:len(path)-1]
		return ok
	}
	walk(f)
}
