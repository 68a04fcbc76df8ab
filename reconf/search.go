package reconf

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/internal/bigint"
	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/ddreconf/reconf/zdd"
)

func sortedKeys(s map[int]bool) []int {
	out := make([]int, 0, len(s))
	for k := range s {
		if s[k] {
			out = append(out, k)
		}
	}
	sort.Ints(out)
	return out
}

func cloneSet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k, v := range s {
		if v {
			out[k] = true
		}
	}
	return out
}

func setsEqual(a, b map[int]bool) bool {
	for k, v := range a {
		if v && !b[k] {
			return false
		}
	}
	for k, v := range b {
		if v && !a[k] {
			return false
		}
	}
	return true
}

func (e *Engine) checkMembership(start, goal map[int]bool) error {
	if !e.kernel.IsMember(e.solutionSpace, start) {
		return dderr.ErrStartNotInSolutionSpace
	}
	if goal != nil && !e.kernel.IsMember(e.solutionSpace, goal) {
		return dderr.ErrGoalNotInSolutionSpace
	}
	return nil
}

// firstMember returns any one member of h, used to pick a concrete witness
// out of a multi-member frontier (FindLongest's final frontier, or a
// bidirectional search's meeting point).
func (e *Engine) firstMember(h zdd.Handle) map[int]bool {
	var found map[int]bool
	e.kernel.Enumerate(h, func(members []int) bool {
		found = make(map[int]bool, len(members))
		for _, m := range members {
			found[m] = true
		}
		return false
	})
	return found
}

// FindSequence searches forward from start for a reconfiguration sequence
// to goal, returning the witness as a slice of member-sets (start first,
// goal last) on success. Grounded on Reconf.hpp::findReconfSeq.
func (e *Engine) FindSequence(ctx context.Context, start, goal map[int]bool) (bool, [][]int, error) {
	if err := e.checkMembership(start, goal); err != nil {
		return false, nil, err
	}
	if setsEqual(start, goal) {
		return true, [][]int{sortedKeys(start)}, nil
	}

	startH, err := e.kernel.Singleton(sortedKeys(start), e.n)
	if err != nil {
		return false, nil, err
	}
	hist := newFrontierHistory(e)
	hist.append(0, startH)

	step := 0
	for {
		last, err := hist.last()
		if err != nil {
			return false, nil, err
		}
		previous, err := hist.secondToLast()
		if err != nil {
			return false, nil, err
		}
		next, err := e.getNextStep(ctx, last, previous)
		if err != nil {
			return false, nil, err
		}
		step++
		hist.append(step, next)
		e.maybeGC(step, hist.roots()...)

		if next == zdd.Bot {
			return false, nil, nil
		}
		if e.kernel.IsMember(next, goal) {
			seq, err := e.backtrack(hist, goal)
			return err == nil, seq, err
		}
	}
}

// FindLongest searches forward from start without a target, continuing
// until no unvisited reachable state remains, and returns a witness for
// the longest walk found (a walk that never immediately reverses its
// previous step, but may otherwise revisit earlier configurations -
// matching findReconfLongestSeq's behavior rather than guaranteeing a
// simple path).
func (e *Engine) FindLongest(ctx context.Context, start map[int]bool) ([][]int, error) {
	if err := e.checkMembership(start, nil); err != nil {
		return nil, err
	}

	startH, err := e.kernel.Singleton(sortedKeys(start), e.n)
	if err != nil {
		return nil, err
	}
	hist := newFrontierHistory(e)
	hist.append(0, startH)

	step := 0
	for {
		last, err := hist.last()
		if err != nil {
			return nil, err
		}
		previous, err := hist.secondToLast()
		if err != nil {
			return nil, err
		}
		next, err := e.getNextStep(ctx, last, previous)
		if err != nil {
			return nil, err
		}
		if next == zdd.Bot {
			break
		}
		step++
		hist.append(step, next)
		e.maybeGC(step, hist.roots()...)
	}

	final, err := hist.last()
	if err != nil {
		return nil, err
	}
	member := e.firstMember(final)
	if member == nil {
		member = start
	}
	return e.backtrack(hist, member)
}

// FindSequenceBidirectional grows a frontier from start and a frontier
// from goal in lockstep, always expanding whichever side currently holds
// fewer members, until the two meet. Grounded on
// Reconf.hpp::findReconfSeqBidirectional.
func (e *Engine) FindSequenceBidirectional(ctx context.Context, start, goal map[int]bool) (bool, [][]int, error) {
	F, B, err := e.runBidirectional(ctx, start, goal)
	if err != nil {
		return false, nil, err
	}
	if F == nil {
		return false, nil, nil
	}
	meet, err := e.bidirectionalMeetPoint(F, B)
	if err != nil {
		return false, nil, err
	}
	return e.stitchBidirectional(F, B, meet)
}

func (e *Engine) bidirectionalMeetPoint(F, B *frontierHistory) (map[int]bool, error) {
	fLast, err := F.last()
	if err != nil {
		return nil, err
	}
	bLast, err := B.last()
	if err != nil {
		return nil, err
	}
	meet, err := e.kernel.Intersect(fLast, bLast)
	if err != nil {
		return nil, err
	}
	return e.firstMember(meet), nil
}

// runBidirectional performs the interleaved growth and returns the full
// forward and backward frontier histories once they meet (or nil, nil if
// the search space is exhausted without meeting).
func (e *Engine) runBidirectional(ctx context.Context, start, goal map[int]bool) (F, B *frontierHistory, err error) {
	if err := e.checkMembership(start, goal); err != nil {
		return nil, nil, err
	}

	startH, err := e.kernel.Singleton(sortedKeys(start), e.n)
	if err != nil {
		return nil, nil, err
	}
	goalH, err := e.kernel.Singleton(sortedKeys(goal), e.n)
	if err != nil {
		return nil, nil, err
	}
	F = newFrontierHistory(e)
	B = newFrontierHistory(e)
	F.append(0, startH)
	B.append(0, goalH)

	if setsEqual(start, goal) {
		return F, B, nil
	}

	step := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		fLast, err := F.last()
		if err != nil {
			return nil, nil, err
		}
		bLast, err := B.last()
		if err != nil {
			return nil, nil, err
		}
		growForward := bigint.Cmp(e.kernel.Card(fLast), e.kernel.Card(bLast)) <= 0

		var next zdd.Handle
		var grown *frontierHistory
		if growForward {
			previous, perr := F.secondToLast()
			if perr != nil {
				return nil, nil, perr
			}
			next, err = e.getNextStep(ctx, fLast, previous)
			grown = F
		} else {
			previous, perr := B.secondToLast()
			if perr != nil {
				return nil, nil, perr
			}
			next, err = e.getNextStep(ctx, bLast, previous)
			grown = B
		}
		if err != nil {
			return nil, nil, err
		}
		if next == zdd.Bot {
			return nil, nil, nil
		}
		step++
		// Each history is indexed by its own length; step counts both
		// sides together and only drives the GC cadence.
		grown.append(grown.count(), next)
		e.maybeGC(step, append(F.roots(), B.roots()...)...)

		fLast, err = F.last()
		if err != nil {
			return nil, nil, err
		}
		bLast, err = B.last()
		if err != nil {
			return nil, nil, err
		}
		meet, err := e.kernel.Intersect(fLast, bLast)
		if err != nil {
			return nil, nil, err
		}
		if meet != zdd.Bot {
			return F, B, nil
		}
	}
}

// stitchBidirectional backtracks the forward half from start to meet and
// the backward half from goal to meet, then splices them into one
// contiguous witness.
func (e *Engine) stitchBidirectional(F, B *frontierHistory, meet map[int]bool) (bool, [][]int, error) {
	forwardSeq, err := e.backtrack(F, meet)
	if err != nil {
		return false, nil, err
	}
	backwardSeq, err := e.backtrack(B, meet)
	if err != nil {
		return false, nil, err
	}
	out := make([][]int, 0, len(forwardSeq)+len(backwardSeq)-1)
	out = append(out, forwardSeq...)
	for i := len(backwardSeq) - 2; i >= 0; i-- {
		out = append(out, backwardSeq[i])
	}
	return true, out, nil
}

// FindShortestWithWidth runs the bidirectional search and additionally
// reports, for every step of the resulting witness, the cardinality of
// the forward/backward frontier intersection at that cut - a diagnostic
// measure of the reconfiguration graph's width, ported from
// Reconf.hpp::findReconfSeqAndWidth.
func (e *Engine) FindShortestWithWidth(ctx context.Context, start, goal map[int]bool) (bool, [][]int, []string, error) {
	F, B, err := e.runBidirectional(ctx, start, goal)
	if err != nil {
		return false, nil, nil, err
	}
	if F == nil {
		return false, nil, nil, nil
	}
	meet, err := e.bidirectionalMeetPoint(F, B)
	if err != nil {
		return false, nil, nil, err
	}
	ok, seq, err := e.stitchBidirectional(F, B, meet)
	if err != nil || !ok {
		return ok, seq, nil, err
	}

	k := F.count() + B.count() - 2
	widths := make([]string, 0, k+1)
	for i := 0; i <= k; i++ {
		fi := zdd.Bot
		if i < F.count() {
			var ferr error
			fi, ferr = F.get(i)
			if ferr != nil {
				return ok, seq, nil, ferr
			}
		}
		j := k - i
		bi := zdd.Bot
		if j < B.count() {
			var berr error
			bi, berr = B.get(j)
			if berr != nil {
				return ok, seq, nil, berr
			}
		}
		w, werr := e.kernel.Intersect(fi, bi)
		if werr != nil {
			return ok, seq, nil, werr
		}
		widths = append(widths, e.kernel.Card(w).String())
	}
	return ok, seq, widths, nil
}

// backtrack reconstructs a concrete member at every frontier index from
// step 0 (the start singleton) up to the index holding goal, walking
// backward from goal and at each step searching for an admissible
// predecessor in the previous frontier. Grounded on Reconf.hpp's
// backtracking pass: for token-jump, candidate predecessors swap one
// element out for one element in; for token-add-remove, a candidate
// predecessor toggles a single element.
func (e *Engine) backtrack(hist *frontierHistory, goal map[int]bool) ([][]int, error) {
	k := hist.count() - 1
	seq := make([]map[int]bool, k+1)
	seq[k] = goal
	cur := goal
	for i := k; i > 0; i-- {
		prevFrontier, err := hist.get(i - 1)
		if err != nil {
			return nil, err
		}
		prev, err := e.backtrackStep(cur, prevFrontier)
		if err != nil {
			return nil, err
		}
		seq[i-1] = prev
		cur = prev
	}
	out := make([][]int, len(seq))
	for i, s := range seq {
		out[i] = sortedKeys(s)
	}
	return out, nil
}

func (e *Engine) backtrackStep(current map[int]bool, frontier zdd.Handle) (map[int]bool, error) {
	switch e.model {
	case TokenJump:
		for _, v := range sortedKeys(current) {
			for w := 1; w <= e.n; w++ {
				if current[w] {
					continue
				}
				candidate := cloneSet(current)
				delete(candidate, v)
				candidate[w] = true
				if e.kernel.IsMember(frontier, candidate) {
					return candidate, nil
				}
			}
		}
	case TokenAddRemove:
		for v := 1; v <= e.n; v++ {
			candidate := cloneSet(current)
			if candidate[v] {
				delete(candidate, v)
			} else {
				candidate[v] = true
			}
			if e.kernel.IsMember(frontier, candidate) {
				return candidate, nil
			}
		}
	}
	return nil, errors.New("reconf: backtrack found no admissible predecessor")
}

// sampleWeighted returns a uniformly random member of h rather than the
// first one Enumerate happens to visit. Nothing in this module calls it;
// cmd/reconf calls Kernel.SampleRandom directly.
func (e *Engine) sampleWeighted(h zdd.Handle, r *rand.Rand) map[int]bool {
	return e.kernel.SampleRandom(h, r)
}
