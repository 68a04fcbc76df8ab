package ddspec

import (
	"context"

	"github.com/ddreconf/reconf/zdd"
)

// stateCache deduplicates automaton states within one level: two
// equal states seen while constructing the same level compile to the
// same ZDD handle, which is what keeps the result's size proportional to
// the automaton's state-space width rather than to the number of members.
type stateCache struct {
	buckets map[int]map[uint64][]stateEntry
}

type stateEntry struct {
	state  State
	handle zdd.Handle
}

func newStateCache() *stateCache {
	return &stateCache{buckets: make(map[int]map[uint64][]stateEntry)}
}

func (c *stateCache) lookup(level int, s State) (zdd.Handle, bool) {
	byHash, ok := c.buckets[level]
	if !ok {
		return 0, false
	}
	for _, e := range byHash[s.Hash()] {
		if e.state.Equal(s) {
			return e.handle, true
		}
	}
	return 0, false
}

func (c *stateCache) store(level int, s State, h zdd.Handle) {
	byHash, ok := c.buckets[level]
	if !ok {
		byHash = make(map[uint64][]stateEntry)
		c.buckets[level] = byHash
	}
	key := s.Hash()
	byHash[key] = append(byHash[key], stateEntry{state: s, handle: h})
}

// Build compiles spec into a ZDD handle inside kernel, level by level from
// Variables() down to 0.
func Build(ctx context.Context, kernel *zdd.Kernel, spec ConstraintSpec) (zdd.Handle, error) {
	b := &builder{ctx: ctx, kernel: kernel, spec: spec, cache: newStateCache()}
	return b.build(spec.Variables(), spec.InitialState())
}

type builder struct {
	ctx    context.Context
	kernel *zdd.Kernel
	spec   ConstraintSpec
	cache  *stateCache
}

func (b *builder) build(level int, state State) (zdd.Handle, error) {
	if sk, ok := state.(*SkipState); ok {
		return b.build(sk.SkipTo, sk.Inner)
	}

	if err := b.ctx.Err(); err != nil {
		return zdd.Bot, err
	}

	if level == 0 {
		if b.spec.IsValid(state) {
			return zdd.Top, nil
		}
		return zdd.Bot, nil
	}

	if h, ok := b.cache.lookup(level, state); ok {
		return h, nil
	}

	lo, err := b.resolveArc(level, state, false)
	if err != nil {
		return zdd.Bot, err
	}
	hi, err := b.resolveArc(level, state, true)
	if err != nil {
		return zdd.Bot, err
	}

	h, err := b.kernel.Getz(level, lo, hi)
	if err != nil {
		return zdd.Bot, err
	}
	b.cache.store(level, state, h)
	return h, nil
}

func (b *builder) resolveArc(level int, state State, take bool) (zdd.Handle, error) {
	child, err := b.spec.GetChild(b.ctx, state, level, take)
	if err != nil {
		return zdd.Bot, err
	}
	switch child.Terminal {
	case reject:
		return zdd.Bot, nil
	case accept:
		return zdd.Top, nil
	default:
		return b.build(level-1, child.State)
	}
}
