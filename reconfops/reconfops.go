// Package reconfops implements the three recursive ZDD transforms the
// reconfiguration engine drives its BFS with: Remove, Add, and Swap model
// "take one token away", "place one new token", and "jump one token",
// each defined directly over a family's ZDD representation rather than by
// enumerating members.
package reconfops

import "github.com/ddreconf/reconf/zdd"

type opKind uint8

const (
	opRemove opKind = iota
	opAdd
	opSwap
)

type key struct {
	kind opKind
	f    zdd.Handle
	n    int32
}

// Ops holds the memo tables for Remove/Add/Swap against one kernel. The
// tables are independent of the kernel's own set-operation cache (they key
// on an extra variable-count argument the kernel's Union/Intersect/Diff
// never need) but share its eviction-free-on-GC lifecycle: call Reset
// after every zdd.Kernel.GC, since a GC can recycle the handles these
// memo tables' keys reference.
type Ops struct {
	kernel *zdd.Kernel
	memo   map[key]zdd.Handle
}

// New creates an Ops bound to kernel.
func New(kernel *zdd.Kernel) *Ops {
	return &Ops{kernel: kernel, memo: make(map[key]zdd.Handle)}
}

// Reset clears the memo tables. Call after any zdd.Kernel.GC on the same
// kernel.
func (o *Ops) Reset() { o.memo = make(map[key]zdd.Handle) }

// Remove returns the family {A \ {x} | A ∈ f, x ∈ A}: every member with
// exactly one of its elements taken away.
func (o *Ops) Remove(f zdd.Handle) (zdd.Handle, error) {
	if f == zdd.Bot || f == zdd.Top {
		return zdd.Bot, nil
	}
	k := key{opRemove, f, 0}
	if h, ok := o.memo[k]; ok {
		return h, nil
	}

	v := o.kernel.Level(f)
	lo, hi := o.kernel.Lo(f), o.kernel.Hi(f)

	removedLo, err := o.Remove(lo)
	if err != nil {
		return zdd.Bot, err
	}
	r0, err := o.kernel.Union(removedLo, hi)
	if err != nil {
		return zdd.Bot, err
	}
	r1, err := o.Remove(hi)
	if err != nil {
		return zdd.Bot, err
	}
	h, err := o.kernel.Getz(v, r0, r1)
	if err != nil {
		return zdd.Bot, err
	}
	o.memo[k] = h
	return h, nil
}

// Add returns the family {A ∪ {x} | A ∈ f, x ∉ A, 1 ≤ x ≤ n}: every
// member with exactly one absent element, drawn from 1..n, added.
// Requires every variable already present in f to be ≤ n.
func (o *Ops) Add(f zdd.Handle, n int) (zdd.Handle, error) {
	if f == zdd.Bot {
		return zdd.Bot, nil
	}
	if f == zdd.Top && n == 0 {
		return zdd.Bot, nil
	}
	k := key{opAdd, f, int32(n)}
	if h, ok := o.memo[k]; ok {
		return h, nil
	}

	var h zdd.Handle
	var err error
	if f != zdd.Top && o.kernel.Level(f) == n {
		lo, hi := o.kernel.Lo(f), o.kernel.Hi(f)
		r0, e := o.Add(lo, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		addHi, e := o.Add(hi, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		r1, e := o.kernel.Union(addHi, lo)
		if e != nil {
			return zdd.Bot, e
		}
		h, err = o.kernel.Getz(n, r0, r1)
	} else {
		r0, e := o.Add(f, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		h, err = o.kernel.Getz(n, r0, f)
	}
	if err != nil {
		return zdd.Bot, err
	}
	o.memo[k] = h
	return h, nil
}

// Swap returns the family {(A \ {x}) ∪ {y} | A ∈ f, x ∈ A, y ∉ A,
// 1 ≤ x,y ≤ n, x ≠ y}: every member with one element replaced by another
// drawn from 1..n. Requires every variable already present in f to be ≤ n.
func (o *Ops) Swap(f zdd.Handle, n int) (zdd.Handle, error) {
	if f == zdd.Bot || f == zdd.Top {
		return zdd.Bot, nil
	}
	k := key{opSwap, f, int32(n)}
	if h, ok := o.memo[k]; ok {
		return h, nil
	}

	var h zdd.Handle
	var err error
	if o.kernel.Level(f) == n {
		lo, hi := o.kernel.Lo(f), o.kernel.Hi(f)

		swapLo, e := o.Swap(lo, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		addHi, e := o.Add(hi, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		r0, e := o.kernel.Union(swapLo, addHi)
		if e != nil {
			return zdd.Bot, e
		}

		swapHi, e := o.Swap(hi, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		removeLo, e := o.Remove(lo)
		if e != nil {
			return zdd.Bot, e
		}
		r1, e := o.kernel.Union(swapHi, removeLo)
		if e != nil {
			return zdd.Bot, e
		}

		h, err = o.kernel.Getz(n, r0, r1)
	} else {
		r0, e := o.Swap(f, n-1)
		if e != nil {
			return zdd.Bot, e
		}
		r1, e := o.Remove(f)
		if e != nil {
			return zdd.Bot, e
		}
		h, err = o.kernel.Getz(n, r0, r1)
	}
	if err != nil {
		return zdd.Bot, err
	}
	o.memo[k] = h
	return h, nil
}
