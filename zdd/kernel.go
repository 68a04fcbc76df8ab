package zdd

import (
	"sync"

	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/pkg/errors"
)

// Kernel owns one arena of hash-consed nodes plus the operation cache the
// set operations (Union/Intersect/Diff) read and write through; the
// reconfiguration operators in package reconfops memoise in a table of
// their own. One Kernel is constructed per reconfiguration run
// and threaded explicitly through every component; nothing here is
// package-level global state, so tests can run independent kernels
// concurrently even though any single Kernel is used single-threaded
// within a run.
type Kernel struct {
	mu sync.Mutex

	nodes   []node
	unique  map[nodeKey]Handle
	free    []Handle
	maxSize int

	opcache *opCache

	gcRuns int
}

// NewKernel allocates a kernel with room for initialSize nodes, growing on
// demand up to maxSize before returning dderr.ErrOutOfMemory.
func NewKernel(initialSize, maxSize int) *Kernel {
	if initialSize < firstRealHandle {
		initialSize = firstRealHandle
	}
	k := &Kernel{
		nodes:   make([]node, firstRealHandle, initialSize),
		unique:  make(map[nodeKey]Handle, initialSize),
		maxSize: maxSize,
		opcache: newOpCache(1 << 16),
	}
	// Terminals carry a permanent reference so GC never reclaims them.
	k.nodes[Bot] = node{level: -1, refcount: 1}
	k.nodes[Top] = node{level: -1, refcount: 1}
	return k
}

// Size returns the number of live (allocated, non-terminal) nodes.
func (k *Kernel) Size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.nodes) - firstRealHandle - len(k.free)
}

// Level returns the decision variable level of h, or -1 for a terminal.
func (k *Kernel) Level(h Handle) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return int(k.nodes[h].level)
}

// Lo and Hi return the two children of h. Calling them on a terminal
// returns Bot.
func (k *Kernel) Lo(h Handle) Handle {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.nodes[h].lo
}

func (k *Kernel) Hi(h Handle) Handle {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.nodes[h].hi
}

// Getz returns the canonical handle for (level, lo, hi), applying
// zero-suppression (a hi-arc into Bot collapses the node away) and
// hash-consing (structurally identical nodes share one handle). This is
// the one path every spec builder and every reconfiguration operator uses
// to create nodes, which is what makes the resulting handles directly
// comparable for equality and safely shareable across operations.
func (k *Kernel) Getz(level int, lo, hi Handle) (Handle, error) {
	if hi == Bot {
		return lo, nil
	}
	key := nodeKey{int32(level), lo, hi}

	k.mu.Lock()
	defer k.mu.Unlock()

	if existing, ok := k.unique[key]; ok {
		return existing, nil
	}

	var id Handle
	if n := len(k.free); n > 0 {
		id = k.free[n-1]
		k.free = k.free[:n-1]
	} else {
		if k.maxSize > 0 && len(k.nodes) >= k.maxSize {
			return Bot, errors.Wrapf(dderr.ErrOutOfMemory, "node table exhausted at %d nodes", len(k.nodes))
		}
		id = Handle(len(k.nodes))
		k.nodes = append(k.nodes, node{})
	}
	k.nodes[id] = node{level: int32(level), lo: lo, hi: hi, allocated: true}
	k.unique[key] = id
	return id, nil
}

// Ref increments h's external reference count, pinning it (and
// transitively anything it reaches) against GC. Every Handle a caller
// intends to keep across a GC-eligible point must be Ref'd; the
// reconfiguration engine's frontier slices hold their own refs for
// exactly this reason.
func (k *Kernel) Ref(h Handle) {
	if h.IsTerminal() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.nodes[h].refcount++
}

// Deref releases a reference previously taken with Ref.
func (k *Kernel) Deref(h Handle) {
	if h.IsTerminal() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.nodes[h].refcount > 0 {
		k.nodes[h].refcount--
	}
}

// GC performs a mark-sweep collection: every node reachable from a node
// with a positive refcount survives, everything else is returned to the
// free list and its unique-table entry is dropped. roots lets the caller
// additionally pin handles that have not been Ref'd (for example a
// frontier slice about to be Ref'd only after this GC pass).
func (k *Kernel) GC(roots ...Handle) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.gcRuns++

	for i := range k.nodes {
		k.nodes[i].marked = false
	}

	var mark func(h Handle)
	mark = func(h Handle) {
		if h.IsTerminal() {
			return
		}
		n := &k.nodes[h]
		if n.marked {
			return
		}
		n.marked = true
		mark(n.lo)
		mark(n.hi)
	}

	for id := Handle(firstRealHandle); int(id) < len(k.nodes); id++ {
		if k.nodes[id].refcount > 0 {
			mark(id)
		}
	}
	for _, h := range roots {
		mark(h)
	}

	k.free = k.free[:0]
	for id := Handle(firstRealHandle); int(id) < len(k.nodes); id++ {
		n := &k.nodes[id]
		if n.marked {
			continue
		}
		// Slots freed by an earlier pass are unallocated; they go back on
		// the rebuilt free list too.
		if n.allocated {
			delete(k.unique, n.key())
			*n = node{}
		}
		k.free = append(k.free, id)
	}
	k.opcache.clear()
}

// GCRuns reports how many GC passes have executed, surfaced by --info.
func (k *Kernel) GCRuns() int { return k.gcRuns }
