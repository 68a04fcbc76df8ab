package reconf

import (
	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/zdd"
)

// frontierHistory holds the sequence of frontiers produced by a BFS
// search. With disk swap-out disabled every frontier stays Ref'd in
// memory for the lifetime of the search (needed for backtracking).  With
// swap-out enabled (Engine.swap != nil), every 1000 steps everything but
// the two most recent frontiers is written to zdddir and Deref'd, then
// reloaded on demand when backtracking needs it again - mirroring the
// original tool's periodic frontier spill.
type frontierHistory struct {
	engine   *Engine
	resident map[int]zdd.Handle
	length   int
}

func newFrontierHistory(e *Engine) *frontierHistory {
	return &frontierHistory{engine: e, resident: map[int]zdd.Handle{}}
}

func (h *frontierHistory) append(step int, handle zdd.Handle) {
	h.engine.kernel.Ref(handle)
	h.resident[step] = handle
	h.length = step + 1

	if h.engine.swap == nil || step == 0 || step%1000 != 0 {
		return
	}
	for s, hnd := range h.resident {
		if s > step-2 {
			continue
		}
		if err := h.engine.swap.Save(h.engine.kernel, s, hnd); err != nil {
			h.engine.logger.Warn("frontier swap-out failed, keeping in memory")
			continue
		}
		h.engine.kernel.Deref(hnd)
		delete(h.resident, s)
	}
}

func (h *frontierHistory) get(step int) (zdd.Handle, error) {
	if hnd, ok := h.resident[step]; ok {
		return hnd, nil
	}
	if h.engine.swap == nil {
		return zdd.Bot, errors.Errorf("reconf: frontier %d is not resident and disk swap-out is disabled", step)
	}
	hnd, err := h.engine.swap.Load(h.engine.kernel, step)
	if err != nil {
		return zdd.Bot, err
	}
	h.engine.kernel.Ref(hnd)
	h.resident[step] = hnd
	return hnd, nil
}

func (h *frontierHistory) count() int { return h.length }

func (h *frontierHistory) last() (zdd.Handle, error) {
	return h.get(h.length - 1)
}

func (h *frontierHistory) secondToLast() (zdd.Handle, error) {
	if h.length < 2 {
		return zdd.Bot, nil
	}
	return h.get(h.length - 2)
}

// roots returns every resident handle, for GC rooting: handles that have
// already been swapped to disk no longer need protecting in this pass.
func (h *frontierHistory) roots() []zdd.Handle {
	out := make([]zdd.Handle, 0, len(h.resident))
	for _, hnd := range h.resident {
		out = append(out, hnd)
	}
	return out
}
