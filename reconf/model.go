// Package reconf drives the symbolic BFS search for a reconfiguration
// sequence between two configurations of a solution-space family,
// grounded on the original tool's Reconf class: forward single-direction
// search, bidirectional search, longest-walk search, and the backtracking
// step that turns a frontier sequence into a concrete witness.
package reconf

import (
	"context"

	"go.uber.org/zap"

	"github.com/ddreconf/reconf/reconfops"
	"github.com/ddreconf/reconf/zdd"
)

// Model selects the reconfiguration move the engine explores: TokenJump
// swaps one element for another in a single step; TokenAddRemove treats
// adding and removing an element as separate single steps.
// There is no token-sliding model; the CLI rejects --ts before it
// constructs an Engine.
type Model int

const (
	TokenJump Model = iota
	TokenAddRemove
)

// Engine drives one reconfiguration search over a fixed solution space.
type Engine struct {
	kernel        *zdd.Kernel
	ops           *reconfops.Ops
	solutionSpace zdd.Handle
	n             int
	model         Model
	logger        *zap.Logger
	gc            bool
	swap          *swapStore // nil disables disk swap-out
}

// Config configures an Engine.
type Config struct {
	Kernel        *zdd.Kernel
	SolutionSpace zdd.Handle
	Variables     int
	Model         Model
	Logger        *zap.Logger
	GC            bool
	SwapDir       string // empty disables disk swap-out
}

// New builds an Engine from cfg.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		kernel:        cfg.Kernel,
		ops:           reconfops.New(cfg.Kernel),
		solutionSpace: cfg.SolutionSpace,
		n:             cfg.Variables,
		model:         cfg.Model,
		logger:        logger,
		gc:            cfg.GC,
	}
	if cfg.SwapDir != "" {
		e.swap = newSwapStore(cfg.SwapDir)
	}
	return e
}

// getNextStep computes (ops(current) ∩ S) \ current \ previous, the one
// BFS transition rule shared by every search mode.
func (e *Engine) getNextStep(ctx context.Context, current, previous zdd.Handle) (zdd.Handle, error) {
	if err := ctx.Err(); err != nil {
		return zdd.Bot, err
	}

	var moved zdd.Handle
	var err error
	switch e.model {
	case TokenJump:
		moved, err = e.ops.Swap(current, e.n)
	case TokenAddRemove:
		removed, rerr := e.ops.Remove(current)
		if rerr != nil {
			return zdd.Bot, rerr
		}
		added, aerr := e.ops.Add(current, e.n)
		if aerr != nil {
			return zdd.Bot, aerr
		}
		moved, err = e.kernel.Union(removed, added)
	}
	if err != nil {
		return zdd.Bot, err
	}

	next, err := e.kernel.Intersect(moved, e.solutionSpace)
	if err != nil {
		return zdd.Bot, err
	}
	next, err = e.kernel.Diff(next, current)
	if err != nil {
		return zdd.Bot, err
	}
	if previous != zdd.Bot {
		next, err = e.kernel.Diff(next, previous)
		if err != nil {
			return zdd.Bot, err
		}
	}
	return next, nil
}

// maybeGC runs a GC pass every 1000 steps when e.gc is set, following the
// original tool's periodic-collection cadence, and resets the
// reconfiguration operator memo tables since GC can recycle the handles
// their keys reference.
func (e *Engine) maybeGC(step int, roots ...zdd.Handle) {
	if e.gc && step%1000 == 0 {
		e.kernel.GC(roots...)
		e.ops.Reset()
		e.logger.Info("gc pass", zap.Int("step", step), zap.Int("nodes", e.kernel.Size()))
	}
}
