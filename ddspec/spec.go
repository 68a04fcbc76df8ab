// Package ddspec provides the top-down DD-construction framework: given a
// declarative description of a family as a deterministic finite automaton
// over decision-variable levels, Build compiles it into a ZDD
// handle inside a shared zdd.Kernel, deduplicating automaton states along
// the way exactly as tdzdd-style frameworks do.
package ddspec

import (
	"context"

	"github.com/ddreconf/reconf/zdd"
)

// State is one node of a ConstraintSpec's internal automaton. Clone must
// return a value independent of the receiver (GetChild is free to mutate
// a cloned state in place), Hash and Equal must agree with each other so
// States can be deduplicated in a map.
type State interface {
	Clone() State
	Hash() uint64
	Equal(other State) bool
}

// ConstraintSpec describes a family of subsets of {1,...,Variables()} as a
// top-down automaton: GetChild advances state across one level, reporting
// either a successor State or a direct terminal decision when the
// automaton already knows enough to short-circuit.
type ConstraintSpec interface {
	// Variables returns the number of decision variables, numbered
	// 1..Variables() with the automaton visiting them in descending order.
	Variables() int

	// InitialState returns the automaton's state before any variable has
	// been decided.
	InitialState() State

	// GetChild advances state across level by choosing to take (hi-arc)
	// or not take (lo-arc) the variable. It returns the next state, or a
	// terminal decision via AcceptChild / RejectChild.
	GetChild(ctx context.Context, state State, level int, take bool) (Child, error)

	// IsValid is consulted at level 0 (no variables left to decide) to
	// turn the final state into a terminal accept/reject.
	IsValid(state State) bool
}

// Child is GetChild's result: either a successor State to keep
// constructing from, or an immediate terminal.
type Child struct {
	State    State
	Terminal terminalKind
	SkipTo   int // not read by Build, which takes the target from SkipState.SkipTo
}

type terminalKind uint8

const (
	none terminalKind = iota
	reject
	accept
)

// RejectChild short-circuits construction along this arc to the 0
// terminal: the branch cannot lead to any valid member.
func RejectChild() Child { return Child{Terminal: reject} }

// AcceptChild short-circuits construction along this arc to the 1
// terminal, skipping all variables below the current level: the branch is
// already guaranteed to be a valid member regardless of how the remaining
// variables are decided. Not used by every spec; most proceed level by
// level down to IsValid at level 0.
func AcceptChild() Child { return Child{Terminal: accept} }

// NextChild continues construction with the given successor state.
func NextChild(s State) Child { return Child{State: s} }

// SkipState wraps another State to request that construction jump
// directly to level SkipTo, treating every level strictly between the
// current one and SkipTo as "variable absent" without invoking GetChild
// for them. This is the level-skipping optimization frontier-style specs
// rely on to avoid O(variables) work per member when long runs of
// variables are irrelevant to the automaton's current state.
type SkipState struct {
	Inner  State
	SkipTo int
}

func (s *SkipState) Clone() State { return &SkipState{Inner: s.Inner.Clone(), SkipTo: s.SkipTo} }
func (s *SkipState) Hash() uint64 { return s.Inner.Hash() ^ uint64(s.SkipTo)*0x9E3779B97F4A7C15 }
func (s *SkipState) Equal(other State) bool {
	o, ok := other.(*SkipState)
	if !ok {
		return false
	}
	return s.SkipTo == o.SkipTo && s.Inner.Equal(o.Inner)
}

// NewSkipState requests that construction resume at skipTo, bypassing
// every level strictly between the caller's current level and skipTo.
func NewSkipState(inner State, skipTo int) *SkipState {
	return &SkipState{Inner: inner, SkipTo: skipTo}
}
