// Package zdd implements a hash-consed, reference-counted Zero-suppressed
// Binary Decision Diagram node arena: the shared substrate every
// solution-space family and every reconfiguration operator in this module
// is built on top of.
package zdd

// Handle identifies a node in a Kernel's arena. The zero value, Bot, is
// the empty-family terminal; Top is the terminal for "no more variables to
// decide, this branch is a member".
type Handle uint32

const (
	// Bot is the 0-terminal: represents the empty family (or "not a
	// member" along a decision path).
	Bot Handle = 0
	// Top is the 1-terminal: represents the family containing exactly
	// the empty set (the end of a member's variable list).
	Top Handle = 1
)

// firstRealHandle is the first node ID available for non-terminal nodes.
const firstRealHandle = 2

// IsTerminal reports whether h is Bot or Top.
func (h Handle) IsTerminal() bool { return h == Bot || h == Top }

// node is one entry in the arena. lo is taken when the variable at Level
// is absent from a member, hi when it is present. A live node (reachable
// from some externally held Handle) never has Hi == Bot: that case is
// zero-suppressed away by Kernel.Getz.
type node struct {
	level     int32
	lo, hi    Handle
	refcount  int32
	marked    bool
	allocated bool
}

type nodeKey struct {
	level  int32
	lo, hi Handle
}

func (n *node) key() nodeKey { return nodeKey{n.level, n.lo, n.hi} }
