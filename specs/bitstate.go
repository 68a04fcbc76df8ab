package specs

import "github.com/ddreconf/reconf/ddspec"

// bitState is a minimal ddspec.State holding one small integer, reused by
// every spec in this package whose automaton needs only a handful of
// distinct memory values (AdjacentSpec's "was v1 taken" flag,
// VariableConditionSpec's "have we seen one yet" flag, and so on).
type bitState int

func (s bitState) Clone() ddspec.State { return s }
func (s bitState) Hash() uint64        { return uint64(s) }
func (s bitState) Equal(other ddspec.State) bool {
	o, ok := other.(bitState)
	return ok && o == s
}
