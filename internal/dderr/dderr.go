// Package dderr defines the error kinds raised across the reconfiguration
// engine and maps each to the process exit code the original tool uses.
package dderr

import "github.com/pkg/errors"

// Sentinel error kinds. Wrap these with errors.Wrapf / errors.WithMessage
// at the construction site so errors.Is still matches while the message
// carries the offending value.
var (
	// ErrInput covers malformed DIMACS input, bad vertex names, and
	// structurally invalid flag combinations caught before any ZDD work
	// begins.
	ErrInput = errors.New("invalid input")

	// ErrStartNotInSolutionSpace is raised when the start configuration
	// does not belong to the solution-space family.
	ErrStartNotInSolutionSpace = errors.New("start configuration is not a member of the solution space")

	// ErrGoalNotInSolutionSpace is raised when the goal configuration does
	// not belong to the solution-space family.
	ErrGoalNotInSolutionSpace = errors.New("goal configuration is not a member of the solution space")

	// ErrUnsupportedConfiguration covers requested behavior that is
	// recognized but intentionally unimplemented, such as token-sliding.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrOutOfMemory is raised when the ZDD kernel cannot grow its node
	// table past its configured ceiling.
	ErrOutOfMemory = errors.New("zdd kernel out of memory")

	// ErrIO covers failures reading or writing frontier swap files.
	ErrIO = errors.New("i/o failure")
)

// ExitCode maps an error produced anywhere in the engine to the process
// exit code the CLI should return, following the original tool's
// convention: 0 success, 1 general/input/unsupported-configuration/
// out-of-memory failure, 2 start not a member, 3 goal not a member, 6
// I/O failure on a frontier swap file.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrStartNotInSolutionSpace):
		return 2
	case errors.Is(err, ErrGoalNotInSolutionSpace):
		return 3
	case errors.Is(err, ErrIO):
		return 6
	default:
		return 1
	}
}
