package solutionspace

import "fmt"

func errUnknownKind(k Kind) error {
	return fmt.Errorf("solutionspace: unknown kind %d", int(k))
}
