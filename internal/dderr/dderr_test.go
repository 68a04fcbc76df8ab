package dderr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, 0},
		{"start not member", ErrStartNotInSolutionSpace, 2},
		{"wrapped start not member", errors.Wrap(ErrStartNotInSolutionSpace, "context"), 2},
		{"goal not member", ErrGoalNotInSolutionSpace, 3},
		{"io failure", ErrIO, 6},
		{"wrapped io failure", errors.Wrapf(ErrIO, "writing %s", "frontier-000001.cbor"), 6},
		{"input error falls to general failure", ErrInput, 1},
		{"unsupported configuration falls to general failure", ErrUnsupportedConfiguration, 1},
		{"out of memory falls to general failure", ErrOutOfMemory, 1},
		{"unrecognized error falls to general failure", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
