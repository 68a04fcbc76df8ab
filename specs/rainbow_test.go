package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/ddreconf/reconf/zdd"
)

func TestRainbowSpecRejectsRepeatedColor(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	// colors is indexed by variable (slot 0 unused): variables 1 and 2
	// share color 5, variable 3 is uncolored.
	spec, err := NewRainbowSpec(3, []int{0, 5, 5, 0})
	require.NoError(t, err)
	h, err := ddspec.Build(context.Background(), k, spec)
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true}))
	assert.True(t, k.IsMember(h, map[int]bool{2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true, 3: true}))
}

func TestRainbowSpecUncoloredVariablesAreExempt(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	spec, err := NewRainbowSpec(2, []int{0, 0})
	require.NoError(t, err)
	h, err := ddspec.Build(context.Background(), k, spec)
	require.NoError(t, err)
	assert.True(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
}

func TestNewRainbowSpecRejectsOutOfRangeColor(t *testing.T) {
	_, err := NewRainbowSpec(1, []int{graphio.MaxColors + 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, dderr.ErrInput)
}
