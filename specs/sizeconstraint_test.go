package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/zdd"
)

func TestSizeConstraintBetween(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewSizeConstraint(4, Between(2, 3)))
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{1: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true, 2: true, 3: true}))
	assert.False(t, k.IsMember(h, map[int]bool{1: true, 2: true, 3: true, 4: true}))
}

func TestSizeConstraintExactly(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewSizeConstraint(3, Exactly(0)))
	require.NoError(t, err)
	assert.Equal(t, "1", k.Card(h).String())
	assert.True(t, k.IsMember(h, map[int]bool{}))
}

func TestSizeConstraintAtLeast(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewSizeConstraint(3, AtLeast(2)))
	require.NoError(t, err)
	assert.Equal(t, "4", k.Card(h).String()) // C(3,2)+C(3,3) = 3+1
}
