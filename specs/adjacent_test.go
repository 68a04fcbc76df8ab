package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/zdd"
)

func TestAdjacentSpecForbidBothRejectsOnlyThePair(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewAdjacentSpec(1, 2, 3, true))
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true}))
	assert.True(t, k.IsMember(h, map[int]bool{2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{3: true}))
}

func TestAdjacentSpecRequireOneRejectsNeither(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewAdjacentSpec(1, 2, 3, false))
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{3: true}), "neither endpoint taken must be rejected")
	assert.True(t, k.IsMember(h, map[int]bool{1: true}))
	assert.True(t, k.IsMember(h, map[int]bool{2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{1: true, 2: true}))
}

func TestAdjacentSpecOrderIndependent(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	ab, err := ddspec.Build(context.Background(), k, NewAdjacentSpec(2, 5, 5, true))
	require.NoError(t, err)
	ba, err := ddspec.Build(context.Background(), k, NewAdjacentSpec(5, 2, 5, true))
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}
