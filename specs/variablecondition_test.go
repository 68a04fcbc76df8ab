package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/ddreconf/reconf/zdd"
)

func TestVariableConditionAtLeastOne(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	h, err := ddspec.Build(context.Background(), k, NewVariableConditionSpec([]int{2, 4}, 5, AtLeastOne))
	require.NoError(t, err)

	assert.False(t, k.IsMember(h, map[int]bool{1: true, 3: true, 5: true}), "none of the tracked variables taken must be rejected")
	assert.True(t, k.IsMember(h, map[int]bool{2: true}))
	assert.True(t, k.IsMember(h, map[int]bool{4: true}))
	assert.True(t, k.IsMember(h, map[int]bool{2: true, 4: true}))
}

func TestVariableConditionNotAllIsUnsupported(t *testing.T) {
	k := zdd.NewKernel(64, 4096)
	_, err := ddspec.Build(context.Background(), k, NewVariableConditionSpec([]int{1}, 3, NotAll))
	require.Error(t, err)
	assert.ErrorIs(t, err, dderr.ErrUnsupportedConfiguration)
}
