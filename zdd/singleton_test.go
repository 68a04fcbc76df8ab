package zdd

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonMemberSetRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		members []int
		n       int
	}{
		{"empty", nil, 5},
		{"one element", []int{3}, 5},
		{"several, unsorted input", []int{4, 1, 3}, 5},
		{"every variable", []int{1, 2, 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKernel(32, 2048)
			h, err := k.Singleton(tt.members, tt.n)
			require.NoError(t, err)

			got := k.MemberSet(h)
			want := append([]int(nil), tt.members...)
			sort.Ints(want)
			assert.Equal(t, want, got)
		})
	}
}

func TestSingletonIsMemberOnlyForExactSet(t *testing.T) {
	k := NewKernel(32, 2048)
	h, err := k.Singleton([]int{1, 3}, 4)
	require.NoError(t, err)

	assert.True(t, k.IsMember(h, map[int]bool{1: true, 3: true}))
	assert.False(t, k.IsMember(h, map[int]bool{1: true}))
	assert.False(t, k.IsMember(h, map[int]bool{1: true, 2: true, 3: true}))
}
