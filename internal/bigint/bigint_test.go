package bigint

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmp(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int64
		wantCmp int
	}{
		{"equal", 5, 5, 0},
		{"less", 2, 7, -1},
		{"greater", 9, 1, 1},
		{"zero vs zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FromInt64(tt.a), FromInt64(tt.b)
			assert.Equal(t, tt.wantCmp, Cmp(a, b))
		})
	}
}

func TestAddAccumulates(t *testing.T) {
	sum := Zero()
	for i := int64(1); i <= 10; i++ {
		sum = Add(sum, FromInt64(i))
	}
	assert.Equal(t, "55", sum.String())
}

func TestMul(t *testing.T) {
	got := Mul(FromInt64(6), FromInt64(7))
	assert.Equal(t, "42", got.String())
}

func TestIsZero(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.False(t, FromInt64(1).IsZero())
}

func TestInt64RoundTrip(t *testing.T) {
	b := FromInt64(123456)
	assert.Equal(t, int64(123456), b.Int64())
}

func TestRandBelowStaysInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	bound := FromInt64(17)
	for i := 0; i < 200; i++ {
		got := RandBelow(bound, r)
		require.True(t, Cmp(got, bound) < 0)
		require.True(t, Cmp(got, Zero()) >= 0)
	}
}

func TestRandBelowPanicsOnNonPositiveBound(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	assert.Panics(t, func() { RandBelow(Zero(), r) })
}
