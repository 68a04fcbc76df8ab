// Package bigint wraps math/big for the arbitrary-precision counting and
// uniform sampling that ZDD cardinalities require once a family grows past
// 2^64 members.
package bigint

import (
	"math/big"
	"math/rand/v2"
)

// Big is an arbitrary-precision non-negative integer.
type Big struct {
	v big.Int
}

// Zero returns the value 0.
func Zero() *Big { return &Big{} }

// FromInt64 builds a Big from a non-negative int64.
func FromInt64(n int64) *Big {
	b := &Big{}
	b.v.SetInt64(n)
	return b
}

// Add returns a new Big holding a+b.
func Add(a, b *Big) *Big {
	r := &Big{}
	r.v.Add(&a.v, &b.v)
	return r
}

// Mul returns a new Big holding a*b.
func Mul(a, b *Big) *Big {
	r := &Big{}
	r.v.Mul(&a.v, &b.v)
	return r
}

// Cmp compares a and b, following big.Int.Cmp's convention.
func Cmp(a, b *Big) int { return a.v.Cmp(&b.v) }

// IsZero reports whether the value is 0.
func (b *Big) IsZero() bool { return b.v.Sign() == 0 }

// String renders the decimal representation.
func (b *Big) String() string { return b.v.String() }

// Int64 returns the value truncated to int64; only safe for values known
// to fit, such as loop bounds derived from variable counts.
func (b *Big) Int64() int64 { return b.v.Int64() }

// RandBelow returns a uniformly distributed value in [0, bound), matching
// the sampling step the reconfiguration engine performs when picking a
// representative member from a frontier ZDD. Panics if bound is not
// positive, since the caller is expected to have already special-cased an
// empty family.
func RandBelow(bound *Big, r *rand.Rand) *Big {
	if bound.v.Sign() <= 0 {
		panic("bigint: RandBelow requires a positive bound")
	}
	// Rejection sampling over the smallest byte-aligned range covering
	// bound, to keep the distribution uniform regardless of bound's size.
	byteLen := (bound.v.BitLen() + 7) / 8
	if byteLen == 0 {
		byteLen = 1
	}
	buf := make([]byte, byteLen)
	out := &Big{}
	for {
		for i := range buf {
			buf[i] = byte(r.UintN(256))
		}
		out.v.SetBytes(buf)
		if out.v.Cmp(&bound.v) < 0 {
			return out
		}
	}
}
