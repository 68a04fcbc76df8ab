package zdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCachePutGet(t *testing.T) {
	c := newOpCache(4)
	k := opKey{kind: opUnion, f: 1, g: 2}
	_, ok := c.get(k)
	assert.False(t, ok)

	c.put(k, 3)
	h, ok := c.get(k)
	assert.True(t, ok)
	assert.Equal(t, Handle(3), h)
}

func TestOpCacheClearEvictsEverything(t *testing.T) {
	c := newOpCache(4)
	c.put(opKey{kind: opUnion, f: 1, g: 2}, 9)
	c.clear()
	_, ok := c.get(opKey{kind: opUnion, f: 1, g: 2})
	assert.False(t, ok)
}

func TestOpCacheEvictsAtCapacity(t *testing.T) {
	c := newOpCache(2)
	c.put(opKey{kind: opUnion, f: 1, g: 2}, 10)
	c.put(opKey{kind: opUnion, f: 3, g: 4}, 20)
	c.put(opKey{kind: opUnion, f: 5, g: 6}, 30)
	assert.LessOrEqual(t, len(c.table), 2)
}
