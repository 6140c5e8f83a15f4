package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csFIFO is a policy that ignores accesses and keeps insertion order.
type csFIFO struct {
	*CsLRU
}

func (f csFIFO) String() string { return "fifo" }
func (f csFIFO) Lookup(EntryRef) {}
func (f csFIFO) Update(EntryRef) {}

func TestBuiltinPolicies(t *testing.T) {
	assert.Subset(t, PolicyNames(), []string{"lfu", "lru", "none", "random"})
	for _, name := range []string{"none", "lru", "lfu", "random"} {
		factory, ok := LookupPolicy(name)
		require.True(t, ok)
		c, err := NewCacheWithPolicy[int](factory, 1)
		require.NoError(t, err)
		assert.Equal(t, name, c.PolicyName())
	}
	_, ok := LookupPolicy("mru")
	assert.False(t, ok)
}

func TestRegisterPolicy(t *testing.T) {
	RegisterPolicy("fifo", func(owner PolicyOwner) ReplacementPolicy {
		return csFIFO{NewCsLRU(owner)}
	})
	RegisterPolicy("broken", nil)
	_, ok := LookupPolicy("broken")
	assert.False(t, ok)
	assert.Contains(t, PolicyNames(), "fifo")

	c, err := NewCache[int]("fifo", 2)
	require.NoError(t, err)
	assert.Equal(t, "Cache(fifo)", c.String())
	c.Insert(makeName("/a"), 1)
	c.Insert(makeName("/b"), 2)
	c.Find(makeName("/a"))
	c.Insert(makeName("/c"), 3)
	_, ok = c.Peek(makeName("/a"))
	assert.False(t, ok)
	_, ok = c.Peek(makeName("/b"))
	assert.True(t, ok)
}
