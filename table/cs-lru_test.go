package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lruOrder lists cached names from least to most recently used.
func lruOrder(c *Cache[int]) []string {
	l := c.policy.(*CsLRU)
	ret := make([]string, 0)
	for ref := l.head; !ref.IsNil(); ref = c.Hook(ref).Next {
		ret = append(ret, c.Name(ref).String())
	}
	return ret
}

func TestCsLRU(t *testing.T) {
	c, err := NewCache[int]("lru", 3)
	require.NoError(t, err)
	assert.Equal(t, "lru", c.PolicyName())

	c.Insert(makeName("/1"), 1)
	c.Insert(makeName("/2"), 2)
	c.Insert(makeName("/3"), 3)
	assert.Equal(t, []string{"/1", "/2", "/3"}, lruOrder(c))

	// Using /1 makes /2 the victim
	_, ok := c.Find(makeName("/1"))
	require.True(t, ok)
	assert.Equal(t, []string{"/2", "/3", "/1"}, lruOrder(c))

	_, ok = c.Insert(makeName("/4"), 4)
	require.True(t, ok)
	_, ok = c.Peek(makeName("/2"))
	assert.False(t, ok)
	assert.Equal(t, []string{"/3", "/1", "/4"}, lruOrder(c))

	// Refreshing counts as a use too
	ref, _ := c.Peek(makeName("/3"))
	assert.True(t, c.Modify(ref, func(v *int) { *v = 33 }))
	assert.Equal(t, []string{"/1", "/4", "/3"}, lruOrder(c))

	c.Insert(makeName("/5"), 5)
	assert.Equal(t, []string{"/4", "/3", "/5"}, lruOrder(c))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.policy.Len())

	// Erasing from the middle and both ends keeps the list linked
	c.EraseName(makeName("/3"))
	assert.Equal(t, []string{"/4", "/5"}, lruOrder(c))
	c.EraseName(makeName("/5"))
	assert.Equal(t, []string{"/4"}, lruOrder(c))
	c.EraseName(makeName("/4"))
	assert.Equal(t, []string{}, lruOrder(c))
	assert.Equal(t, 0, c.policy.Len())
}

func TestCsLRUClear(t *testing.T) {
	c, err := NewCache[int]("lru", 2)
	require.NoError(t, err)
	c.Insert(makeName("/a"), 1)
	c.Insert(makeName("/b"), 2)
	c.Clear()
	assert.Equal(t, 0, c.policy.Len())
	assert.Equal(t, []string{}, lruOrder(c))

	c.Insert(makeName("/c"), 3)
	c.Insert(makeName("/d"), 4)
	c.Insert(makeName("/e"), 5)
	assert.Equal(t, []string{"/d", "/e"}, lruOrder(c))
}
