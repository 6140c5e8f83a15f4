package priority_queue_test

import (
	"testing"

	"github.com/named-data/ndn-cxx-sub014/utils/priority_queue"
	"github.com/stretchr/testify/assert"
)

func TestBasics(t *testing.T) {
	q := priority_queue.New[int, int]()
	assert.Equal(t, 0, q.Len())
	q.Push(1, 1, 0)
	q.Push(2, 3, 0)
	q.Push(3, 2, 0)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.PeekPriority())
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.PeekPriority())
	assert.Equal(t, 3, q.Pop())
	assert.Equal(t, 2, q.Pop())
	assert.Equal(t, 0, q.Len())
}

func TestTieBreak(t *testing.T) {
	q := priority_queue.New[string, uint64]()
	q.Push("c", 5, 3)
	q.Push("a", 5, 1)
	q.Push("b", 5, 2)
	q.Push("z", 1, 9)
	assert.Equal(t, "z", q.Pop())
	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())
	assert.Equal(t, "c", q.Pop())
}

func TestUpdateRemove(t *testing.T) {
	q := priority_queue.New[string, int]()
	a := q.Push("a", 1, 0)
	b := q.Push("b", 2, 0)
	c := q.Push("c", 3, 0)
	assert.Equal(t, "a", q.Peek())

	assert.True(t, q.Update(a, 10))
	assert.Equal(t, "b", q.Peek())
	assert.Equal(t, 10, a.Priority())

	assert.True(t, q.Remove(b))
	assert.False(t, q.Remove(b))
	assert.Equal(t, "c", q.Peek())
	assert.Equal(t, 2, q.Len())

	other := priority_queue.New[string, int]()
	assert.False(t, other.Remove(c))
	assert.False(t, other.Update(c, 0))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Remove(c))
	assert.Equal(t, "c", c.Value())
}
