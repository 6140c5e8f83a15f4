package table

import (
	"testing"
	"time"

	"github.com/named-data/ndn-cxx-sub014/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStoreInsertFind(t *testing.T) {
	cs, err := NewContentStore(4, "lru")
	require.NoError(t, err)
	defer cs.Close()
	assert.Equal(t, 4, cs.Capacity())
	assert.Equal(t, "lru", cs.PolicyName())

	wire := []byte{0x06, 0x03, 0x07, 0x01, 0x00}
	cs.InsertData(makeName("/a/b/v=1"), wire, time.Hour)
	assert.Equal(t, 1, cs.Len())
	assert.Equal(t, 1, cs.BlocksInUse())

	// The wire is copied
	wire[0] = 0xff
	entry := cs.FindMatchingData(makeName("/a/b/v=1"), false, false)
	require.NotNil(t, entry)
	assert.Equal(t, byte(0x06), entry.Wire()[0])
	assert.Equal(t, 5, len(entry.Wire()))
	assert.Equal(t, "/a/b/v=1", entry.Name().String())
	assert.True(t, entry.StaleTime().After(time.Now()))

	assert.Nil(t, cs.FindMatchingData(makeName("/a/b"), false, false))
	entry = cs.FindMatchingData(makeName("/a/b"), true, false)
	require.NotNil(t, entry)
	assert.Equal(t, "/a/b/v=1", entry.Name().String())
	assert.Nil(t, cs.FindMatchingData(makeName("/x"), true, false))
}

func TestContentStoreFreshness(t *testing.T) {
	cs, err := NewContentStore(4, "lru")
	require.NoError(t, err)
	defer cs.Close()

	cs.InsertData(makeName("/a/s"), []byte{1}, 0)
	cs.InsertData(makeName("/a/z/fresh"), []byte{2}, time.Hour)

	assert.NotNil(t, cs.FindMatchingData(makeName("/a/s"), false, false))
	assert.Nil(t, cs.FindMatchingData(makeName("/a/s"), false, true))

	// The stale entry comes first in name order but is skipped
	entry := cs.FindMatchingData(makeName("/a"), true, true)
	require.NotNil(t, entry)
	assert.Equal(t, "/a/z/fresh", entry.Name().String())
	entry = cs.FindMatchingData(makeName("/a"), true, false)
	require.NotNil(t, entry)
	assert.Equal(t, "/a/s", entry.Name().String())

	// Refreshing in place makes it fresh
	cs.InsertData(makeName("/a/s"), []byte{3, 4}, time.Hour)
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, 2, cs.BlocksInUse())
	entry = cs.FindMatchingData(makeName("/a/s"), false, true)
	require.NotNil(t, entry)
	assert.Equal(t, []byte{3, 4}, entry.Wire())
}

func TestContentStoreEvictionReturnsBlocks(t *testing.T) {
	cs, err := NewContentStore(2, "lru")
	require.NoError(t, err)
	defer cs.Close()

	for _, s := range []string{"/1", "/2", "/3", "/4", "/5"} {
		cs.InsertData(makeName(s), []byte(s), time.Hour)
		assert.LessOrEqual(t, cs.BlocksInUse(), 2)
	}
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, 2, cs.BlocksInUse())
	assert.Equal(t, uint64(3), cs.Stats().Evictions)
	assert.Nil(t, cs.FindMatchingData(makeName("/1"), false, false))
	assert.NotNil(t, cs.FindMatchingData(makeName("/5"), false, false))

	assert.True(t, cs.Erase(makeName("/5")))
	assert.False(t, cs.Erase(makeName("/5")))
	assert.Equal(t, 1, cs.BlocksInUse())

	cs.InsertData(makeName("/p/1"), []byte{1}, time.Hour)
	cs.InsertData(makeName("/p/2"), []byte{2}, time.Hour)
	assert.Equal(t, 2, cs.ErasePrefix(makeName("/p")))
	assert.Equal(t, 0, cs.BlocksInUse())
	assert.Equal(t, 0, cs.Len())
}

func TestContentStoreLargeWire(t *testing.T) {
	cs, err := NewContentStore(2, "lfu")
	require.NoError(t, err)

	big := make([]byte, cs.blockSize+1)
	big[len(big)-1] = 7
	cs.InsertData(makeName("/big"), big, time.Hour)
	assert.Equal(t, 0, cs.BlocksInUse())
	entry := cs.FindMatchingData(makeName("/big"), false, false)
	require.NotNil(t, entry)
	assert.Equal(t, big, entry.Wire())

	cs.InsertData(makeName("/small"), []byte{1}, time.Hour)
	assert.Equal(t, 1, cs.BlocksInUse())

	cs.Close()
	assert.Equal(t, 0, cs.BlocksInUse())
	assert.Equal(t, 0, cs.Len())
}

func TestContentStoreAdmitServe(t *testing.T) {
	cs, err := NewContentStore(0, "none")
	require.NoError(t, err)
	defer cs.Close()
	assert.True(t, cs.IsAdmitting())
	assert.True(t, cs.IsServing())

	cs.SetAdmitting(false)
	cs.InsertData(makeName("/a"), []byte{1}, time.Hour)
	assert.Equal(t, 0, cs.Len())

	cs.SetAdmitting(true)
	cs.InsertData(makeName("/a"), []byte{1}, time.Hour)
	assert.Equal(t, 1, cs.Len())
	// Unbounded stores keep wires on the heap
	assert.Equal(t, 0, cs.BlocksInUse())

	cs.SetServing(false)
	assert.Nil(t, cs.FindMatchingData(makeName("/a"), false, false))
	cs.SetServing(true)
	assert.NotNil(t, cs.FindMatchingData(makeName("/a"), false, false))

	cs.SetCapacity(5)
	assert.Equal(t, 5, cs.Capacity())
}

func TestContentStoreFromConfig(t *testing.T) {
	defer func() {
		core.SetConfig(nil)
		Configure()
	}()

	config := core.DefaultConfig()
	config.Tables.ContentStore.Capacity = 3
	config.Tables.ContentStore.ReplacementPolicy = "random"
	config.Tables.ContentStore.Serve = false
	core.SetConfig(config)
	Configure()

	cs, err := NewContentStoreFromConfig()
	require.NoError(t, err)
	defer cs.Close()
	assert.Equal(t, 3, cs.Capacity())
	assert.Equal(t, "random", cs.PolicyName())
	assert.True(t, cs.IsAdmitting())
	assert.False(t, cs.IsServing())

	_, err = NewContentStore(1, "fifo2")
	assert.Error(t, err)
}
