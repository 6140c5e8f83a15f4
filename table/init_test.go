package table

import (
	"testing"

	"github.com/named-data/ndn-cxx-sub014/core"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	defer func() {
		core.SetConfig(nil)
		Configure()
	}()

	Configure()
	assert.Equal(t, 1024, CsCapacity())
	assert.Equal(t, "lru", CsReplacementPolicy())
	assert.True(t, csAdmit)
	assert.True(t, csServe)
	assert.Equal(t, 8800, csPoolBlockSize)

	config := core.DefaultConfig()
	config.Tables.ContentStore.Capacity = -5
	config.Tables.ContentStore.ReplacementPolicy = "unknown"
	config.Tables.ContentStore.Admit = false
	config.Tables.ContentStore.PoolBlockSize = 0
	core.SetConfig(config)
	Configure()
	assert.Equal(t, 1024, CsCapacity())
	assert.Equal(t, "lru", CsReplacementPolicy())
	assert.False(t, csAdmit)
	assert.Equal(t, 8800, csPoolBlockSize)

	SetCsCapacity(7)
	assert.Equal(t, 7, CsCapacity())
}
