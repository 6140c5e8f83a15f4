package comparison_test

import (
	"testing"

	"github.com/named-data/ndn-cxx-sub014/utils/comparison"
	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, comparison.Min(1, 2))
	assert.Equal(t, 2, comparison.Max(1, 2))
	assert.Equal(t, "a", comparison.Min("b", "a"))
	assert.Equal(t, uint64(7), comparison.Max(uint64(7), uint64(7)))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, comparison.Compare(1, 2))
	assert.Equal(t, 0, comparison.Compare(2, 2))
	assert.Equal(t, 1, comparison.Compare(uint64(3), uint64(2)))
}
