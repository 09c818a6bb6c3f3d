package ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionSize(t *testing.T) {
	assert.Equal(t, 8*(MaxWorkers+1), RegionSize)
}

func TestCountersSumAndSnapshot(t *testing.T) {
	var c Counters
	c.PerWorker[0] = 3
	c.PerWorker[1] = 4
	c.PerWorker[2] = 5

	assert.Equal(t, int64(7), c.Sum(2))
	assert.Equal(t, int64(12), c.Sum(3))
	assert.Equal(t, []int64{3, 4}, c.Snapshot(2))
	assert.Len(t, c.Snapshot(MaxWorkers+10), MaxWorkers)

	c.Global = 9
	c.Reset()
	assert.Equal(t, int64(0), c.Global)
	assert.Equal(t, int64(0), c.Sum(MaxWorkers))
}

func TestCountersAtShortBuffer(t *testing.T) {
	assert.Nil(t, countersAt(make([]byte, 8)))
	assert.NotNil(t, countersAt(make([]byte, RegionSize)))
}
