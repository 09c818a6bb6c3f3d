package ipc

import "unsafe"

// MaxWorkers is the fixed capacity of the per-worker counter table.
const MaxWorkers = 128

// Counters is the fixed layout of the shared region.
//
// Global is incremented once per critical-section entry by any worker.
// PerWorker[i] is written only by the worker with index i.
type Counters struct {
	Global    int64
	PerWorker [MaxWorkers]int64
}

// RegionSize is the size in bytes of the shared segment.
const RegionSize = int(unsafe.Sizeof(Counters{}))

// Reset zeroes every counter.
func (c *Counters) Reset() {
	*c = Counters{}
}

// Sum returns the sum of the first n per-worker counters.
func (c *Counters) Sum(n int) int64 {
	var sum int64
	for i := 0; i < n && i < MaxWorkers; i++ {
		sum += c.PerWorker[i]
	}
	return sum
}

// Snapshot copies the first n per-worker counters.
func (c *Counters) Snapshot(n int) []int64 {
	if n > MaxWorkers {
		n = MaxWorkers
	}
	out := make([]int64, n)
	copy(out, c.PerWorker[:n])
	return out
}

// countersAt reinterprets an attached segment as Counters.
func countersAt(mem []byte) *Counters {
	if len(mem) < RegionSize {
		return nil
	}
	return (*Counters)(unsafe.Pointer(&mem[0]))
}
