package mem

import "sync/atomic"

// Stats tracks allocator activity with atomic counters.
type Stats struct {
	AllocatedBytes atomic.Int64
	FreedBytes     atomic.Int64
	AllocCount     atomic.Int64
	FreeCount      atomic.Int64
}

// Live reports bytes currently considered allocated.
func (s *Stats) Live() int64 {
	return s.AllocatedBytes.Load() - s.FreedBytes.Load()
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.AllocatedBytes.Store(0)
	s.FreedBytes.Store(0)
	s.AllocCount.Store(0)
	s.FreeCount.Store(0)
}

// GlobalStats accumulates activity across all allocators in this
// package.
var GlobalStats Stats

// LargeAllocWarnBytes is the single-request size above which WarnFunc
// fires. Zero disables the warning.
var LargeAllocWarnBytes uint64 = 1 << 30

// WarnFunc is the logging hook for oversized allocation warnings. Nil
// disables it.
var WarnFunc func(format string, args ...any)

func recordAlloc(size int) {
	GlobalStats.AllocatedBytes.Add(int64(size))
	GlobalStats.AllocCount.Add(1)
	if WarnFunc != nil && LargeAllocWarnBytes != 0 && uint64(size) >= LargeAllocWarnBytes {
		WarnFunc("cpualloc: large allocation of %d bytes\n", size)
	}
}

func recordFree(size int) {
	GlobalStats.FreedBytes.Add(int64(size))
	GlobalStats.FreeCount.Add(1)
}
