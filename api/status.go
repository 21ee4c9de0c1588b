package api

import "github.com/wilhasse/cpualloc-go/mem"

// Status is a snapshot of allocator activity.
type Status struct {
	AllocCount     int64
	FreeCount      int64
	AllocatedBytes int64
	FreedBytes     int64
	LiveBytes      int64
	HooksFast      bool
}

// StatusGet snapshots the global allocator counters.
func StatusGet() Status {
	s := &mem.GlobalStats
	return Status{
		AllocCount:     s.AllocCount.Load(),
		FreeCount:      s.FreeCount.Load(),
		AllocatedBytes: s.AllocatedBytes.Load(),
		FreedBytes:     s.FreedBytes.Load(),
		LiveBytes:      s.Live(),
		HooksFast:      hooksFast.Load(),
	}
}

// StatusLog writes the snapshot through the logging hook.
func StatusLog(stream Stream) {
	st := StatusGet()
	Log(stream, "cpualloc: allocs=%d frees=%d live=%d bytes (fast hooks: %v)\n",
		st.AllocCount, st.FreeCount, st.LiveBytes, st.HooksFast)
}
