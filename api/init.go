package api

import (
	"sync"
	"sync/atomic"

	"github.com/wilhasse/cpualloc-go/hook"
	"github.com/wilhasse/cpualloc-go/mem"
)

var (
	// initMu serializes Init and Shutdown. The flags are atomics so
	// queries never take a lock: CfgSet calls IsInited while holding
	// cfgMu, and Init takes cfgMu while holding initMu.
	initMu    sync.Mutex
	inited    atomic.Bool
	hooksFast atomic.Bool
)

// Init performs library startup: it wires the memory subsystem to the
// configured limits and installs the fast-allocator hooks when
// use_fast_allocator is set and the registrar was compiled in.
//
// Init must run before any kernel backend call; no allocation through
// the hook table may precede it. The hook installation is permanent
// for the process lifetime.
func Init() ErrCode {
	initMu.Lock()
	defer initMu.Unlock()
	if inited.Load() {
		return AL_ALREADY_INITED
	}
	cfgMu.RLock()
	haveCfg := cfgVars != nil
	cfgMu.RUnlock()
	if !haveCfg {
		CfgInit()
	}

	var warnBytes, maxCached uint64
	var useFast bool
	CfgGet("large_alloc_warn_bytes", &warnBytes)
	CfgGet("fast_alloc_max_cached", &maxCached)
	CfgGet("use_fast_allocator", &useFast)

	mem.LargeAllocWarnBytes = warnBytes
	mem.FastMaxCached = int(maxCached)
	mem.WarnFunc = func(format string, args ...any) {
		Log(nil, format, args...)
	}

	if useFast {
		if hook.RegisterFastAllocator() {
			hooksFast.Store(true)
			Log(nil, "cpualloc: fast allocator hooks installed\n")
		} else {
			Log(nil, "cpualloc: fast allocator not built in, keeping default hooks\n")
		}
	}

	inited.Store(true)
	return AL_SUCCESS
}

// Shutdown resets library state. Installed allocation hooks stay in
// place: the redirect lasts for the process lifetime.
func Shutdown() ErrCode {
	initMu.Lock()
	defer initMu.Unlock()
	if !inited.Load() {
		return AL_NOT_INITED
	}
	mem.WarnFunc = nil
	inited.Store(false)
	return AL_SUCCESS
}

// IsInited reports whether Init has completed.
func IsInited() bool {
	return inited.Load()
}
