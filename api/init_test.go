package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wilhasse/cpualloc-go/mem"
)

func resetInit() {
	initMu.Lock()
	inited.Store(false)
	hooksFast.Store(false)
	initMu.Unlock()
	CfgShutdown()
}

func TestInitShutdownLifecycle(t *testing.T) {
	resetInit()
	if IsInited() {
		t.Fatalf("expected not inited")
	}
	if err := Init(); err != AL_SUCCESS {
		t.Fatalf("Init: %v", err)
	}
	if !IsInited() {
		t.Fatalf("expected inited")
	}
	if err := Init(); err != AL_ALREADY_INITED {
		t.Fatalf("expected AL_ALREADY_INITED, got %v", err)
	}
	if err := Shutdown(); err != AL_SUCCESS {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := Shutdown(); err != AL_NOT_INITED {
		t.Fatalf("expected AL_NOT_INITED, got %v", err)
	}
}

func TestInitAppliesConfig(t *testing.T) {
	resetInit()
	CfgInit()
	if err := CfgSet("large_alloc_warn_bytes", uint64(1<<20)); err != AL_SUCCESS {
		t.Fatalf("CfgSet: %v", err)
	}
	if err := Init(); err != AL_SUCCESS {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()
	if mem.LargeAllocWarnBytes != 1<<20 {
		t.Fatalf("warn threshold not applied: %d", mem.LargeAllocWarnBytes)
	}
	if mem.WarnFunc == nil {
		t.Fatalf("warn hook not wired")
	}
}

func TestInitWiresWarningToLogger(t *testing.T) {
	resetInit()
	var out bytes.Buffer
	LoggerSet(DefaultLogger, &out)
	defer LoggerSet(DefaultLogger, nil)
	CfgInit()
	CfgSet("large_alloc_warn_bytes", uint64(1<<10))
	if err := Init(); err != AL_SUCCESS {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()
	out.Reset()
	mem.Free(mem.Malloc(4096))
	if !strings.Contains(out.String(), "large allocation") {
		t.Fatalf("expected warning in log, got %q", out.String())
	}
}

func TestConfigReadOnlyAfterStartup(t *testing.T) {
	resetInit()
	CfgInit()
	if err := Init(); err != AL_SUCCESS {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()
	if err := CfgSet("use_fast_allocator", false); err != AL_READONLY {
		t.Fatalf("expected AL_READONLY, got %v", err)
	}
	// Runtime-tunable variables stay writable.
	if err := CfgSet("large_alloc_warn_bytes", uint64(123456)); err != AL_SUCCESS {
		t.Fatalf("CfgSet: %v", err)
	}
}

func TestIsInitedConcurrentWithLifecycle(t *testing.T) {
	resetInit()
	var out bytes.Buffer
	LoggerSet(DefaultLogger, &out)
	defer LoggerSet(DefaultLogger, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = IsInited()
			_ = StatusGet()
		}
	}()
	for i := 0; i < 100; i++ {
		Init()
		CfgSet("large_alloc_warn_bytes", uint64(1<<20))
		Shutdown()
	}
	<-done
	if IsInited() {
		t.Fatalf("expected shut down")
	}
}

func TestStatusCountsActivity(t *testing.T) {
	resetInit()
	mem.GlobalStats.Reset()
	buf := mem.Malloc(100)
	st := StatusGet()
	if st.AllocCount != 1 || st.LiveBytes != 100 {
		t.Fatalf("status=%+v", st)
	}
	mem.Free(buf)
	st = StatusGet()
	if st.LiveBytes != 0 || st.FreeCount != 1 {
		t.Fatalf("status after free=%+v", st)
	}
}

func TestStatusLogWrites(t *testing.T) {
	var out bytes.Buffer
	StatusLog(&out)
	if !strings.Contains(out.String(), "cpualloc:") {
		t.Fatalf("status log missing prefix: %q", out.String())
	}
}
