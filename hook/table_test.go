package hook

import (
	"testing"

	"github.com/wilhasse/cpualloc-go/mem"
)

// resetGlobal restores the package to its pre-install state between
// tests. Production code has no unregister path.
func resetGlobal() {
	installMu.Lock()
	defer installMu.Unlock()
	installed = false
	global = TableFor(mem.DefaultAllocator)
}

func TestDefaultTableBinding(t *testing.T) {
	resetGlobal()
	tab := Current()
	if !tab.Complete() {
		t.Fatalf("default table incomplete")
	}
	buf := tab.Malloc(32)
	if len(buf) != 32 {
		t.Fatalf("default Malloc len=%d", len(buf))
	}
	tab.Free(buf)
	if Installed() {
		t.Fatalf("default table should not count as installed")
	}
}

func TestTableForForwards(t *testing.T) {
	rec := &recordingAllocator{}
	tab := TableFor(rec)
	_ = tab.Malloc(1024)
	if rec.mallocSize != 1024 {
		t.Fatalf("malloc forwarded %d, want 1024", rec.mallocSize)
	}
	_ = tab.Calloc(3, 7)
	if rec.callocN != 3 || rec.callocSize != 7 {
		t.Fatalf("calloc forwarded %d/%d", rec.callocN, rec.callocSize)
	}
	_ = tab.Realloc([]byte{1}, 99)
	if rec.reallocSize != 99 {
		t.Fatalf("realloc forwarded %d", rec.reallocSize)
	}
	tab.Free(make([]byte, 5))
	if rec.freeLen != 5 {
		t.Fatalf("free forwarded %d", rec.freeLen)
	}
}

func TestInstallRejectsPartialTable(t *testing.T) {
	resetGlobal()
	tab := TableFor(mem.GoAllocator{})
	tab.Realloc = nil
	if err := Install(tab); err != ErrNilSlot {
		t.Fatalf("expected ErrNilSlot, got %v", err)
	}
	if Installed() {
		t.Fatalf("partial install must not take effect")
	}
}

func TestInstallOnce(t *testing.T) {
	resetGlobal()
	rec := &recordingAllocator{}
	tab := TableFor(rec)
	if err := Install(tab); err != nil {
		t.Fatalf("install: %v", err)
	}
	if !Installed() {
		t.Fatalf("expected installed")
	}
	// Identical slots re-install as a no-op.
	if err := Install(tab); err != nil {
		t.Fatalf("idempotent install: %v", err)
	}
	// A different table is rejected.
	other := TableFor(mem.GoAllocator{})
	if err := Install(other); err != ErrInstalled {
		t.Fatalf("expected ErrInstalled, got %v", err)
	}
	// The first table stays active.
	_ = Current().Malloc(256)
	if rec.mallocSize != 256 {
		t.Fatalf("installed table not used: %d", rec.mallocSize)
	}
}

func TestInstalledTableServesExactSizes(t *testing.T) {
	resetGlobal()
	rec := &recordingAllocator{}
	if err := Install(TableFor(rec)); err != nil {
		t.Fatalf("install: %v", err)
	}
	buf := Current().Malloc(1024)
	if rec.mallocSize != 1024 {
		t.Fatalf("allocator saw %d, want 1024", rec.mallocSize)
	}
	if len(buf) != 1024 || &buf[0] != &rec.lastBuf[0] {
		t.Fatalf("caller did not observe the allocator's buffer unmodified")
	}
}

type recordingAllocator struct {
	mallocSize  int
	callocN     int
	callocSize  int
	reallocSize int
	freeLen     int
	lastBuf     []byte
}

func (r *recordingAllocator) Malloc(size int) []byte {
	r.mallocSize = size
	r.lastBuf = make([]byte, size)
	return r.lastBuf
}

func (r *recordingAllocator) Calloc(n, size int) []byte {
	r.callocN, r.callocSize = n, size
	r.lastBuf = make([]byte, n*size)
	return r.lastBuf
}

func (r *recordingAllocator) Realloc(buf []byte, size int) []byte {
	r.reallocSize = size
	r.lastBuf = make([]byte, size)
	copy(r.lastBuf, buf)
	return r.lastBuf
}

func (r *recordingAllocator) Free(buf []byte) {
	r.freeLen = len(buf)
}
