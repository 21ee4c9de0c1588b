package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/wilhasse/cpualloc-go/ut"
)

func TestGoAllocatorAlignment(t *testing.T) {
	a := GoAllocator{}
	for _, size := range []int{1, 7, 64, 100, 4096} {
		buf := a.Malloc(size)
		if len(buf) != size || cap(buf) != size {
			t.Fatalf("Malloc(%d): len=%d cap=%d", size, len(buf), cap(buf))
		}
		addr := uintptr(unsafe.Pointer(&buf[0]))
		if !ut.IsAligned(addr, ut.DefaultAlignment) {
			t.Fatalf("Malloc(%d) not %d-aligned: %#x", size, ut.DefaultAlignment, addr)
		}
	}
}

func TestGoAllocatorCalloc(t *testing.T) {
	a := GoAllocator{}
	buf := a.Calloc(3, 8)
	if len(buf) != 24 {
		t.Fatalf("Calloc len=%d", len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("Calloc not zeroed at %d", i)
		}
	}
	if a.Calloc(0, 8) != nil || a.Calloc(8, 0) != nil {
		t.Fatalf("zero-count Calloc should be nil")
	}
}

func TestCallocOverflow(t *testing.T) {
	a := GoAllocator{}
	huge := maxAllocBytes/2 + 1
	if a.Calloc(huge, 4) != nil {
		t.Fatalf("overflowing Calloc product should be nil")
	}
	if a.Calloc(2, huge) != nil {
		t.Fatalf("overflowing Calloc product should be nil")
	}
}

func TestGoAllocatorRealloc(t *testing.T) {
	a := GoAllocator{}
	buf := a.Malloc(4)
	copy(buf, "abcd")
	buf = a.Realloc(buf, 8)
	if len(buf) != 8 || string(buf[:4]) != "abcd" {
		t.Fatalf("Realloc=%q len=%d", buf[:4], len(buf))
	}
	if a.Realloc(buf, 0) != nil {
		t.Fatalf("Realloc to 0 should free")
	}
}

func TestDefaultAllocatorHelpers(t *testing.T) {
	buf := Dup([]byte("data"))
	if string(buf) != "data" {
		t.Fatalf("Dup=%q", buf)
	}
	Free(buf)
	if Dup(nil) != nil {
		t.Fatalf("Dup(nil) should be nil")
	}
	if b := Calloc(2, 2); len(b) != 4 {
		t.Fatalf("Calloc len=%d", len(b))
	}
}

func TestLargeAllocWarning(t *testing.T) {
	oldWarn, oldLimit := WarnFunc, LargeAllocWarnBytes
	defer func() {
		WarnFunc, LargeAllocWarnBytes = oldWarn, oldLimit
	}()
	var warned string
	WarnFunc = func(format string, args ...any) {
		warned = fmt.Sprintf(format, args...)
	}
	LargeAllocWarnBytes = 1 << 10

	buf := Malloc(512)
	Free(buf)
	if warned != "" {
		t.Fatalf("unexpected warning for small alloc: %q", warned)
	}
	buf = Malloc(2048)
	Free(buf)
	if warned == "" {
		t.Fatalf("expected large allocation warning")
	}
}

func TestWarnDisabled(t *testing.T) {
	oldWarn, oldLimit := WarnFunc, LargeAllocWarnBytes
	defer func() {
		WarnFunc, LargeAllocWarnBytes = oldWarn, oldLimit
	}()
	WarnFunc = func(format string, args ...any) {
		t.Fatalf("warning fired with zero threshold")
	}
	LargeAllocWarnBytes = 0
	Free(Malloc(1 << 20))
}

func TestBufferPoolSizes(t *testing.T) {
	p := NewBufferPool(128)
	buf := p.Get()
	if len(buf) != 128 {
		t.Fatalf("Get len=%d", len(buf))
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	if !ut.IsAligned(addr, ut.DefaultAlignment) {
		t.Fatalf("pool buffer not aligned: %#x", addr)
	}
	p.Put(buf)
	p.Put(make([]byte, 16)) // undersized, dropped
	if p.Size() != 128 {
		t.Fatalf("Size=%d", p.Size())
	}
}
