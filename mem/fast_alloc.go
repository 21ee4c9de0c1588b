package mem

import (
	"sync"

	stdos "github.com/wilhasse/cpualloc-go/os"
	"github.com/wilhasse/cpualloc-go/ut"
)

// FastMinClass is the smallest pooled size class in bytes.
const FastMinClass = 64

// FastMaxCached bounds the largest pooled size class. Requests above
// it fall through to page-aligned large allocation. Set before the
// first FastGlobal call.
var FastMaxCached = 1 << 20

// FastAllocator is a size-class caching allocator. Buffers up to the
// cached maximum are recycled through per-class pools; larger requests
// use page-aligned allocations.
type FastAllocator struct {
	maxCached int
	minExp    int
	classes   []*BufferPool
}

// NewFastAllocator creates an allocator whose largest pooled class is
// the next power of two >= maxCached.
func NewFastAllocator(maxCached int) *FastAllocator {
	if maxCached < FastMinClass {
		maxCached = FastMinClass
	}
	maxCached = ut.NextPow2(maxCached)
	a := &FastAllocator{
		maxCached: maxCached,
		minExp:    ut.Pow2Exp(FastMinClass),
	}
	for size := FastMinClass; size <= maxCached; size <<= 1 {
		a.classes = append(a.classes, NewBufferPool(size))
	}
	return a
}

var (
	fastOnce   sync.Once
	fastGlobal *FastAllocator
)

// FastGlobal returns the shared fast allocator, constructing it with
// the current FastMaxCached on first use.
func FastGlobal() *FastAllocator {
	fastOnce.Do(func() {
		fastGlobal = NewFastAllocator(FastMaxCached)
	})
	return fastGlobal
}

func (a *FastAllocator) classFor(size int) *BufferPool {
	cls := ut.NextPow2(size)
	if cls < FastMinClass {
		cls = FastMinClass
	}
	if cls > a.maxCached {
		return nil
	}
	return a.classes[ut.Pow2Exp(cls)-a.minExp]
}

func (a *FastAllocator) Malloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	recordAlloc(size)
	if pool := a.classFor(size); pool != nil {
		return pool.Get()[:size]
	}
	large := uint64(size)
	buf := stdos.MemAllocLarge(&large)
	if buf == nil {
		panic("mem: out of memory")
	}
	return buf[:size]
}

func (a *FastAllocator) Calloc(n, size int) []byte {
	if n <= 0 || size <= 0 || n > maxAllocBytes/size {
		return nil
	}
	buf := a.Malloc(n * size)
	// Pooled buffers are recycled and carry old contents.
	clear(buf)
	return buf
}

func (a *FastAllocator) Realloc(buf []byte, size int) []byte {
	if size <= 0 {
		a.Free(buf)
		return nil
	}
	if buf == nil {
		return a.Malloc(size)
	}
	newBuf := a.Malloc(size)
	copy(newBuf, buf)
	a.Free(buf)
	return newBuf
}

func (a *FastAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	recordFree(len(buf))
	c := cap(buf)
	if c >= FastMinClass && c <= a.maxCached && ut.Pow2Exp(c) >= 0 {
		a.classes[ut.Pow2Exp(c)-a.minExp].Put(buf[:c])
		return
	}
	stdos.MemFreeLarge(buf)
}

// MaxCached reports the largest pooled class size.
func (a *FastAllocator) MaxCached() int {
	return a.maxCached
}

var _ Allocator = (*FastAllocator)(nil)
