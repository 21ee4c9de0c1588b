// Package kernel is the math-kernel backend. Every internal buffer it
// uses is obtained through the allocation hook table, so redirecting
// the table redirects all of the backend's memory traffic.
package kernel

import (
	"unsafe"

	"github.com/wilhasse/cpualloc-go/hook"
	"github.com/wilhasse/cpualloc-go/mem"
)

// Backend executes kernel operations against one hook table.
type Backend struct {
	hooks     hook.Table
	scratch   *mem.Heap
	workspace []byte
}

// New creates a backend bound to the process-global hook table.
// api.Init must have run first.
func New() *Backend {
	return NewWithTable(hook.Current())
}

// NewWithTable creates a backend bound to an explicit table.
func NewWithTable(t hook.Table) *Backend {
	return &Backend{
		hooks:   t,
		scratch: mem.HeapCreate(mem.BlockStandardSize),
	}
}

// AllocWorkspace obtains size bytes through the hook table's malloc
// slot. The request size is passed through exactly.
func (b *Backend) AllocWorkspace(size int) []byte {
	return b.hooks.Malloc(size)
}

// AllocZeroed obtains n*size zeroed bytes through the calloc slot.
func (b *Backend) AllocZeroed(n, size int) []byte {
	return b.hooks.Calloc(n, size)
}

// ReleaseWorkspace returns a buffer through the free slot.
func (b *Backend) ReleaseWorkspace(buf []byte) {
	b.hooks.Free(buf)
}

// growWorkspace keeps one reusable buffer, grown through the realloc
// slot as calls demand more space.
func (b *Backend) growWorkspace(size int) []byte {
	if cap(b.workspace) < size {
		b.workspace = b.hooks.Realloc(b.workspace, size)
	}
	return b.workspace[:size]
}

// Close releases the backend's retained buffers. The hook table itself
// stays in place.
func (b *Backend) Close() {
	if b.workspace != nil {
		b.hooks.Free(b.workspace)
		b.workspace = nil
	}
	b.scratch.Free()
	b.scratch = nil
}

// floats views an allocator buffer as float32s. Hook-table buffers are
// 64-byte aligned and heap scratch only ever holds float allocations,
// so the view stays 4-aligned.
func floats(buf []byte, n int) []float32 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&buf[0])), n)
}

func floatBytes(f []float32) []byte {
	if len(f) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}

// scratchFloats reserves n float32s from the per-backend heap.
func (b *Backend) scratchFloats(n int) []float32 {
	buf := b.scratch.Alloc(n * 4)
	return floats(buf, n)
}

// releaseScratchFloats rewinds the latest scratchFloats reservation.
func (b *Backend) releaseScratchFloats(f []float32) {
	b.scratch.FreeTop(len(f) * 4)
}
