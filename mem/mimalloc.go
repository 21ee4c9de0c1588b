//go:build mimalloc && cgo

package mem

// #cgo LDFLAGS: -lmimalloc
// #include <mimalloc.h>
import "C"

import "unsafe"

// MiAllocator forwards the malloc family to a system mimalloc. Buffers
// it returns must be freed through the same allocator.
type MiAllocator struct{}

// MiAvailable reports whether the mimalloc binding was compiled in.
func MiAvailable() bool { return true }

// NewMiAllocator returns the mimalloc-backed allocator.
func NewMiAllocator() Allocator { return MiAllocator{} }

func (MiAllocator) Malloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	ptr := C.mi_malloc(C.size_t(size))
	if ptr == nil {
		panic("mem: mi_malloc failed")
	}
	recordAlloc(size)
	return unsafe.Slice((*byte)(ptr), size)
}

func (MiAllocator) Calloc(n, size int) []byte {
	if n <= 0 || size <= 0 {
		return nil
	}
	ptr := C.mi_calloc(C.size_t(n), C.size_t(size))
	if ptr == nil {
		panic("mem: mi_calloc failed")
	}
	recordAlloc(n * size)
	return unsafe.Slice((*byte)(ptr), n*size)
}

func (MiAllocator) Realloc(buf []byte, size int) []byte {
	if size <= 0 {
		MiAllocator{}.Free(buf)
		return nil
	}
	if buf == nil {
		return MiAllocator{}.Malloc(size)
	}
	old := buf[:cap(buf)]
	ptr := C.mi_realloc(unsafe.Pointer(&old[0]), C.size_t(size))
	if ptr == nil {
		panic("mem: mi_realloc failed")
	}
	recordFree(len(buf))
	recordAlloc(size)
	return unsafe.Slice((*byte)(ptr), size)
}

func (MiAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	recordFree(len(buf))
	old := buf[:cap(buf)]
	C.mi_free(unsafe.Pointer(&old[0]))
}

var _ Allocator = MiAllocator{}
