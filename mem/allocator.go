package mem

import (
	"unsafe"

	"github.com/wilhasse/cpualloc-go/ut"
)

// Allocator defines the malloc-family contract used by the port.
type Allocator interface {
	// Malloc returns a buffer of size bytes with unspecified contents.
	Malloc(size int) []byte
	// Calloc returns a zeroed buffer of n*size bytes.
	Calloc(n, size int) []byte
	// Realloc resizes buf, preserving the common prefix.
	Realloc(buf []byte, size int) []byte
	// Free releases a buffer obtained from the same allocator.
	Free(buf []byte)
}

// GoAllocator delegates to the Go runtime and keeps Free as a no-op.
// Returned buffers start on a 64-byte boundary.
type GoAllocator struct{}

func (GoAllocator) Malloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	recordAlloc(size)
	return allocAligned(size)
}

func (GoAllocator) Calloc(n, size int) []byte {
	if n <= 0 || size <= 0 || n > maxAllocBytes/size {
		return nil
	}
	total := n * size
	recordAlloc(total)
	// make already zeroes.
	return allocAligned(total)
}

func (GoAllocator) Realloc(buf []byte, size int) []byte {
	if size <= 0 {
		GoAllocator{}.Free(buf)
		return nil
	}
	newBuf := GoAllocator{}.Malloc(size)
	copy(newBuf, buf)
	GoAllocator{}.Free(buf)
	return newBuf
}

func (GoAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	recordFree(len(buf))
}

// DefaultAllocator is the global allocator used unless overridden.
var DefaultAllocator Allocator = GoAllocator{}

// maxAllocBytes bounds a single request; calloc-style products above
// it would overflow int.
const maxAllocBytes = int(^uint(0) >> 1)

// allocAligned returns a size-byte slice starting on a
// ut.DefaultAlignment boundary.
func allocAligned(size int) []byte {
	buf := make([]byte, size+ut.DefaultAlignment)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	shift := 0
	if !ut.IsAligned(addr, ut.DefaultAlignment) {
		shift = ut.DefaultAlignment - int(addr&(ut.DefaultAlignment-1))
	}
	return buf[shift : shift+size : shift+size]
}

// Malloc allocates size bytes from the default allocator.
func Malloc(size int) []byte {
	return DefaultAllocator.Malloc(size)
}

// Calloc allocates n*size zeroed bytes from the default allocator.
func Calloc(n, size int) []byte {
	return DefaultAllocator.Calloc(n, size)
}

// Realloc resizes a buffer via the default allocator.
func Realloc(buf []byte, size int) []byte {
	return DefaultAllocator.Realloc(buf, size)
}

// Free releases a buffer to the default allocator.
func Free(buf []byte) {
	DefaultAllocator.Free(buf)
}

// Dup copies data into a new allocation.
func Dup(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	buf := Malloc(len(data))
	copy(buf, data)
	return buf
}
