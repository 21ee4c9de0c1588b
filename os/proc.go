package os

import (
	stdos "os"
	"unsafe"
)

// UseLargePages controls whether large-page allocation is requested.
var UseLargePages bool

// LargePageSize stores the detected large page size.
var LargePageSize uint64

// ProcVarInit resets process helper state.
func ProcVarInit() {
	UseLargePages = false
	LargePageSize = 0
}

// PageSize returns the system page size, defaulting to 4096 when the
// runtime reports zero.
func PageSize() uint64 {
	pageSize := uint64(stdos.Getpagesize())
	if pageSize == 0 {
		pageSize = 4096
	}
	return pageSize
}

// MemAllocLarge allocates a page-aligned buffer and rounds size up to
// a whole number of pages.
func MemAllocLarge(size *uint64) []byte {
	if size == nil || *size == 0 {
		return nil
	}
	pageSize := PageSize()
	if UseLargePages && LargePageSize > pageSize {
		pageSize = LargePageSize
	}
	if rem := *size % pageSize; rem != 0 {
		*size += pageSize - rem
	}
	maxInt := uint64(^uint(0) >> 1)
	if *size > maxInt-pageSize {
		return nil
	}
	// Over-allocate one page so the returned slice can start on a
	// page boundary.
	raw := make([]byte, int(*size+pageSize))
	addr := uintptr(unsafe.Pointer(&raw[0]))
	shift := 0
	if rem := addr % uintptr(pageSize); rem != 0 {
		shift = int(uintptr(pageSize) - rem)
	}
	return raw[shift : shift+int(*size) : shift+int(*size)]
}

// MemFreeLarge releases a buffer allocated with MemAllocLarge.
func MemFreeLarge(_ []byte) {
	// Go GC handles deallocation.
}
