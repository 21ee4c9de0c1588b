//go:build !mimalloc || !cgo

package mem

// MiAvailable reports whether the mimalloc binding was compiled in.
func MiAvailable() bool { return false }

// NewMiAllocator returns nil when mimalloc is not built in; callers
// fall back to the pure-Go fast allocator.
func NewMiAllocator() Allocator { return nil }
