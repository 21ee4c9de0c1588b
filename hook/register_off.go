//go:build !mathkernel || !fastalloc

package hook

// RegisterFastAllocator reports that the fast-allocator registrar was
// not compiled in. The wrapper functions do not exist in this build.
func RegisterFastAllocator() bool {
	return false
}
