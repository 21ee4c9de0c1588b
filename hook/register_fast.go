//go:build mathkernel && fastalloc

package hook

import "github.com/wilhasse/cpualloc-go/mem"

// fastTarget is the allocator the wrappers forward to: the real
// mimalloc binding when built in, otherwise the pure-Go fast
// allocator.
var fastTarget mem.Allocator

func resolveFastTarget() mem.Allocator {
	if fastTarget == nil {
		if mi := mem.NewMiAllocator(); mi != nil {
			fastTarget = mi
		} else {
			fastTarget = mem.FastGlobal()
		}
	}
	return fastTarget
}

// The wrappers forward their arguments and results unchanged.

func wrapMalloc(size int) []byte {
	return fastTarget.Malloc(size)
}

func wrapCalloc(n, size int) []byte {
	return fastTarget.Calloc(n, size)
}

func wrapRealloc(buf []byte, size int) []byte {
	return fastTarget.Realloc(buf, size)
}

func wrapFree(buf []byte) {
	fastTarget.Free(buf)
}

// RegisterFastAllocator assigns all four hook slots to the fast
// allocator wrappers. Repeat calls re-assign the same wrappers and
// remain a success; the only failure is a conflicting table having
// been installed first.
func RegisterFastAllocator() bool {
	resolveFastTarget()
	err := Install(Table{
		Malloc:  wrapMalloc,
		Calloc:  wrapCalloc,
		Realloc: wrapRealloc,
		Free:    wrapFree,
	})
	return err == nil
}
