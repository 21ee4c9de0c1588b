package mem

import "github.com/wilhasse/cpualloc-go/ut"

const (
	// BlockStartSize is the smallest heap block.
	BlockStartSize = 64
	// BlockStandardSize is the default block size once heaps grow.
	BlockStandardSize = 8192
)

// Heap manages a stack-like allocation arena backed by blocks served
// by an Allocator. It is intended for scratch memory with a clear
// release point, such as kernel workspaces.
type Heap struct {
	alloc       Allocator
	blocks      []*heapBlock
	allocations []int
	totalSize   int
}

type heapBlock struct {
	buf  []byte
	used int
}

// HeapCreate creates a heap backed by the default allocator.
func HeapCreate(size int) *Heap {
	return NewHeap(size, DefaultAllocator)
}

// NewHeap creates a heap whose blocks come from a.
func NewHeap(size int, a Allocator) *Heap {
	if size <= 0 {
		size = BlockStartSize
	}
	if a == nil {
		a = DefaultAllocator
	}
	h := &Heap{alloc: a}
	h.addBlock(size)
	return h
}

// Alloc reserves n bytes from the heap.
func (h *Heap) Alloc(size int) []byte {
	if h == nil || size <= 0 {
		return nil
	}
	if len(h.blocks) == 0 {
		ut.DbgAssertionFailed("heap used after Free")
		return nil
	}
	block := h.blocks[len(h.blocks)-1]
	if size > len(block.buf)-block.used {
		block = h.addBlock(h.nextBlockSize(size))
	}
	start := block.used
	block.used += size
	h.allocations = append(h.allocations, size)
	return block.buf[start:block.used]
}

// AllocZero reserves n bytes and zeroes the result.
func (h *Heap) AllocZero(size int) []byte {
	buf := h.Alloc(size)
	clear(buf)
	return buf
}

// Dup copies data into the heap.
func (h *Heap) Dup(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	buf := h.Alloc(len(data))
	copy(buf, data)
	return buf
}

// GetTop returns the latest allocation if the size matches.
func (h *Heap) GetTop(size int) []byte {
	if h == nil || size <= 0 || len(h.allocations) == 0 {
		return nil
	}
	if h.allocations[len(h.allocations)-1] != size {
		return nil
	}
	block := h.blocks[len(h.blocks)-1]
	start := block.used - size
	if start < 0 {
		return nil
	}
	return block.buf[start:block.used]
}

// FreeTop releases the latest allocation if the size matches.
func (h *Heap) FreeTop(size int) {
	if h == nil || size <= 0 || len(h.allocations) == 0 {
		return
	}
	if h.allocations[len(h.allocations)-1] != size {
		return
	}
	h.allocations = h.allocations[:len(h.allocations)-1]
	block := h.blocks[len(h.blocks)-1]
	if size > block.used {
		return
	}
	block.used -= size
	if block.used == 0 && len(h.blocks) > 1 {
		h.releaseBlock(block)
		h.blocks = h.blocks[:len(h.blocks)-1]
		h.totalSize -= len(block.buf)
	}
}

// Reset clears the heap while keeping the first block.
func (h *Heap) Reset() {
	if h == nil || len(h.blocks) == 0 {
		return
	}
	for i := len(h.blocks) - 1; i > 0; i-- {
		h.releaseBlock(h.blocks[i])
	}
	h.blocks = h.blocks[:1]
	h.blocks[0].used = 0
	h.allocations = h.allocations[:0]
	h.totalSize = len(h.blocks[0].buf)
}

// Free releases all heap blocks back to the allocator.
func (h *Heap) Free() {
	if h == nil {
		return
	}
	for _, block := range h.blocks {
		h.releaseBlock(block)
	}
	h.blocks = nil
	h.allocations = nil
	h.totalSize = 0
}

// Size reports the total size of all heap blocks.
func (h *Heap) Size() int {
	if h == nil {
		return 0
	}
	return h.totalSize
}

func (h *Heap) nextBlockSize(minSize int) int {
	last := h.blocks[len(h.blocks)-1]
	newSize := len(last.buf) * 2
	if newSize > BlockStandardSize {
		newSize = BlockStandardSize
	}
	if newSize < minSize {
		newSize = minSize
	}
	return newSize
}

func (h *Heap) addBlock(size int) *heapBlock {
	block := &heapBlock{buf: h.alloc.Malloc(size)}
	h.blocks = append(h.blocks, block)
	h.totalSize += len(block.buf)
	return block
}

func (h *Heap) releaseBlock(block *heapBlock) {
	if block == nil {
		return
	}
	h.alloc.Free(block.buf)
}
