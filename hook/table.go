// Package hook holds the allocation hook table the kernel backend
// draws its internal memory from. The table is an explicit struct of
// four malloc-family function slots; the process-global table is
// written at most once, during api.Init, before any backend call may
// allocate through it.
package hook

import (
	"errors"
	"reflect"
	"sync"

	"github.com/wilhasse/cpualloc-go/mem"
)

// Table is a set of four allocation hook slots.
type Table struct {
	Malloc  func(size int) []byte
	Calloc  func(n, size int) []byte
	Realloc func(buf []byte, size int) []byte
	Free    func(buf []byte)
}

// Complete reports whether all four slots are assigned. Partial tables
// would pair mismatched alloc/free implementations and are rejected.
func (t Table) Complete() bool {
	return t.Malloc != nil && t.Calloc != nil && t.Realloc != nil && t.Free != nil
}

// TableFor builds a table whose slots forward to a.
func TableFor(a mem.Allocator) Table {
	return Table{
		Malloc:  a.Malloc,
		Calloc:  a.Calloc,
		Realloc: a.Realloc,
		Free:    a.Free,
	}
}

var (
	// ErrNilSlot rejects tables with unassigned slots.
	ErrNilSlot = errors.New("hook: table has a nil slot")
	// ErrInstalled rejects a second install of a different table.
	ErrInstalled = errors.New("hook: hooks already installed")
)

var (
	installMu sync.Mutex
	installed bool
	global    = TableFor(mem.DefaultAllocator)
)

// Current returns the active global table. Reads are unsynchronized:
// the single write happens-before any backend use per the Init
// precondition.
func Current() Table {
	return global
}

// Installed reports whether Install has replaced the default table.
func Installed() bool {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// Install writes the global table exactly once. All four slots are
// assigned together or not at all. Re-installing the identical slots
// is an idempotent success; installing a different table after the
// first install fails with ErrInstalled.
func Install(t Table) error {
	if !t.Complete() {
		return ErrNilSlot
	}
	installMu.Lock()
	defer installMu.Unlock()
	if installed {
		if sameSlots(t, global) {
			return nil
		}
		return ErrInstalled
	}
	global = t
	installed = true
	return nil
}

func sameSlots(a, b Table) bool {
	return fnPtr(a.Malloc) == fnPtr(b.Malloc) &&
		fnPtr(a.Calloc) == fnPtr(b.Calloc) &&
		fnPtr(a.Realloc) == fnPtr(b.Realloc) &&
		fnPtr(a.Free) == fnPtr(b.Free)
}

func fnPtr(f any) uintptr {
	return reflect.ValueOf(f).Pointer()
}
