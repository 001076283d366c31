// Package rawbuf manages the storage of a contiguous run of element slots.
//
// A [Buf] knows its base address and how many slots it can hold, but nothing about which of them
// are occupied. Its owner is responsible for that.
package rawbuf

import (
	"log"
	"math"
	"os"
	"reflect"
	"unsafe"

	"github.com/teenjuna/vec/internal/alloc"
)

var (
	allocate = alloc.Allocate
	grow     = alloc.Grow
	release  = alloc.Release

	// abort is called when the allocator can't provide memory. It must not return.
	abort = func(size uintptr, ok bool) {
		if ok {
			log.Printf("memory allocation of %d bytes failed", size)
		} else {
			log.Printf("memory allocation failed: size overflows")
		}
		os.Exit(134)
	}
)

// Buf owns up to Cap contiguous slots of T.
//
// The zero value is an empty buffer with no allocation, but a buffer should be created with [New]
// so that unsupported element types are rejected.
type Buf[T any] struct {
	ptr unsafe.Pointer
	cap int
}

// New returns an empty buffer. It panics if T has zero size.
func New[T any]() Buf[T] {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic("zero-sized element types are not supported")
	}
	return Buf[T]{}
}

// Cap returns the number of slots in the buffer.
func (b *Buf[T]) Cap() int {
	return b.cap
}

// Ptr returns the base address of the buffer, or nil if nothing is allocated.
func (b *Buf[T]) Ptr() unsafe.Pointer {
	return b.ptr
}

// Grow doubles the capacity of the buffer, or allocates a single slot if it's empty.
//
// Existing slots keep their contents but may move to a different address. Grow panics if the
// doubled size can't be represented, and terminates the process if memory can't be allocated.
func (b *Buf[T]) Grow() {
	var (
		newCap int
		ptr    unsafe.Pointer
	)

	if b.cap == 0 {
		newCap = 1
		ptr = allocate(layout[T](newCap))
	} else {
		oldBytes := uintptr(b.cap) * elemSize[T]()
		if oldBytes > math.MaxInt/2 {
			panic("capacity overflow")
		}
		newCap = b.cap * 2
		ptr = grow(b.ptr, layout[T](b.cap), newCap)
	}

	if ptr == nil {
		abort(layout[T](newCap).Size())
		return
	}

	b.ptr = ptr
	b.cap = newCap
}

// Slot returns a pointer to the slot at index i.
//
// The slot may be uninitialized from the owner's point of view. The pointer is invalidated by the
// next call to Grow or Release.
func (b *Buf[T]) Slot(i int) *T {
	if i < 0 || i >= b.cap {
		panic("slot index out of range")
	}
	return (*T)(unsafe.Add(b.ptr, uintptr(i)*elemSize[T]()))
}

// Slots returns the slots [lo, hi) as a slice sharing the buffer's memory.
func (b *Buf[T]) Slots(lo, hi int) []T {
	if lo < 0 || lo > hi || hi > b.cap {
		panic("slot range out of range")
	}
	if b.cap == 0 {
		return nil
	}
	return unsafe.Slice((*T)(b.ptr), b.cap)[lo:hi:hi]
}

// Move copies n slots starting at src to the slots starting at dst. The ranges may overlap.
func (b *Buf[T]) Move(dst, src, n int) {
	if n == 0 {
		return
	}
	copy(b.Slots(dst, dst+n), b.Slots(src, src+n))
}

// Release frees the allocation and leaves the buffer empty. It's a no-op for an empty buffer, so
// the memory is released at most once.
func (b *Buf[T]) Release() {
	if b.cap == 0 {
		return
	}
	release(b.ptr, layout[T](b.cap))
	b.ptr = nil
	b.cap = 0
}

// Take moves the buffer out of b, leaving b empty.
func (b *Buf[T]) Take() Buf[T] {
	taken := *b
	b.ptr = nil
	b.cap = 0
	return taken
}

func layout[T any](n int) alloc.Layout {
	return alloc.ArrayOf(reflect.TypeFor[T](), n)
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
