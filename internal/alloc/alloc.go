// Package alloc is the raw memory capability used by the buffer manager.
//
// Every region is a typed array allocated on the Go heap, so the garbage collector keeps
// tracking pointers stored inside it. Failures are reported as a nil address and never as a
// panic or an error.
package alloc

import (
	"math"
	"reflect"
	"unsafe"
)

// Layout describes a region of n contiguous elements of a single type.
type Layout struct {
	elem reflect.Type
	n    int
}

// ArrayOf returns the layout of n elements of type elem.
func ArrayOf(elem reflect.Type, n int) Layout {
	return Layout{elem: elem, n: n}
}

// Len returns the number of elements in the layout.
func (l Layout) Len() int {
	return l.n
}

// Size returns the size of the layout in bytes. It returns false if the size overflows.
func (l Layout) Size() (uintptr, bool) {
	if l.n < 0 {
		return 0, false
	}
	size := l.elem.Size()
	if size != 0 && uintptr(l.n) > uintptr(math.MaxInt)/size {
		return 0, false
	}
	return size * uintptr(l.n), true
}

// Align returns the required alignment of the layout.
func (l Layout) Align() uintptr {
	return uintptr(l.elem.Align())
}

// Allocate returns the address of a new zeroed region described by l, or nil on failure.
func Allocate(l Layout) unsafe.Pointer {
	p := allocate(l)
	if p == nil {
		stats.failures.Add(1)
		return nil
	}
	size, _ := l.Size()
	stats.allocations.Add(1)
	stats.liveBytes.Add(int64(size))
	return p
}

// Grow returns the address of a region with room for n elements whose prefix holds the contents
// of the old region at p. The returned address may differ from p, in which case the old region is
// released. On failure it returns nil and leaves the old region untouched.
func Grow(p unsafe.Pointer, old Layout, n int) unsafe.Pointer {
	if n < old.n {
		stats.failures.Add(1)
		return nil
	}

	next := ArrayOf(old.elem, n)
	q := allocate(next)
	if q == nil {
		stats.failures.Add(1)
		return nil
	}

	reflect.Copy(region(q, next), region(p, old))
	clearRegion(p, old)

	oldSize, _ := old.Size()
	newSize, _ := next.Size()
	stats.reallocations.Add(1)
	stats.liveBytes.Add(int64(newSize) - int64(oldSize))

	return q
}

// Release clears the region at p so it no longer keeps anything reachable. The region must not be
// used afterwards.
func Release(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}
	clearRegion(p, l)
	size, _ := l.Size()
	stats.releases.Add(1)
	stats.liveBytes.Add(-int64(size))
}

func allocate(l Layout) (p unsafe.Pointer) {
	if l.n <= 0 {
		return nil
	}
	if _, ok := l.Size(); !ok {
		return nil
	}

	// reflect.ArrayOf panics when the array can't exist in the address space.
	defer func() {
		if recover() != nil {
			p = nil
		}
	}()

	return reflect.New(reflect.ArrayOf(l.n, l.elem)).UnsafePointer()
}

func region(p unsafe.Pointer, l Layout) reflect.Value {
	return reflect.NewAt(reflect.ArrayOf(l.n, l.elem), p).Elem()
}

func clearRegion(p unsafe.Pointer, l Layout) {
	region(p, l).SetZero()
}
