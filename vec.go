// Package vec provides a growable, contiguous sequence container that manages its own storage.
//
// A [Vec] allocates its slots directly from a raw memory allocator, doubles its capacity when it
// runs out of room, and tracks which slots hold live elements by its length alone. Elements that
// implement [Dropper] are notified when the container destroys them.
//
// Containers are not thread-safe. Each instance must have a single owner at a time.
package vec

import (
	"fmt"
	"iter"

	"github.com/teenjuna/vec/internal/rawbuf"
)

// Dropper is implemented by elements that need to release something when they're destroyed.
//
// The container calls Drop only for elements it destroys itself: in [Vec.Drop], [Vec.Reset] and
// [IntoIter.Drop]. Elements moved out by [Vec.Pop], [Vec.Remove], [IntoIter.Next] or
// [IntoIter.NextBack] become the caller's responsibility.
type Dropper interface {
	Drop()
}

// Vec is a growable sequence of T stored in a single contiguous allocation.
//
// An instance can be created only by the [New] function. The zero value is invalid.
type Vec[T any] struct {
	buf      rawbuf.Buf[T]
	len      int
	consumed bool
	valid    bool
}

// New returns an empty Vec. Nothing is allocated until the first element is added.
//
// It panics if T has zero size.
func New[T any]() *Vec[T] {
	return &Vec[T]{
		buf:   rawbuf.New[T](),
		valid: true,
	}
}

// Len returns the number of elements in the vec.
func (v *Vec[T]) Len() int {
	v.check()
	return v.len
}

// Cap returns the number of elements the vec can hold without growing.
func (v *Vec[T]) Cap() int {
	v.check()
	return v.buf.Cap()
}

// IsEmpty reports whether the vec has no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Push appends an item to the end of the vec, growing the storage if it's full.
func (v *Vec[T]) Push(item T) {
	v.check()
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	*v.buf.Slot(v.len) = item
	v.len++
}

// Pop removes the last element and returns it. It returns false if the vec is empty.
func (v *Vec[T]) Pop() (T, bool) {
	v.check()
	if v.len == 0 {
		var zero T
		return zero, false
	}
	v.len--
	return take(v.buf.Slot(v.len)), true
}

// Insert places an item at index, shifting all elements after it to the right.
//
// It panics if index > Len().
func (v *Vec[T]) Insert(index int, item T) {
	v.check()
	if index < 0 || index > v.len {
		panic(fmt.Sprintf("insert index (is %d) should be <= len (is %d)", index, v.len))
	}
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	v.buf.Move(index+1, index, v.len-index)
	*v.buf.Slot(index) = item
	v.len++
}

// Remove removes the element at index and returns it, shifting all elements after it to the
// left.
//
// It panics if index >= Len().
func (v *Vec[T]) Remove(index int) T {
	v.check()
	if index < 0 || index >= v.len {
		panic(fmt.Sprintf("remove index (is %d) should be < len (is %d)", index, v.len))
	}
	item := *v.buf.Slot(index)
	v.len--
	v.buf.Move(index, index+1, v.len-index)
	clearSlot(v.buf.Slot(v.len))
	return item
}

// Slice returns the elements of the vec as a slice sharing its storage. Elements may be read and
// written through it.
//
// The slice is invalidated by any call that grows the vec, such as Push or Insert on a full vec,
// and by Drop, Reset and IntoIter.
func (v *Vec[T]) Slice() []T {
	v.check()
	return v.buf.Slots(0, v.len)
}

// Iter returns a sequence of all elements in the vec. The vec must not be modified while the
// sequence is iterated.
func (v *Vec[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Slice() {
			if !yield(item) {
				return
			}
		}
	}
}

// All returns a sequence of index-element pairs of the vec. The vec must not be modified while
// the sequence is iterated.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range v.Slice() {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Reset destroys all elements, last to first, but keeps the allocated storage.
func (v *Vec[T]) Reset() {
	v.check()
	for {
		item, ok := v.Pop()
		if !ok {
			return
		}
		drop(item)
	}
}

// IntoIter moves the elements of the vec into a consuming iterator.
//
// The vec is consumed: calling any method other than Drop on it afterwards panics, and Drop is a
// no-op. The iterator becomes responsible for the storage.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	v.check()
	it := &IntoIter[T]{
		buf: v.buf.Take(),
		end: v.len,
	}
	v.len = 0
	v.consumed = true
	return it
}

// Drop destroys all elements, last to first, and releases the storage. The vec remains usable
// and empty afterwards.
//
// Calling Drop on a vec consumed by IntoIter does nothing.
func (v *Vec[T]) Drop() {
	if v.consumed {
		return
	}
	v.Reset()
	v.buf.Release()
}

func (v *Vec[T]) check() {
	if v.consumed {
		panic("vec has been consumed")
	}
	if !v.valid {
		panic("vec must be created with vec.New")
	}
}

func take[T any](slot *T) T {
	item := *slot
	clearSlot(slot)
	return item
}

// clearSlot zeroes a slot that no longer holds a live element.
func clearSlot[T any](slot *T) {
	var zero T
	*slot = zero
}

func drop[T any](item T) {
	if d, ok := any(item).(Dropper); ok {
		d.Drop()
	}
}
