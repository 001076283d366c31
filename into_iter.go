package vec

import (
	"iter"

	"github.com/teenjuna/vec/internal/rawbuf"
)

// IntoIter is a consuming iterator over the elements of a [Vec].
//
// It owns the storage of the vec it was created from and hands out elements by value from either
// end. Elements in [start, end) have not been yielded yet.
type IntoIter[T any] struct {
	buf   rawbuf.Buf[T]
	start int
	end   int
}

// Next removes the first remaining element and returns it. It returns false once the iterator is
// exhausted.
func (it *IntoIter[T]) Next() (T, bool) {
	if it.start == it.end {
		var zero T
		return zero, false
	}
	item := take(it.buf.Slot(it.start))
	it.start++
	return item, true
}

// NextBack removes the last remaining element and returns it. It returns false once the iterator
// is exhausted.
func (it *IntoIter[T]) NextBack() (T, bool) {
	if it.start == it.end {
		var zero T
		return zero, false
	}
	it.end--
	return take(it.buf.Slot(it.end)), true
}

// Len returns the exact number of remaining elements.
func (it *IntoIter[T]) Len() int {
	return it.end - it.start
}

// Values returns a sequence that takes elements from the front of the iterator. Stopping the
// iteration early leaves the rest of the elements in the iterator.
func (it *IntoIter[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Backward returns a sequence that takes elements from the back of the iterator. Stopping the
// iteration early leaves the rest of the elements in the iterator.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := it.NextBack()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Drop destroys the remaining elements, front to back, and releases the storage. Calling Drop
// more than once is a no-op.
func (it *IntoIter[T]) Drop() {
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		drop(item)
	}
	it.buf.Release()
}
