package vec_test

import (
	"testing"

	"github.com/teenjuna/vec"
)

// tracker counts how many times each token was dropped.
type tracker struct {
	created int
	drops   map[int]int
}

func newTracker() *tracker {
	return &tracker{drops: make(map[int]int)}
}

func (tr *tracker) token() token {
	t := token{id: tr.created, tracker: tr}
	tr.created++
	return t
}

func (tr *tracker) dropped() int {
	n := 0
	for _, d := range tr.drops {
		n += d
	}
	return n
}

// requireDroppedOnce checks that every created token was dropped exactly once.
func (tr *tracker) requireDroppedOnce(t *testing.T) {
	t.Helper()
	for id := range tr.created {
		if tr.drops[id] != 1 {
			t.Fatalf("token %d dropped %d times", id, tr.drops[id])
		}
	}
	if len(tr.drops) != tr.created {
		t.Fatalf("%d tokens dropped, %d created", len(tr.drops), tr.created)
	}
}

type token struct {
	id      int
	tracker *tracker
}

var _ vec.Dropper = token{}

func (t token) Drop() {
	t.tracker.drops[t.id]++
}

func fromSlice[T any](items []T) *vec.Vec[T] {
	v := vec.New[T]()
	for _, item := range items {
		v.Push(item)
	}
	return v
}

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}
