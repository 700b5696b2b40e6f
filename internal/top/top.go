// internal/top/top.go
//
// Bounded, always-sorted collection that keeps only the best K values seen.
// The solver uses it both as its result accumulator and as a pruning oracle:
// once the collection is full, anything that does not beat Worst() can be
// dropped without changing the final answer.
//
// Insertion is a binary search plus a linear shift, so each insert costs
// O(capacity). Capacities are small (tens of results) compared to the size
// of the search tree.

package top

import (
	"cmp"
	"slices"
)

// Top holds at most Cap() values ordered best first. Not safe for concurrent
// use; each search owns its own collector.
type Top[T any] struct {
	vals []T
	cap  int
}

// New creates an empty collector. A capacity <= 0 yields a collector that
// never retains anything.
func New[T any](capacity int) *Top[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Top[T]{vals: make([]T, 0, capacity), cap: capacity}
}

// Len returns the number of retained values.
func (t *Top[T]) Len() int { return len(t.vals) }

// Cap returns the configured capacity.
func (t *Top[T]) Cap() int { return t.cap }

// Full reports whether the collector holds Cap() values.
func (t *Top[T]) Full() bool { return len(t.vals) >= t.cap }

// Worst returns the lowest-ranked retained value. ok is false while there is
// still room, meaning nothing should be pruned yet.
func (t *Top[T]) Worst() (v T, ok bool) {
	if len(t.vals) == 0 || len(t.vals) < t.cap {
		return v, false
	}
	return t.vals[len(t.vals)-1], true
}

// InsertFunc places v at its sorted position according to cmp (negative when
// a ranks before b) and evicts the last value when over capacity. Among equal
// values v lands at the first matching index.
func (t *Top[T]) InsertFunc(v T, cmp func(a, b T) int) {
	if t.cap == 0 {
		return
	}
	i, _ := slices.BinarySearchFunc(t.vals, v, cmp)
	t.add(i, v)
}

// InsertByKey inserts v ordered by key(v) ascending. Negate a score in key to
// keep the highest scores first.
func InsertByKey[T any, K cmp.Ordered](t *Top[T], v T, key func(T) K) {
	t.InsertFunc(v, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
}

// Values hands over the retained values, best first, and leaves the
// collector empty.
func (t *Top[T]) Values() []T {
	out := t.vals
	t.vals = nil
	return out
}

func (t *Top[T]) add(i int, v T) {
	t.vals = slices.Insert(t.vals, i, v)
	if len(t.vals) > t.cap {
		var zero T
		t.vals[len(t.vals)-1] = zero
		t.vals = t.vals[:len(t.vals)-1]
	}
}
