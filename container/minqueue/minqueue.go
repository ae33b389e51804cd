// Package minqueue implements a FIFO with O(1) amortised minimum via a
// monotone index deque (§4.11). elts holds the live values in FIFO
// order; mins holds absolute (pre-deletion) indices into the logical
// element stream whose referenced values form a non-decreasing
// subsequence under cmp — the classic monotone-deque sliding-window
// minimum trick.
package minqueue

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/container/deque"
)

// MinQueue is a FIFO<T> with O(1) amortised Min.
type MinQueue[T any] struct {
	elts *deque.Deque[T]
	mins *deque.Deque[uint64]
	dels uint64
	cmp  cmpfn.Cmp[T]
}

// New returns an empty MinQueue ordered by cmp (the minimum is the
// element cmp ranks lowest).
func New[T any](cmp cmpfn.Cmp[T]) *MinQueue[T] {
	return &MinQueue[T]{
		elts: deque.New[T](),
		mins: deque.New[uint64](),
		cmp:  cmp,
	}
}

// Len returns the number of live elements.
func (q *MinQueue[T]) Len() int { return q.elts.Len() }

// Empty reports whether the queue holds no elements.
func (q *MinQueue[T]) Empty() bool { return q.elts.Len() == 0 }

// Push appends v to the back of the queue, popping any trailing mins
// entries whose referenced value compares > v (they can never be the
// minimum again while v is present; equal entries are kept so that
// AllMinima can report every tie) before recording v's own absolute
// index.
func (q *MinQueue[T]) Push(v T) {
	for q.mins.Len() > 0 {
		lastIdx := q.mins.Get(q.mins.Len() - 1)
		lastVal := q.elts.Get(int(lastIdx - q.dels))
		if q.cmp(lastVal, v) <= 0 {
			break
		}
		q.mins.PopBack()
	}
	q.mins.PushBack(q.dels + uint64(q.elts.Len()))
	q.elts.PushBack(v)
}

// Pop removes and returns the frontmost element.
func (q *MinQueue[T]) Pop() T {
	if q.elts.Len() == 0 {
		cmpfn.Panic("minqueue.Pop", "empty queue")
	}
	if q.mins.Len() > 0 && q.mins.Get(0) == q.dels {
		q.mins.PopFront()
	}
	v := q.elts.PopFront()
	q.dels++
	return v
}

// Min returns the current minimum element without removing it.
func (q *MinQueue[T]) Min() T {
	if q.mins.Len() == 0 {
		cmpfn.Panic("minqueue.Min", "empty queue")
	}
	idx := q.mins.Get(0)
	return q.elts.Get(int(idx - q.dels))
}

// AllMinima returns every currently-queued element equal (under cmp) to
// the current minimum, in FIFO order — the design's "all-minima
// iterator", used for tie-broken enumeration.
func (q *MinQueue[T]) AllMinima() []T {
	if q.mins.Len() == 0 {
		return nil
	}
	min := q.Min()
	out := []T{}
	for i := 0; i < q.mins.Len(); i++ {
		idx := q.mins.Get(i)
		v := q.elts.Get(int(idx - q.dels))
		if q.cmp(v, min) != 0 {
			break
		}
		out = append(out, v)
	}
	return out
}
