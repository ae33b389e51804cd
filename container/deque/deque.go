// Package deque implements the circular-buffer double-ended queue of
// §4.4: push/pop at both ends in amortised O(1), same growth/shrink
// policy as container/vec. It is the backing structure for
// container/minqueue's two parallel deques.
package deque

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/paguso/cocada-go/iterator"
)

const (
	growthFactor = 1.62
	shrinkLoad   = 0.5
	capMin       = 4
)

// Deque is a ring buffer over buf[0..cap); start is the index of the
// front element, len the number of live elements.
type Deque[T any] struct {
	buf   []T
	start int
	n     int
}

// New returns an empty Deque.
func New[T any]() *Deque[T] {
	return &Deque[T]{buf: make([]T, capMin)}
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int { return d.n }

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool { return d.n == 0 }

func (d *Deque[T]) at(i int) int { return (d.start + i) % len(d.buf) }

func (d *Deque[T]) checkIndex(op string, i int) {
	if i < 0 || i >= d.n {
		cmpfn.Panic(op, "index %d out of range [0,%d)", i, d.n)
	}
}

// Get returns the i-th element from the front (0 is the front).
func (d *Deque[T]) Get(i int) T {
	d.checkIndex("deque.Get", i)
	return d.buf[d.at(i)]
}

// Front returns the frontmost element.
func (d *Deque[T]) Front() T {
	if d.n == 0 {
		cmpfn.Panic("deque.Front", "empty deque")
	}
	return d.buf[d.start]
}

// Back returns the backmost element.
func (d *Deque[T]) Back() T {
	if d.n == 0 {
		cmpfn.Panic("deque.Back", "empty deque")
	}
	return d.buf[d.at(d.n-1)]
}

// resize reallocates to newCap, compacting the wrapped live region into
// [0,len) so start resets to 0 — the design's documented resize
// algorithm ("split the buffer ... so the live region becomes [0,len) in
// the new allocation").
func (d *Deque[T]) resize(newCap int) {
	if newCap < capMin {
		newCap = capMin
	}
	nb := make([]T, newCap)
	for i := 0; i < d.n; i++ {
		nb[i] = d.buf[d.at(i)]
	}
	d.buf = nb
	d.start = 0
}

func (d *Deque[T]) growIfFull() {
	if d.n < len(d.buf) {
		return
	}
	d.resize(int(float64(len(d.buf))*growthFactor) + 1)
}

func (d *Deque[T]) maybeShrink() {
	if len(d.buf) <= capMin {
		return
	}
	if float64(d.n) >= float64(len(d.buf))*shrinkLoad {
		return
	}
	newCap := len(d.buf)
	for newCap > capMin && float64(d.n) < float64(newCap)*shrinkLoad {
		shrunk := int(float64(newCap) / growthFactor)
		if shrunk < capMin {
			shrunk = capMin
		}
		if shrunk >= newCap {
			break
		}
		newCap = shrunk
	}
	if newCap != len(d.buf) {
		d.resize(newCap)
	}
}

// PushFront inserts val at the front.
func (d *Deque[T]) PushFront(val T) {
	d.growIfFull()
	d.start = (d.start - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.start] = val
	d.n++
}

// PushBack inserts val at the back.
func (d *Deque[T]) PushBack(val T) {
	d.growIfFull()
	d.buf[d.at(d.n)] = val
	d.n++
}

// PopFront removes and returns the frontmost element.
func (d *Deque[T]) PopFront() T {
	if d.n == 0 {
		cmpfn.Panic("deque.PopFront", "empty deque")
	}
	val := d.buf[d.start]
	var zero T
	d.buf[d.start] = zero
	d.start = (d.start + 1) % len(d.buf)
	d.n--
	d.maybeShrink()
	return val
}

// PopBack removes and returns the backmost element.
func (d *Deque[T]) PopBack() T {
	if d.n == 0 {
		cmpfn.Panic("deque.PopBack", "empty deque")
	}
	idx := d.at(d.n - 1)
	val := d.buf[idx]
	var zero T
	d.buf[idx] = zero
	d.n--
	d.maybeShrink()
	return val
}

// Iter returns a front-to-back single-pass iterator.
func (d *Deque[T]) Iter() iterator.Iterator[T] {
	i := 0
	return iterator.New(func() (T, bool) {
		if i >= d.n {
			var zero T
			return zero, false
		}
		v := d.Get(i)
		i++
		return v, true
	})
}

// Finalizer builds the container-specific finaliser for Deque[T]: with a
// child given, applies it to every live element front-to-back.
func Finalizer[T any]() *finalizer.Node {
	return finalizer.For(func(d *Deque[T], n *finalizer.Node) {
		if len(n.Children) == 0 {
			return
		}
		child := n.Children[0]
		for i := 0; i < d.n; i++ {
			finalizer.Finalize(d.Get(i), child)
		}
	})
}
