// Package iterator defines the uniform, single-pass, forward-only
// traversal capability every ordered container in this module exposes
// (§4.2 of the design). It is a contract, not an implementation: each
// container builds its own Iterator closing over private state.
package iterator

import "github.com/paguso/cocada-go/cmpfn"

// Iterator is a lazy forward cursor over a sequence of T. HasNext is
// idempotent and may be polled any number of times without advancing.
// Next advances exactly one step and returns the element there; calling
// Next when HasNext is false is a contract violation (panics). Iterators
// are invalidated by any mutation of the underlying container — nothing
// enforces this at the type level, matching the design's documented
// aliasing hazard.
type Iterator[T any] interface {
	HasNext() bool
	Next() T
}

// Func adapts a single "pull" closure into an Iterator. next returns the
// zero value and ok=false once exhausted.
type Func[T any] struct {
	next    func() (T, bool)
	primed  bool
	hasNext bool
	peeked  T
}

// New builds an Iterator from a pull function. This is the shape almost
// every container below uses internally: a closure capturing a cursor
// into the container's storage.
func New[T any](next func() (T, bool)) *Func[T] {
	return &Func[T]{next: next}
}

func (f *Func[T]) prime() {
	if f.primed {
		return
	}
	f.peeked, f.hasNext = f.next()
	f.primed = true
}

func (f *Func[T]) HasNext() bool {
	f.prime()
	return f.hasNext
}

func (f *Func[T]) Next() T {
	f.prime()
	if !f.hasNext {
		cmpfn.Panic("iterator.Next", "called on an exhausted iterator")
	}
	v := f.peeked
	f.primed = false
	return v
}

// ForEach derives a "for each" construct purely from HasNext/Next, as the
// design specifies.
func ForEach[T any](it Iterator[T], fn func(T)) {
	for it.HasNext() {
		fn(it.Next())
	}
}

// Collect drains it into a slice. Useful in tests and for callers that
// want the whole sequence materialised despite the single-pass contract.
func Collect[T any](it Iterator[T]) []T {
	out := []T{}
	ForEach(it, func(v T) { out = append(out, v) })
	return out
}

// Map lazily transforms an Iterator[A] into an Iterator[B] — the
// composition pattern the design calls out for "higher iterators" such
// as ordered-map entries wrapping a lower key-only iterator.
func Map[A, B any](it Iterator[A], fn func(A) B) Iterator[B] {
	return New(func() (B, bool) {
		if !it.HasNext() {
			var zero B
			return zero, false
		}
		return fn(it.Next()), true
	})
}
