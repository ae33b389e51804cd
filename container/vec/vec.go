// Package vec implements the dynamic array (§4.3 of the design): a
// contiguous, geometrically-growing value buffer. Inside this module it
// backs roaring's array-mode containers (deque and minqueue keep their
// own storage).
//
// Go's slice already gives us a growable contiguous buffer; what it does
// not give us is the reserved past-cap scratch slot the design requires
// for an allocation-free Swap, or the exact growth/shrink policy (G≈1.62
// growth, shrink below load L≈0.5, floor cap_min=4) the design pins down
// as a testable property. Both are implemented explicitly below rather
// than left to append's doubling, which is unspecified and shrink-free.
package vec

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

// Vec is a growable, indexable buffer of T. The zero value is not usable;
// construct with New or NewWithCapacity.
type Vec[T any] struct {
	buf []T // len(buf) == cap; buf[cap] scratch slot kept separately
	n   int // logical length
	scr T   // reserved scratch slot used by Swap, avoids an extra alloc
}

// New returns an empty Vec with capMin capacity, or size pre-filled zero
// elements if size > 0.
func New[T any](size int) *Vec[T] {
	return NewWithCapacity[T](size, size)
}

// NewWithCapacity returns a Vec with size zero-valued elements and
// capacity at least cap (and at least capMin).
func NewWithCapacity[T any](size, cap int) *Vec[T] {
	if cap < capMin {
		cap = capMin
	}
	if cap < size {
		cap = size
	}
	v := &Vec[T]{buf: make([]T, cap)}
	v.n = size
	return v
}

// Len returns the number of logical elements.
func (v *Vec[T]) Len() int { return v.n }

// Cap returns the current backing capacity.
func (v *Vec[T]) Cap() int { return len(v.buf) }

func (v *Vec[T]) checkIndex(op string, i int) {
	if i < 0 || i >= v.n {
		cmpfn.Panic(op, "index %d out of range [0,%d)", i, v.n)
	}
}

// Get returns the element at i.
func (v *Vec[T]) Get(i int) T {
	v.checkIndex("vec.Get", i)
	return v.buf[i]
}

// GetMut returns a pointer to the element at i for in-place mutation.
// Valid only until the next reallocating operation (Push past capacity,
// Insert, Remove, Clip, Concat).
func (v *Vec[T]) GetMut(i int) *T {
	v.checkIndex("vec.GetMut", i)
	return &v.buf[i]
}

// Set overwrites the element at i.
func (v *Vec[T]) Set(i int, val T) {
	v.checkIndex("vec.Set", i)
	v.buf[i] = val
}

func (v *Vec[T]) growTo(need int) {
	if need <= len(v.buf) {
		return
	}
	newCap := len(v.buf)
	if newCap < capMin {
		newCap = capMin
	}
	for newCap < need {
		newCap = int(float64(newCap)*growthFactor) + 1
	}
	nb := make([]T, newCap)
	copy(nb, v.buf[:v.n])
	v.buf = nb
}

func (v *Vec[T]) maybeShrink() {
	if len(v.buf) <= capMin {
		return
	}
	if float64(v.n) >= float64(len(v.buf))*shrinkLoad {
		return
	}
	newCap := len(v.buf)
	for newCap > capMin && float64(v.n) < float64(newCap)*shrinkLoad {
		shrunk := int(float64(newCap) / growthFactor)
		if shrunk < capMin {
			shrunk = capMin
		}
		if shrunk >= newCap {
			break
		}
		newCap = shrunk
	}
	if newCap == len(v.buf) {
		return
	}
	nb := make([]T, newCap)
	copy(nb, v.buf[:v.n])
	v.buf = nb
}

// Push appends a single value, amortised O(1).
func (v *Vec[T]) Push(val T) {
	v.growTo(v.n + 1)
	v.buf[v.n] = val
	v.n++
}

// PushN appends n copies of val in amortised O(n): the just-pushed prefix
// is doubled via memcpy (logarithmically many copies) rather than n
// individual appends, matching the design's documented algorithm.
func (v *Vec[T]) PushN(val T, n int) {
	if n <= 0 {
		return
	}
	v.growTo(v.n + n)
	v.buf[v.n] = val
	filled := 1
	start := v.n
	for filled < n {
		chunk := filled
		if start+filled+chunk > start+n {
			chunk = n - filled
		}
		copy(v.buf[start+filled:start+filled+chunk], v.buf[start:start+chunk])
		filled += chunk
	}
	v.n += n
}

// Insert places val at index i, shifting subsequent elements right.
func (v *Vec[T]) Insert(i int, val T) {
	if i < 0 || i > v.n {
		cmpfn.Panic("vec.Insert", "index %d out of range [0,%d]", i, v.n)
	}
	v.growTo(v.n + 1)
	copy(v.buf[i+1:v.n+1], v.buf[i:v.n])
	v.buf[i] = val
	v.n++
}

// Remove deletes and returns the element at index i, shifting subsequent
// elements left.
func (v *Vec[T]) Remove(i int) T {
	v.checkIndex("vec.Remove", i)
	val := v.buf[i]
	copy(v.buf[i:v.n-1], v.buf[i+1:v.n])
	var zero T
	v.buf[v.n-1] = zero
	v.n--
	v.maybeShrink()
	return val
}

// Clip truncates the Vec to the half-open range [lo,hi). Unlike the C
// source's vec_clip (§9 notes an undetected off-by-one when from > to),
// this panics on lo > hi rather than silently misbehaving.
func (v *Vec[T]) Clip(lo, hi int) {
	if lo < 0 || hi > v.n || lo > hi {
		cmpfn.Panic("vec.Clip", "invalid range [%d,%d) for length %d", lo, hi, v.n)
	}
	n := hi - lo
	copy(v.buf[:n], v.buf[lo:hi])
	var zero T
	for i := n; i < v.n; i++ {
		v.buf[i] = zero
	}
	v.n = n
	v.maybeShrink()
}

// RotateLeft rotates the logical contents left by k positions (k may be
// negative or exceed Len; it is normalised modulo Len).
func (v *Vec[T]) RotateLeft(k int) {
	if v.n == 0 {
		return
	}
	k = ((k % v.n) + v.n) % v.n
	if k == 0 {
		return
	}
	tmp := make([]T, v.n)
	copy(tmp, v.buf[k:v.n])
	copy(tmp[v.n-k:], v.buf[:k])
	copy(v.buf[:v.n], tmp)
}

// Concat appends all elements of src to v, in order.
func (v *Vec[T]) Concat(src *Vec[T]) {
	v.growTo(v.n + src.n)
	copy(v.buf[v.n:v.n+src.n], src.buf[:src.n])
	v.n += src.n
}

// Swap exchanges the elements at i and j using the reserved scratch slot
// instead of a temporary local (the design's documented "no heap
// allocation" swap idiom; in Go this mostly matters for large T).
func (v *Vec[T]) Swap(i, j int) {
	v.checkIndex("vec.Swap", i)
	v.checkIndex("vec.Swap", j)
	if i == j {
		return
	}
	v.scr = v.buf[i]
	v.buf[i] = v.buf[j]
	v.buf[j] = v.scr
}

// Sort sorts the Vec in place according to cmp. Uses Go's introsort
// (sort.Slice) under the hood — the design leaves the sort algorithm
// itself out of scope ("sort/order primitives (comparator and equality
// function types only)"); only the comparator contract is ours to keep.
func (v *Vec[T]) Sort(cmp cmpfn.Cmp[T]) {
	sortSlice(v.buf[:v.n], cmp)
}

// BinarySearch returns the leftmost index i in [0,Len) with cmp(Get(i),
// val) >= 0, or Len if no such index exists (a miss). The Vec must
// already be sorted by cmp.
func (v *Vec[T]) BinarySearch(val T, cmp cmpfn.Cmp[T]) int {
	lo, hi := 0, v.n
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cmp(v.buf[mid], val) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// RadixSort performs a stable LSD radix sort using keyFn to extract a
// non-negative base-`base` digit sequence of keySize digits from each
// element (digit 0 = least significant).
func (v *Vec[T]) RadixSort(keyFn func(T, int) int, keySize, base int) {
	if v.n <= 1 {
		return
	}
	buckets := make([][]T, base)
	src := v.buf[:v.n]
	for digit := 0; digit < keySize; digit++ {
		for i := range buckets {
			buckets[i] = buckets[i][:0]
		}
		for _, val := range src {
			d := keyFn(val, digit)
			buckets[d] = append(buckets[d], val)
		}
		out := make([]T, 0, v.n)
		for _, b := range buckets {
			out = append(out, b...)
		}
		copy(src, out)
	}
}

// Iter returns a single-pass forward iterator over the current elements.
// Invalidated by any mutation, per the design's iterator contract.
func (v *Vec[T]) Iter() iterator.Iterator[T] {
	i := 0
	return iterator.New(func() (T, bool) {
		if i >= v.n {
			var zero T
			return zero, false
		}
		val := v.buf[i]
		i++
		return val, true
	})
}

// Detach returns a right-sized owned slice of exactly Len elements,
// severing it from the Vec (the Vec is left empty). This is the Go
// analogue of the design's "raw buffer of exact length" operation —
// there is no separate ownership transfer to model since Go slices are
// already safe to hand off.
func (v *Vec[T]) Detach() []T {
	out := make([]T, v.n)
	copy(out, v.buf[:v.n])
	v.buf = make([]T, capMin)
	v.n = 0
	return out
}

// Finalizer builds the container-specific finaliser for Vec[T] (§4.1):
// if invoked with a child, the child is applied to every contained
// element; otherwise elements are treated as plain values and nothing
// further happens (Go's GC reclaims v.buf regardless).
func Finalizer[T any]() *finalizer.Node {
	return finalizer.For(func(v *Vec[T], n *finalizer.Node) {
		if len(n.Children) == 0 {
			return
		}
		child := n.Children[0]
		for i := 0; i < v.n; i++ {
			finalizer.Finalize(v.buf[i], child)
		}
	})
}
