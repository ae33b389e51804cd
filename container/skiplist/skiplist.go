// Package skiplist implements the probabilistic ordered structure of
// §4.6: a tower of singly-linked levels, each node a geometric-height
// "down"-chain rooted at its level-0 occurrence, searched top-down via a
// reused precursor stack. Grounded on
// `original_source/libcocada/src/container/skiplist.c`'s level-vec +
// precursors-vec design (levels/precursors there are a `vec` of node
// pointers; here a plain slice of sentinel-head pointers serves the
// same role since Go already owns node lifetime).
package skiplist

import (
	"math/rand/v2"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/paguso/cocada-go/iterator"
)

const defaultP = 0.5

type node[T any] struct {
	key  T
	next *node[T]
	down *node[T]
}

// SkipList is an ordered set over T, keyed by cmp.
type SkipList[T any] struct {
	heads      []*node[T] // heads[lvl] is the sentinel head of level lvl
	precursors []*node[T] // scratch reused by getPrecursors, one per level
	height     int
	p          float64
	cmp        cmpfn.Cmp[T]
	n          int
	randFn     func() float64
}

// New returns an empty SkipList ordered by cmp, promotion probability
// p=0.5, using the package-level random source (mirrors the C source's
// ambient `rand_unif()`).
func New[T any](cmp cmpfn.Cmp[T]) *SkipList[T] {
	return NewWithRand[T](cmp, rand.Float64)
}

// NewWithRand is New but with an injectable uniform-[0,1) source, so
// tests can drive deterministic level sampling.
func NewWithRand[T any](cmp cmpfn.Cmp[T], randFn func() float64) *SkipList[T] {
	sl := &SkipList[T]{cmp: cmp, p: defaultP, randFn: randFn}
	sl.addLevel()
	return sl
}

func (sl *SkipList[T]) addLevel() {
	newHead := &node[T]{}
	if sl.height > 0 {
		newHead.down = sl.heads[sl.height-1]
	}
	sl.heads = append(sl.heads, newHead)
	sl.precursors = append(sl.precursors, nil)
	sl.height++
}

// Len returns the number of stored keys.
func (sl *SkipList[T]) Len() int { return sl.n }

// Empty reports whether the skip list holds no keys.
func (sl *SkipList[T]) Empty() bool { return sl.n == 0 }

// getPrecursors fills sl.precursors[lvl] with the rightmost node at
// level lvl whose key is strictly less than key (or the level's head
// sentinel), top level down to level 0.
func (sl *SkipList[T]) getPrecursors(key T) {
	for lvl := sl.height - 1; lvl >= 0; lvl-- {
		cur := sl.heads[lvl]
		for cur.next != nil && sl.cmp(cur.next.key, key) < 0 {
			cur = cur.next
		}
		sl.precursors[lvl] = cur
	}
}

func (sl *SkipList[T]) randomHeight() int {
	h := 1
	for sl.randFn() < sl.p && h <= sl.height {
		h++
	}
	return h
}

// Ins inserts key, returning false without modifying the structure if
// an equal key (cmp == 0) is already present.
func (sl *SkipList[T]) Ins(key T) bool {
	sl.getPrecursors(key)
	lvl0 := sl.precursors[0]
	if lvl0.next != nil && sl.cmp(lvl0.next.key, key) == 0 {
		return false
	}
	h := sl.randomHeight()
	for sl.height < h {
		sl.addLevel()
	}
	sl.getPrecursors(key) // levels changed, must recompute
	var down *node[T]
	for lvl := 0; lvl < h; lvl++ {
		prec := sl.precursors[lvl]
		nn := &node[T]{key: key, next: prec.next, down: down}
		prec.next = nn
		down = nn
	}
	sl.n++
	return true
}

// Del removes key if present, returning the removed key and true;
// otherwise the zero value and false.
func (sl *SkipList[T]) Del(key T) (T, bool) {
	sl.getPrecursors(key)
	lvl0prec := sl.precursors[0]
	if lvl0prec.next == nil || sl.cmp(lvl0prec.next.key, key) != 0 {
		var zero T
		return zero, false
	}
	removed := lvl0prec.next.key
	for lvl := 0; lvl < sl.height; lvl++ {
		prec := sl.precursors[lvl]
		toDel := prec.next
		if toDel == nil || sl.cmp(toDel.key, key) > 0 {
			break
		}
		prec.next = toDel.next
	}
	sl.n--
	return removed, true
}

// Get returns the stored key equal to key under cmp, and whether it was
// found.
func (sl *SkipList[T]) Get(key T) (T, bool) {
	sl.getPrecursors(key)
	lvl0 := sl.precursors[0]
	if lvl0.next == nil || sl.cmp(lvl0.next.key, key) != 0 {
		var zero T
		return zero, false
	}
	return lvl0.next.key, true
}

// Upd overwrites the stored key equal to key under cmp (e.g. a packed
// key+value entry whose comparator only looks at the key portion) with
// newVal, without touching list shape, returning whether such a key
// existed. Grounded on slordmap.c's slordmap_set, which rewrites the
// level-0 entry in place rather than reinserting on a hit. Used by
// container/ordmap.
func (sl *SkipList[T]) Upd(key, newVal T) bool {
	sl.getPrecursors(key)
	lvl0 := sl.precursors[0]
	if lvl0.next == nil || sl.cmp(lvl0.next.key, key) != 0 {
		return false
	}
	for lvl := 0; lvl < sl.height; lvl++ {
		prec := sl.precursors[lvl]
		if prec.next != nil && sl.cmp(prec.next.key, key) == 0 {
			prec.next.key = newVal
		}
	}
	return true
}

// Contains reports whether key is present.
func (sl *SkipList[T]) Contains(key T) bool {
	_, ok := sl.Get(key)
	return ok
}

// Height returns the current number of levels.
func (sl *SkipList[T]) Height() int { return sl.height }

// Iter returns a single-pass, ascending-key iterator over level 0.
func (sl *SkipList[T]) Iter() iterator.Iterator[T] {
	cur := sl.heads[0]
	return iterator.New(func() (T, bool) {
		if cur.next == nil {
			var zero T
			return zero, false
		}
		cur = cur.next
		return cur.key, true
	})
}

// Finalizer builds the container-specific finaliser for SkipList[T]:
// with a child given, applies it to every stored key, walking level 0
// exactly once (so towers sharing a key via `down` are never finalised
// twice).
func Finalizer[T any]() *finalizer.Node {
	return finalizer.For(func(sl *SkipList[T], n *finalizer.Node) {
		if len(n.Children) == 0 {
			return
		}
		child := n.Children[0]
		for cur := sl.heads[0].next; cur != nil; cur = cur.next {
			finalizer.Finalize(cur.key, child)
		}
	})
}
