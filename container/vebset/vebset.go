// Package vebset implements the recursive van Emde Boas integer set of
// §4.9: a {min, max, summary, clusters} tree over a u-bit universe,
// partitioning a key into high = x/sqrt(U) and low = x mod sqrt(U) at
// every level, down to 1-bit leaves where membership is encoded
// directly in (min, max). Grounded on
// `original_source/libcocada/src/container/vebset.c`'s
// `vebtree_add`/`vebtree_del`/`vebtree_succ`/`vebtree_pred` verbatim.
//
// Clusters are stored in this module's own container/hashmap (the
// design's "clusters is an id->subtree map, hashmap of rawptr values")
// rather than a bare Go map, so this component exercises the hash map
// rather than reaching past it.
//
// Per §9's open-question redesign instruction, the leaf (1-bit) delete
// case never uses the source's sentinel value `2`: deleting the sole
// remaining bit resets (min,max) to the ordinary empty-set convention
// via explicit case analysis instead, with no out-of-{0,1} value ever
// stored.
package vebset

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/container/hashmap"
	"github.com/paguso/cocada-go/corelog"
	"github.com/paguso/cocada-go/hashfn"
)

type node struct {
	min, max int64
	summary  *node
	clusters *hashmap.Map[uint32, *node]
}

func universe(nbits uint) int64       { return int64(1) << nbits }
func sqrtUniverse(nbits uint) int64   { return int64(1) << (nbits / 2) }
func high(x int64, nbits uint) uint32 { return uint32(x / sqrtUniverse(nbits)) }
func low(x int64, nbits uint) uint32  { return uint32(x % sqrtUniverse(nbits)) }
func index(h, l uint32, nbits uint) int64 {
	return int64(h)*sqrtUniverse(nbits) + int64(l)
}

func newNode(nbits uint) *node {
	return &node{min: universe(nbits), max: -1}
}

func (n *node) empty() bool { return n.max < 0 }

func uint32Hash(v uint32) uint64 { return hashfn.Uint64(uint64(v)) }

func newClusterMap() *hashmap.Map[uint32, *node] {
	return hashmap.New[uint32, *node](uint32Hash, cmpfn.NaturalEq[uint32]())
}

func contains(n *node, x int64, nbits uint) bool {
	if x < n.min || x > n.max {
		return false
	}
	if x == n.min || x == n.max {
		return true
	}
	if n.clusters == nil {
		return false
	}
	cl, ok := n.clusters.Get(high(x, nbits))
	if !ok {
		return false
	}
	return contains(cl, int64(low(x, nbits)), nbits/2)
}

func add(n *node, x int64, nbits uint) bool {
	if x >= universe(nbits) || x == n.min || x == n.max {
		return false
	}
	if nbits == 1 {
		changed := false
		if x < n.min {
			n.min = x
			changed = true
		}
		if x > n.max {
			n.max = x
			changed = true
		}
		return changed
	}
	if n.empty() {
		n.min, n.max = x, x
		return true
	}
	changed := false
	if x < n.min {
		x, n.min = n.min, x
		changed = true
	}
	if x > n.max {
		n.max = x
		changed = true
	}
	if n.summary == nil {
		n.summary = newNode(nbits / 2)
		n.clusters = newClusterMap()
	}
	h := high(x, nbits)
	l := low(x, nbits)
	cl, ok := n.clusters.Get(h)
	if !ok {
		cl = newNode(nbits / 2)
		n.clusters.Ins(h, cl)
	}
	if cl.empty() {
		add(n.summary, int64(h), nbits/2)
	}
	return add(cl, int64(l), nbits/2)
}

// del1 handles the 1-bit leaf case without the source's out-of-alphabet
// sentinel `2`: the only non-empty leaf states are {min=max=0},
// {min=max=1} or {min=0,max=1}, and removing a bit is a direct case
// split on which of those states results.
func (n *node) del1(x int64) bool {
	switch {
	case x == n.min && x == n.max:
		n.min, n.max = universe(1), -1
		return true
	case x == n.min:
		n.min = n.max
		return true
	case x == n.max:
		n.max = n.min
		return true
	default:
		return false
	}
}

func del(n *node, x int64, nbits uint) bool {
	if x >= universe(nbits) || n.empty() {
		return false
	}
	if x < n.min || x > n.max {
		return false
	}
	if nbits == 1 {
		return n.del1(x)
	}
	deleted := false
	if x == n.min {
		deleted = true
		if x == n.max {
			n.min, n.max = universe(nbits), -1
			return true
		}
		h := uint32(n.summary.min)
		cl, _ := n.clusters.Get(h)
		l := uint32(cl.min)
		n.min = index(h, l, nbits)
		x = n.min
	}
	h := high(x, nbits)
	l := low(x, nbits)
	cl, ok := n.clusters.Get(h)
	if !ok {
		return false
	}
	deleted = del(cl, int64(l), nbits/2)
	if deleted && cl.empty() {
		del(n.summary, int64(h), nbits/2)
	}
	if x == n.max {
		if n.summary.empty() {
			n.max = n.min
		} else {
			h2 := uint32(n.summary.max)
			cl2, _ := n.clusters.Get(h2)
			l2 := uint32(cl2.max)
			n.max = index(h2, l2, nbits)
		}
	}
	return deleted
}

func succ(n *node, x int64, nbits uint) int64 {
	if x >= n.max {
		return universe(nbits)
	}
	if x < n.min {
		return n.min
	}
	if nbits == 1 {
		if x == 0 && n.max == 1 {
			return 1
		}
		return universe(1)
	}
	if n.empty() {
		return universe(nbits)
	}
	h := high(x, nbits)
	l := low(x, nbits)
	var cl *node
	if n.clusters != nil {
		cl, _ = n.clusters.Get(h)
	}
	if cl != nil && int64(l) < cl.max {
		l = uint32(succ(cl, int64(l), nbits/2))
	} else {
		hh := succ(n.summary, int64(h), nbits/2)
		if hh < sqrtUniverse(nbits) {
			h = uint32(hh)
			cl2, _ := n.clusters.Get(h)
			l = uint32(cl2.min)
		} else {
			return universe(nbits)
		}
	}
	return index(h, l, nbits)
}

func pred(n *node, x int64, nbits uint) int64 {
	if x <= n.min {
		return -1
	}
	if x > n.max {
		return n.max
	}
	if nbits == 1 {
		if x == 1 && n.min == 0 {
			return 0
		}
		return -1
	}
	if n.empty() {
		return -1
	}
	h := high(x, nbits)
	l := low(x, nbits)
	var cl *node
	if n.clusters != nil {
		cl, _ = n.clusters.Get(h)
	}
	if cl != nil && cl.min < int64(l) {
		l = uint32(pred(cl, int64(l), nbits/2))
	} else {
		hh := pred(n.summary, int64(h), nbits/2)
		if hh >= 0 {
			h = uint32(hh)
			cl2, _ := n.clusters.Get(h)
			l = uint32(cl2.max)
		} else if n.min < universe(nbits) {
			return n.min
		} else {
			return -1
		}
	}
	return index(h, l, nbits)
}

func isPow2(n uint) bool { return n > 0 && n&(n-1) == 0 }

// Set is a vEB set over the universe [0, 2^nbits).
type Set struct {
	size  int
	nbits uint
	tree  *node
}

// NewWithUniverseBits returns an empty Set over universe [0, 2^nbits).
// nbits must be a power of two (the recursive high/low split must reach
// exactly a 1-bit leaf by repeated halving).
func NewWithUniverseBits(nbits uint) *Set {
	if !isPow2(nbits) {
		cmpfn.Panic("vebset.NewWithUniverseBits", "universe bit width %d is not a power of two", nbits)
	}
	return &Set{nbits: nbits, tree: newNode(nbits)}
}

// New returns an empty Set over the default 32-bit universe, matching
// the source's `vebset_new`.
func New() *Set {
	return NewWithUniverseBits(32)
}

// Len returns the number of stored elements.
func (s *Set) Len() int { return s.size }

// Empty reports whether the set holds no elements.
func (s *Set) Empty() bool { return s.tree.empty() }

// Universe returns the declared universe size 2^nbits.
func (s *Set) Universe() int64 { return universe(s.nbits) }

// Contains reports whether x is a member.
func (s *Set) Contains(x uint32) bool {
	return contains(s.tree, int64(x), s.nbits)
}

// Add inserts x, returning true if it was not already present. x >=
// Universe() is a no-op reported via corelog.WarnOutOfUniverse rather
// than a panic, matching the design's documented non-fatal condition.
func (s *Set) Add(x uint32) bool {
	if int64(x) >= s.Universe() {
		corelog.WarnOutOfUniverse("vebset.Add", int64(x), s.Universe())
		return false
	}
	if add(s.tree, int64(x), s.nbits) {
		s.size++
		return true
	}
	return false
}

// Del removes x if present, returning whether it was removed.
func (s *Set) Del(x uint32) bool {
	if int64(x) >= s.Universe() {
		return false
	}
	if del(s.tree, int64(x), s.nbits) {
		s.size--
		return true
	}
	return false
}

// Succ returns the smallest stored element >= x, or Universe() if none.
func (s *Set) Succ(x uint32) int64 {
	if s.Contains(x) {
		return int64(x)
	}
	return succ(s.tree, int64(x), s.nbits)
}

// Pred returns the largest stored element <= x, or -1 if none.
func (s *Set) Pred(x uint32) int64 {
	if s.Contains(x) {
		return int64(x)
	}
	return pred(s.tree, int64(x), s.nbits)
}

// Min returns the smallest stored element, or Universe() if empty.
func (s *Set) Min() int64 { return s.tree.min }

// Max returns the largest stored element, or -1 if empty.
func (s *Set) Max() int64 { return s.tree.max }
