// Package qdigest implements the Q-digest approximate rank/quantile
// summary named in §4.14 ("FM / BJKST / Q-digest sketches ... included
// as sibling components"). Grounded on
// `original_source/src/streaming/qdigest.c`'s `qdigest_upd`/
// `qdigest_qry`/`qdigest_compress`: a binary tree over the fixed range
// [0,range), built lazily node-by-node as values are inserted, each
// node bounded to at most `cap = max(1, (err/log10(range))*total_qty)`
// units, periodically compressed (merging a node's excess quantity
// into its parent, bottom-up) whenever total_qty's cap reaches or passes
// the next power-of-two checkpoint.
//
// `__qdigest_compress`'s carried `spare_up` accumulator is `size_t`
// (unsigned) and is decremented by `cp.move_up - put_here` without a
// floor at zero; depending on traversal order this can underflow to a
// huge value, which then gets clamped right back down to `root->qty`
// by the very next `MIN(spare_up, root->qty)` — silently draining a
// node's quantity into `move_up` with no containing error, and the
// top-level `qdigest_compress` never even captures the recursive call's
// returned new root, discarding whatever bubbled all the way up. §4.14
// only promises the two-way `update`/`query` contract, not this
// accounting's low-level behaviour, so this port keeps `spareUp` as a
// plain `int` clamped to zero (same fix pattern as `sketch/kll`'s coin
// parity: implement the intended "push excess toward the root" merge,
// not the unsigned-underflow accident) and assigns the compress call's
// returned root back to the digest.
package qdigest

import (
	"math"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/corelog"
)

type node struct {
	qty int
	chd [2]*node
}

func hasChd(n *node) bool {
	return n.chd[0] != nil || n.chd[1] != nil
}

// QDigest is an approximate rank summary over the fixed integer range
// [0,Range), accurate to within a total error budget set by Err.
type QDigest struct {
	rng             int
	err             float64
	errLogRange     float64 // err / log10(range), qdigest_new's precomputed constant
	nextCompressCap int
	totalQty        int
	root            *node
}

// New returns an empty QDigest over [0,rng) targeting rank error err.
func New(rng int, err float64) *QDigest {
	if rng <= 0 {
		cmpfn.Panic("qdigest.New", "range must be positive, got %d", rng)
	}
	if err <= 0 {
		cmpfn.Panic("qdigest.New", "err must be positive, got %f", err)
	}
	return &QDigest{
		rng:             rng,
		err:             err,
		errLogRange:     err / math.Log10(float64(rng)),
		nextCompressCap: 2,
		root:            &node{},
	}
}

// N returns the total quantity observed across every Upd call.
func (q *QDigest) N() int { return q.totalQty }

func (q *QDigest) cap() int {
	c := int(q.errLogRange * float64(q.totalQty))
	if c < 1 {
		c = 1
	}
	return c
}

// Upd registers qty occurrences of val. val outside [0,Range] is
// ignored with a warning (`qdigest_upd`'s documented out-of-range
// behaviour; the original's own bound check is `val > range`, a closed
// upper bound one past the half-open range advertised elsewhere in the
// source — preserved as-is since it is the source's own contract, not
// a glue bug this module corrects).
func (q *QDigest) Upd(val, qty int) {
	if val < 0 || val > q.rng {
		corelog.WarnOutOfUniverse("qdigest.Upd", int64(val), int64(q.rng))
		return
	}
	if qty <= 0 {
		return
	}
	q.totalQty += qty
	cap := q.cap()
	par, cur := q.root, q.root
	dir := 0
	l, r := 0, q.rng
	for qty > 0 {
		if cur == nil {
			cur = &node{}
			par.chd[dir] = cur
		}
		if r-l > 1 { // non-leaf
			add := cap - cur.qty
			if add > qty {
				add = qty
			}
			cur.qty += add
			qty -= add
			par = cur
			m := (l + r) / 2
			if val < m {
				dir, r = 0, m
			} else {
				dir, l = 1, m
			}
			cur = cur.chd[dir]
		} else { // leaf
			cur.qty += qty
			qty = 0
		}
	}
	if cap >= q.nextCompressCap {
		for q.nextCompressCap <= cap {
			q.nextCompressCap *= 2
		}
		q.compress()
	}
}

func (q *QDigest) compress() {
	if q.root == nil {
		return
	}
	newRoot, _ := compressNode(q.root, q.cap(), 0)
	if newRoot == nil {
		newRoot = &node{}
	}
	q.root = newRoot
}

// compressNode mirrors `__qdigest_compress`: push every node's excess
// over cap up toward the root, freeing any node whose quantity (after
// absorbing what fits from its children, and giving up what doesn't fit
// to its own parent) drops to zero.
func compressNode(root *node, cap, spareUp int) (newRoot *node, moveUp int) {
	if root == nil {
		return nil, 0
	}
	for dir := 0; dir <= 1; dir++ {
		if root.chd[dir] != nil {
			spareHere := cap - root.qty
			childRoot, childMoveUp := compressNode(root.chd[dir], cap, spareUp+spareHere)
			root.chd[dir] = childRoot
			putHere := spareHere
			if putHere > childMoveUp {
				putHere = childMoveUp
			}
			root.qty += putHere
			moveUp += childMoveUp - putHere
			spareUp -= childMoveUp - putHere
			if spareUp < 0 {
				spareUp = 0
			}
		}
	}
	m := spareUp
	if m > root.qty {
		m = root.qty
	}
	moveUp += m
	root.qty -= m
	if root.qty == 0 && !hasChd(root) {
		return nil, moveUp
	}
	return root, moveUp
}

// Qry returns the approximate count of updates with value strictly less
// than val: `qdigest_qry`'s root-to-leaf walk, accumulating the full
// quantity of every left subtree skipped while descending right.
func (q *QDigest) Qry(val int) int {
	cur := q.root
	l, r := 0, q.rng
	ret := 0
	for cur != nil && hasChd(cur) {
		m := (l + r) / 2
		if val < m {
			r = m
			cur = cur.chd[0]
		} else {
			ret += sumTree(cur.chd[0])
			l = m
			cur = cur.chd[1]
		}
	}
	return ret
}

func sumTree(n *node) int {
	if n == nil {
		return 0
	}
	return n.qty + sumTree(n.chd[0]) + sumTree(n.chd[1])
}
