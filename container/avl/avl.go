// Package avl implements the height-balanced binary search tree of §4.5:
// recursive insert/delete with the four rotation cases (LL/LR/RR/RL)
// driven by an int8 balance factor kept at every node, rather than a
// stored subtree height. This mirrors the design's documented algorithm
// (and `original_source/libcocada/src/container/avl.c`'s `__avl_ins`/
// `__avl_remv`/`__rotate_left`/`__rotate_right` verbatim) instead of the
// more common "recompute height, compare children" AVL rendition.
package avl

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/paguso/cocada-go/iterator"
)

// Order selects the traversal order of Iter — the design's supplemented
// feature of exposing all three classic orders, not just in-order.
type Order int

const (
	PreOrder Order = iota
	InOrder
	PostOrder
)

type node[T any] struct {
	val   T
	bf    int8 // balance factor: height(right) - height(left)
	left  *node[T]
	right *node[T]
}

// Tree is an AVL search tree over values ordered by cmp. Duplicate
// inserts (cmp == 0) are a no-op, per §7.
type Tree[T any] struct {
	root *node[T]
	cmp  cmpfn.Cmp[T]
	n    int
}

// New returns an empty Tree ordered by cmp.
func New[T any](cmp cmpfn.Cmp[T]) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// Len returns the number of stored values.
func (t *Tree[T]) Len() int { return t.n }

// Empty reports whether the tree holds no values.
func (t *Tree[T]) Empty() bool { return t.n == 0 }

// Contains reports whether key (or its equal, per cmp) is present.
func (t *Tree[T]) Contains(key T) bool {
	_, ok := t.Get(key)
	return ok
}

// Get returns the stored value equal to key under cmp, and whether it
// was found.
func (t *Tree[T]) Get(key T) (T, bool) {
	cur := t.root
	for cur != nil {
		where := t.cmp(key, cur.val)
		if where == 0 {
			return cur.val, true
		} else if where < 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	var zero T
	return zero, false
}

func rotateLeft[T any](root *node[T]) *node[T] {
	r := root.right
	rl := r.left
	r.left = root
	root.right = rl
	rbf := int8(0)
	if r.bf > 0 {
		rbf = r.bf
	}
	root.bf = root.bf - 1 - rbf
	rootbf := int8(0)
	if root.bf < 0 {
		rootbf = root.bf
	}
	r.bf = r.bf - 1 + rootbf
	return r
}

func rotateRight[T any](root *node[T]) *node[T] {
	l := root.left
	lr := l.right
	root.left = lr
	l.right = root
	lbf := int8(0)
	if l.bf < 0 {
		lbf = l.bf
	}
	root.bf = root.bf + 1 - lbf
	rootbf := int8(0)
	if root.bf > 0 {
		rootbf = root.bf
	}
	l.bf = l.bf + 1 + rootbf
	return l
}

// Ins inserts val, returning false without modifying the tree if an
// equal value (cmp == 0) is already present.
func (t *Tree[T]) Ins(val T) bool {
	newRoot, _, inserted := t.ins(t.root, val)
	t.root = newRoot
	if inserted {
		t.n++
	}
	return inserted
}

// ins mirrors __avl_ins's indel_result exactly: heightChgd reports
// whether the subtree rooted at the returned node grew taller, which a
// completed rotation may reset to false even though an insertion
// happened (the rotation absorbed the height increase).
func (t *Tree[T]) ins(root *node[T], val T) (newRoot *node[T], heightChgd bool, inserted bool) {
	if root == nil {
		return &node[T]{val: val}, true, true
	}
	where := t.cmp(val, root.val)
	if where == 0 {
		return root, false, false
	}
	var chd *node[T]
	var chdHeightChgd bool
	if where < 0 {
		chd, chdHeightChgd, inserted = t.ins(root.left, val)
		root.left = chd
		if !inserted {
			return root, false, false
		}
		if chdHeightChgd {
			root.bf--
		}
	} else {
		chd, chdHeightChgd, inserted = t.ins(root.right, val)
		root.right = chd
		if !inserted {
			return root, false, false
		}
		if chdHeightChgd {
			root.bf++
		}
	}
	if !chdHeightChgd {
		return root, false, true
	}
	if root.bf == 0 {
		return root, false, true
	}
	if root.bf == -1 || root.bf == 1 {
		return root, true, true
	}
	if root.bf == -2 {
		if root.left.bf > 0 {
			root.left = rotateLeft(root.left)
		}
		return rotateRight(root), false, true
	}
	// root.bf == 2
	if root.right.bf < 0 {
		root.right = rotateRight(root.right)
	}
	return rotateLeft(root), false, true
}

type remvMinResult[T any] struct {
	root       *node[T]
	remvd      *node[T]
	heightChgd bool
}

func remvMin[T any](root *node[T]) remvMinResult[T] {
	if root.left == nil {
		return remvMinResult[T]{root: root.right, remvd: root, heightChgd: true}
	}
	res := remvMin(root.left)
	root.left = res.root
	root.bf += boolToI8(res.heightChgd)
	if !res.heightChgd {
		return remvMinResult[T]{root: root, heightChgd: false, remvd: res.remvd}
	}
	if root.bf == 0 {
		return remvMinResult[T]{root: root, heightChgd: true, remvd: res.remvd}
	}
	if root.bf == 1 {
		return remvMinResult[T]{root: root, heightChgd: false, remvd: res.remvd}
	}
	// root.bf == 2
	shrank := root.right.bf != 0
	if root.right.bf < 0 {
		root.right = rotateRight(root.right)
	}
	return remvMinResult[T]{root: rotateLeft(root), heightChgd: shrank, remvd: res.remvd}
}

func boolToI8(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

// Del removes the value equal to key under cmp, if present, returning
// the removed value and true; otherwise returns the zero value and
// false.
func (t *Tree[T]) Del(key T) (T, bool) {
	newRoot, removed, _, ok := t.del(t.root, key)
	t.root = newRoot
	if ok {
		t.n--
	}
	return removed, ok
}

// del mirrors __avl_remv's indel_result: heightChgd reports whether the
// subtree shrank, which only the terminating rotation cases recompute
// from the rebalanced node's surviving child (__avl_remv's "was -1 now
// -2" comment block) rather than always being true on a successful
// delete.
func (t *Tree[T]) del(root *node[T], key T) (newRoot *node[T], removed T, heightChgd bool, ok bool) {
	if root == nil {
		var zero T
		return nil, zero, false, false
	}
	where := t.cmp(key, root.val)
	if where < 0 {
		var chd *node[T]
		var chdHeightChgd bool
		chd, removed, chdHeightChgd, ok = t.del(root.left, key)
		if !ok {
			return root, removed, false, false
		}
		root.left = chd
		root.bf += boolToI8(chdHeightChgd)
		heightChgd = chdHeightChgd
	} else if where > 0 {
		var chd *node[T]
		var chdHeightChgd bool
		chd, removed, chdHeightChgd, ok = t.del(root.right, key)
		if !ok {
			return root, removed, false, false
		}
		root.right = chd
		root.bf -= boolToI8(chdHeightChgd)
		heightChgd = chdHeightChgd
	} else {
		removed = root.val
		ok = true
		if root.left == nil {
			return root.right, removed, true, true
		}
		if root.right == nil {
			return root.left, removed, true, true
		}
		rmin := remvMin(root.right)
		root.right = rmin.root
		root.val = rmin.remvd.val
		root.bf -= boolToI8(rmin.heightChgd)
		heightChgd = rmin.heightChgd
	}
	if !heightChgd {
		return root, removed, false, true
	}
	if root.bf == 0 {
		return root, removed, true, true
	}
	if root.bf == -1 || root.bf == 1 {
		return root, removed, false, true
	}
	if root.bf == -2 {
		shrank := root.left.bf != 0
		if root.left.bf > 0 {
			root.left = rotateLeft(root.left)
		}
		return rotateRight(root), removed, shrank, true
	}
	// root.bf == 2
	shrank := root.right.bf != 0
	if root.right.bf < 0 {
		root.right = rotateRight(root.right)
	}
	return rotateLeft(root), removed, shrank, true
}

// Upd overwrites the stored value equal to key under cmp in place,
// without touching tree shape, returning whether such a value existed.
// Grounded on avlordmap.c's avl_upd call site: used by container/ordmap
// to update a key's associated value without reinserting the key.
func (t *Tree[T]) Upd(key, val T) bool {
	cur := t.root
	for cur != nil {
		where := t.cmp(key, cur.val)
		if where == 0 {
			cur.val = val
			return true
		} else if where < 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return false
}

// Height returns the tree's height (an empty tree has height 0, a
// single-node tree height 1) — used by the balance-invariant property
// test, not by the insert/delete algorithm itself (which tracks only
// the balance factor, never the height, per the design).
func (t *Tree[T]) Height() int {
	return height(t.root)
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	lh, rh := height(n.left), height(n.right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

// Iter returns a single-pass iterator over the tree's values in the
// given traversal order.
func (t *Tree[T]) Iter(order Order) iterator.Iterator[T] {
	stack := []*node[T]{}
	push := func(n *node[T]) {
		for n != nil {
			stack = append(stack, n)
			switch order {
			case InOrder:
				n = n.left
			default:
				n = nil
			}
		}
	}
	switch order {
	case PreOrder:
		if t.root != nil {
			stack = append(stack, t.root)
		}
		return iterator.New(func() (T, bool) {
			if len(stack) == 0 {
				var zero T
				return zero, false
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.right != nil {
				stack = append(stack, n.right)
			}
			if n.left != nil {
				stack = append(stack, n.left)
			}
			return n.val, true
		})
	case InOrder:
		push(t.root)
		return iterator.New(func() (T, bool) {
			if len(stack) == 0 {
				var zero T
				return zero, false
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			val := n.val
			push(n.right)
			return val, true
		})
	default: // PostOrder
		type frame struct {
			n       *node[T]
			visited bool
		}
		frames := []frame{}
		if t.root != nil {
			frames = append(frames, frame{n: t.root})
		}
		return iterator.New(func() (T, bool) {
			for len(frames) > 0 {
				top := &frames[len(frames)-1]
				if !top.visited {
					top.visited = true
					// push right before left so left lands on top and is
					// popped (processed) first — postorder visits left,
					// then right, then the node itself.
					if top.n.right != nil {
						frames = append(frames, frame{n: top.n.right})
					}
					if top.n.left != nil {
						frames = append(frames, frame{n: top.n.left})
					}
					continue
				}
				val := top.n.val
				frames = frames[:len(frames)-1]
				return val, true
			}
			var zero T
			return zero, false
		})
	}
}

// Finalizer builds the container-specific finaliser for Tree[T]: with a
// child given, applies it post-order to every stored value.
func Finalizer[T any]() *finalizer.Node {
	return finalizer.For(func(t *Tree[T], n *finalizer.Node) {
		if len(n.Children) == 0 {
			return
		}
		child := n.Children[0]
		it := t.Iter(PostOrder)
		for it.HasNext() {
			finalizer.Finalize(it.Next(), child)
		}
	})
}
