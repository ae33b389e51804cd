// Package ordmap implements the ordered map of §3 ("Ordered map") as
// two interchangeable backings — AVLMap over container/avl and
// SkipListMap over container/skiplist — both storing a packed
// {Key,Val} entry ordered solely by Key, grounded on
// `original_source/libcocada/src/container/avlordmap.c`/`slordmap.c`.
//
// The §9 Open Question ("does set on an existing key overwrite the
// value while keeping the original key, or replace the whole entry?")
// is resolved per avlordmap.c's avlordmap_set / slordmap.c's
// slordmap_set: both check membership first and, on a hit, update only
// the value slot of the existing entry in place — never reinserting or
// replacing the key. Go's Set below therefore calls the tree's Upd, not
// Ins, on a hit, mirroring avl.Tree.Upd / skiplist.SkipList.Upd (added
// to those packages expressly to give this component a faithful entry
// point rather than a delete+reinsert workaround.)
package ordmap

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/container/avl"
	"github.com/paguso/cocada-go/container/skiplist"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/paguso/cocada-go/iterator"
)

// Entry is a stored key/value pair, returned by Iter.
type Entry[K, V any] struct {
	Key K
	Val V
}

func entryCmp[K, V any](keyCmp cmpfn.Cmp[K]) cmpfn.Cmp[Entry[K, V]] {
	return func(a, b Entry[K, V]) int { return keyCmp(a.Key, b.Key) }
}

// AVLMap is an ordered K->V map backed by an AVL tree.
type AVLMap[K, V any] struct {
	tree *avl.Tree[Entry[K, V]]
}

// NewAVL returns an empty AVLMap ordered by keyCmp.
func NewAVL[K, V any](keyCmp cmpfn.Cmp[K]) *AVLMap[K, V] {
	return &AVLMap[K, V]{tree: avl.New[Entry[K, V]](entryCmp[K, V](keyCmp))}
}

// Len returns the number of stored keys.
func (m *AVLMap[K, V]) Len() int { return m.tree.Len() }

// Empty reports whether the map holds no keys.
func (m *AVLMap[K, V]) Empty() bool { return m.tree.Empty() }

// Contains reports whether key is present.
func (m *AVLMap[K, V]) Contains(key K) bool {
	_, ok := m.tree.Get(Entry[K, V]{Key: key})
	return ok
}

// Get returns the value stored for key, and whether key was found.
func (m *AVLMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.tree.Get(Entry[K, V]{Key: key})
	return e.Val, ok
}

// Set inserts key->val, or overwrites the value of an existing key
// in place (the key itself is never touched on a hit).
func (m *AVLMap[K, V]) Set(key K, val V) {
	entry := Entry[K, V]{Key: key, Val: val}
	if !m.tree.Ins(entry) {
		old, _ := m.tree.Get(entry)
		m.tree.Upd(entry, Entry[K, V]{Key: old.Key, Val: val})
	}
}

// Del removes key if present, returning its value and true; otherwise
// the zero value and false.
func (m *AVLMap[K, V]) Del(key K) (V, bool) {
	e, ok := m.tree.Del(Entry[K, V]{Key: key})
	return e.Val, ok
}

// Iter returns a single-pass in-order iterator over the map's entries.
func (m *AVLMap[K, V]) Iter() iterator.Iterator[Entry[K, V]] {
	return m.tree.Iter(avl.InOrder)
}

// Finalizer builds the container-specific finaliser for AVLMap[K,V]: a
// first child finalises every key, a second every value (mirroring
// avlordmap_finalise's key_fnr/val_fnr split).
func Finalizer[K, V any]() *finalizer.Node {
	return finalizer.For(func(m *AVLMap[K, V], n *finalizer.Node) {
		var keyChild, valChild *finalizer.Node
		if len(n.Children) > 0 {
			keyChild = n.Children[0]
		}
		if len(n.Children) > 1 {
			valChild = n.Children[1]
		}
		if keyChild == nil && valChild == nil {
			return
		}
		it := m.Iter()
		for it.HasNext() {
			e := it.Next()
			if keyChild != nil {
				finalizer.Finalize(e.Key, keyChild)
			}
			if valChild != nil {
				finalizer.Finalize(e.Val, valChild)
			}
		}
	})
}

// SkipListMap is an ordered K->V map backed by a skip list.
type SkipListMap[K, V any] struct {
	list *skiplist.SkipList[Entry[K, V]]
}

// NewSkipList returns an empty SkipListMap ordered by keyCmp.
func NewSkipList[K, V any](keyCmp cmpfn.Cmp[K]) *SkipListMap[K, V] {
	return &SkipListMap[K, V]{list: skiplist.New[Entry[K, V]](entryCmp[K, V](keyCmp))}
}

// Len returns the number of stored keys.
func (m *SkipListMap[K, V]) Len() int { return m.list.Len() }

// Empty reports whether the map holds no keys.
func (m *SkipListMap[K, V]) Empty() bool { return m.list.Empty() }

// Contains reports whether key is present.
func (m *SkipListMap[K, V]) Contains(key K) bool {
	_, ok := m.list.Get(Entry[K, V]{Key: key})
	return ok
}

// Get returns the value stored for key, and whether key was found.
func (m *SkipListMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.list.Get(Entry[K, V]{Key: key})
	return e.Val, ok
}

// Set inserts key->val, or overwrites the value of an existing key
// in place (the key itself is never touched on a hit).
func (m *SkipListMap[K, V]) Set(key K, val V) {
	entry := Entry[K, V]{Key: key, Val: val}
	if !m.list.Ins(entry) {
		old, _ := m.list.Get(entry)
		m.list.Upd(entry, Entry[K, V]{Key: old.Key, Val: val})
	}
}

// Del removes key if present, returning its value and true; otherwise
// the zero value and false.
func (m *SkipListMap[K, V]) Del(key K) (V, bool) {
	e, ok := m.list.Del(Entry[K, V]{Key: key})
	return e.Val, ok
}

// Iter returns a single-pass ascending iterator over the map's entries.
func (m *SkipListMap[K, V]) Iter() iterator.Iterator[Entry[K, V]] {
	return m.list.Iter()
}

// FinalizerSkipList builds the container-specific finaliser for
// SkipListMap[K,V], mirroring slordmap_finalise's key/value split.
func FinalizerSkipList[K, V any]() *finalizer.Node {
	return finalizer.For(func(m *SkipListMap[K, V], n *finalizer.Node) {
		var keyChild, valChild *finalizer.Node
		if len(n.Children) > 0 {
			keyChild = n.Children[0]
		}
		if len(n.Children) > 1 {
			valChild = n.Children[1]
		}
		if keyChild == nil && valChild == nil {
			return
		}
		it := m.Iter()
		for it.HasNext() {
			e := it.Next()
			if keyChild != nil {
				finalizer.Finalize(e.Key, keyChild)
			}
			if valChild != nil {
				finalizer.Finalize(e.Val, valChild)
			}
		}
	})
}
