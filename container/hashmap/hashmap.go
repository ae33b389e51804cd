// Package hashmap implements the open-addressed hash table of §4.7:
// linear probing over a flat slot array, tombstones for lazy deletion,
// and a `Remove` "remove_taking" idiom that hands the caller back both
// the stored key and value. Grounded on
// `original_source/libcocada/src/container/hashmap.h`'s contract
// (`hashmap_ins` overwrites on duplicate key, `hashmap_remv` returns the
// removed key+value, `hashmap_fit` shrinks to the live load) — no
// `hashmap.c` survived the source filter, so the open-addressing probe
// sequence itself follows the design's own §4.7 algorithm description,
// and key-hash plumbing style borrows from
// `other_examples/31081011_aristanetworks-goarista__hash-map.go.go`.
package hashmap

import (
	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/paguso/cocada-go/hashfn"
	"github.com/paguso/cocada-go/iterator"
)

const (
	growLoad   = 0.75 // rehash-grow threshold
	shrinkLoad = 0.25 // Fit/auto-shrink threshold
	capMin     = 8
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotFull
	slotTomb
)

type entry[K, V any] struct {
	key   K
	val   V
	state slotState
}

// Map is an open-addressed K->V hash table.
type Map[K, V any] struct {
	slots []entry[K, V]
	n     int // live entries
	tombs int
	hash  hashfn.Hash[K]
	eq    cmpfn.Eq[K]
}

// New returns an empty Map using hash for key hashing and eq for key
// equality. Every pair of keys eq considers equal must hash to the same
// value, per §6's Hash/Eq consistency contract.
func New[K, V any](hash hashfn.Hash[K], eq cmpfn.Eq[K]) *Map[K, V] {
	return NewWithCapacity[K, V](hash, eq, capMin)
}

// NewWithCapacity is New but pre-sizes the table for at least minCapacity
// entries before the first rehash.
func NewWithCapacity[K, V any](hash hashfn.Hash[K], eq cmpfn.Eq[K], minCapacity int) *Map[K, V] {
	cap := capMin
	for cap < minCapacity {
		cap *= 2
	}
	return &Map[K, V]{slots: make([]entry[K, V], cap), hash: hash, eq: eq}
}

// Len returns the number of stored associations.
func (m *Map[K, V]) Len() int { return m.n }

// Empty reports whether the map holds no associations.
func (m *Map[K, V]) Empty() bool { return m.n == 0 }

func (m *Map[K, V]) probeStart(key K) int {
	return int(m.hash(key) % uint64(len(m.slots)))
}

// find returns the slot index holding key if present, and ok=true; else
// returns the first empty-or-tombstone slot a subsequent Ins should use,
// and ok=false.
func (m *Map[K, V]) find(key K) (idx int, ok bool) {
	n := len(m.slots)
	i := m.probeStart(key)
	firstFree := -1
	for probed := 0; probed < n; probed++ {
		s := &m.slots[i]
		switch s.state {
		case slotEmpty:
			if firstFree == -1 {
				firstFree = i
			}
			return firstFree, false
		case slotTomb:
			if firstFree == -1 {
				firstFree = i
			}
		case slotFull:
			if m.eq(s.key, key) {
				return i, true
			}
		}
		i = (i + 1) % n
	}
	return firstFree, false
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Get returns the value associated with key, and whether key was found.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, ok := m.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.slots[idx].val, true
}

// GetMut returns a pointer to the value associated with key for
// in-place mutation, or nil if key is absent. Invalidated by any
// operation that rehashes (Ins past the grow threshold, Fit).
func (m *Map[K, V]) GetMut(key K) *V {
	idx, ok := m.find(key)
	if !ok {
		return nil
	}
	return &m.slots[idx].val
}

func (m *Map[K, V]) loadFactor() float64 {
	return float64(m.n+m.tombs) / float64(len(m.slots))
}

func (m *Map[K, V]) rehash(newCap int) {
	if newCap < capMin {
		newCap = capMin
	}
	old := m.slots
	m.slots = make([]entry[K, V], newCap)
	m.tombs = 0
	for _, s := range old {
		if s.state == slotFull {
			idx, _ := m.find(s.key)
			m.slots[idx] = entry[K, V]{key: s.key, val: s.val, state: slotFull}
		}
	}
}

// Ins associates key with val, overwriting any previously stored value
// for an equal key (per `hashmap_ins`'s documented overwrite semantics).
// Returns true if this inserted a brand-new key, false if it overwrote
// an existing one.
func (m *Map[K, V]) Ins(key K, val V) bool {
	if m.loadFactor() >= growLoad {
		m.rehash(len(m.slots) * 2)
	}
	idx, found := m.find(key)
	if found {
		m.slots[idx].val = val
		return false
	}
	if m.slots[idx].state == slotTomb {
		m.tombs--
	}
	m.slots[idx] = entry[K, V]{key: key, val: val, state: slotFull}
	m.n++
	return true
}

// Remove deletes the association for key, if present, returning the
// removed key and value and true; otherwise the zero values and false
// (the "remove_taking" idiom of `hashmap_remv`: the caller receives the
// evicted key/value so it can finalise them explicitly).
func (m *Map[K, V]) Remove(key K) (K, V, bool) {
	idx, ok := m.find(key)
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}
	k, v := m.slots[idx].key, m.slots[idx].val
	m.slots[idx] = entry[K, V]{state: slotTomb}
	m.n--
	m.tombs++
	m.maybeAutoShrink()
	return k, v, true
}

// Del deletes the association for key, if present; a no-op miss is
// silent, matching `hashmap_del`'s documented "no effect" contract.
func (m *Map[K, V]) Del(key K) {
	m.Remove(key)
}

// Fit shrinks the backing table to the smallest power-of-two capacity
// (at least capMin) that keeps the load factor under growLoad for the
// current live count — the Go analogue of `hashmap_fit`.
func (m *Map[K, V]) Fit() {
	newCap := capMin
	for float64(m.n) >= float64(newCap)*growLoad {
		newCap *= 2
	}
	m.rehash(newCap)
}

func (m *Map[K, V]) maybeAutoShrink() {
	if len(m.slots) <= capMin {
		return
	}
	if float64(m.n) >= float64(len(m.slots))*shrinkLoad {
		return
	}
	m.Fit()
}

// Entry is a single key/value pair as returned by Iter, mirroring
// `hashmap_entry`.
type Entry[K, V any] struct {
	Key K
	Val V
}

// Iter returns a single-pass iterator over the map's entries, in
// unspecified slot order.
func (m *Map[K, V]) Iter() iterator.Iterator[Entry[K, V]] {
	i := 0
	return iterator.New(func() (Entry[K, V], bool) {
		for i < len(m.slots) {
			s := m.slots[i]
			i++
			if s.state == slotFull {
				return Entry[K, V]{Key: s.key, Val: s.val}, true
			}
		}
		var zero Entry[K, V]
		return zero, false
	})
}

// Finalizer builds the container-specific finaliser for Map[K,V]: one
// child finalises every key, a second (if present) every value, per
// `hashmap_finalise`'s documented one-or-two-children convention.
func Finalizer[K, V any]() *finalizer.Node {
	return finalizer.For(func(m *Map[K, V], n *finalizer.Node) {
		if len(n.Children) == 0 {
			return
		}
		keyChild := n.Children[0]
		var valChild *finalizer.Node
		if len(n.Children) > 1 {
			valChild = n.Children[1]
		}
		for _, s := range m.slots {
			if s.state != slotFull {
				continue
			}
			finalizer.Finalize(s.key, keyChild)
			if valChild != nil {
				finalizer.Finalize(s.val, valChild)
			}
		}
	})
}
