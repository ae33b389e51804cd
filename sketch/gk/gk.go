// Package gk implements the Greenwald–Khanna ε-approximate quantile
// summary of §4.12: an ordered list of tuples (v, g, δ) with a
// conceptual terminal (+∞, 1, 0) sentinel and a running total n, kept
// compressed to O((1/ε)·log(εn)) tuples. Grounded on
// `original_source/libcocadasketch/src/gk.c`'s `gk_upd`/`gk_merge`/
// `gk_rank` verbatim.
//
// The C source's sentinel is a real element of the backing vec whose
// bytes are memset to all-ones — a trick that has no generic
// equivalent for an arbitrary T in Go. This package instead keeps only
// real tuples in a slice and tracks the sentinel's (g, δ) = (sentQty,
// 0) out of band, with every index-based helper (succ/getQty/setQty)
// treating index len(tuples) as "the sentinel" — numerically identical
// bookkeeping, without ever materialising a fake maximal T value.
package gk

import (
	"math"

	"github.com/paguso/cocada-go/cmpfn"
)

type tuple[T any] struct {
	val   T
	g     int
	delta int
}

// Summary is a Greenwald-Khanna quantile summary over values ordered
// by cmp, with target rank error err (0 < err < 1).
type Summary[T any] struct {
	cmp     cmpfn.Cmp[T]
	err     float64
	n       int
	tuples  []tuple[T]
	sentQty int
}

// New returns an empty Summary with the given comparator and target
// error bound err.
func New[T any](cmp cmpfn.Cmp[T], err float64) *Summary[T] {
	return &Summary[T]{cmp: cmp, err: err, sentQty: 1}
}

// N returns the total number of values observed.
func (s *Summary[T]) N() int { return s.n }

// Size returns the number of tuples currently retained (excluding the
// sentinel), the summary's actual memory footprint.
func (s *Summary[T]) Size() int { return len(s.tuples) }

func (s *Summary[T]) cmpAt(val T, i int) int {
	if i == len(s.tuples) {
		return -1
	}
	return s.cmp(val, s.tuples[i].val)
}

// succ mirrors gk.c's static succ: the smallest index i (0..len(tuples),
// len(tuples) meaning the sentinel) such that val is strictly less than
// the tuple at i, found by binary search exactly as the source does.
func (s *Summary[T]) succ(val T) int {
	n := len(s.tuples)
	if n == 0 || s.cmpAt(val, 0) < 0 {
		return 0
	}
	l, r := 0, n
	for r-l > 1 {
		m := (l + r) / 2
		if s.cmpAt(val, m) < 0 {
			r = m
		} else {
			l = m
		}
	}
	return r
}

func (s *Summary[T]) getQty(i int) (g, delta int) {
	if i == len(s.tuples) {
		return s.sentQty, 0
	}
	return s.tuples[i].g, s.tuples[i].delta
}

func (s *Summary[T]) setQty(i, g, delta int) {
	if i == len(s.tuples) {
		s.sentQty = g
		return
	}
	s.tuples[i].g = g
	s.tuples[i].delta = delta
}

func (s *Summary[T]) insertAt(i int, val T, g, delta int) {
	s.tuples = append(s.tuples, tuple[T]{})
	copy(s.tuples[i+1:], s.tuples[i:len(s.tuples)-1])
	s.tuples[i] = tuple[T]{val: val, g: g, delta: delta}
}

func (s *Summary[T]) removeAt(i int) {
	copy(s.tuples[i:], s.tuples[i+1:])
	s.tuples = s.tuples[:len(s.tuples)-1]
}

// Upd feeds a single observation into the summary.
func (s *Summary[T]) Upd(val T) {
	s.n++
	succPos := s.succ(val)
	g, delta := s.getQty(succPos)
	qtyThres := int(math.Ceil(2.0 * s.err * float64(s.n)))
	if g+delta+1 < qtyThres {
		s.setQty(succPos, g+1, delta)
		return
	}
	s.insertAt(succPos, val, 1, g+delta-1)
	ithG, _ := s.getQty(0)
	for i := 0; i < len(s.tuples)-1; i++ {
		ip1G, ip1Delta := s.getQty(i + 1)
		if ithG+ip1G+ip1Delta < qtyThres {
			s.setQty(i+1, ip1G+ithG, ip1Delta)
			s.removeAt(i)
			break
		}
		ithG = ip1G
	}
}

// Merge absorbs other's observations into s, per gk.c's gk_merge: a
// linear merge of the two tuple sequences followed by one compression
// pass. Both summaries must share a comparator and error bound.
func (s *Summary[T]) Merge(other *Summary[T]) {
	i, j := 0, 0
	iG, iDelta := s.getQty(i)
	jG, jDelta := other.getQty(j)
	for i < len(s.tuples) && j < len(other.tuples) {
		if s.cmp(s.valAt(i), other.valAt(j)) <= 0 {
			s.setQty(i, iG, iDelta+jG+jDelta-1)
			i++
			iG, iDelta = s.getQty(i)
		} else {
			s.insertAt(i, other.valAt(j), jG, jDelta+iG+iDelta-1)
			i++
			iG, iDelta = s.getQty(i)
			j++
			jG, jDelta = other.getQty(j)
		}
	}
	for j < len(other.tuples) {
		s.insertAt(i, other.valAt(j), jG, jDelta)
		i++
		j++
		jG, jDelta = other.getQty(j)
	}
	s.n += other.n
	qtyThres := int(math.Ceil(2.0 * s.err * float64(s.n)))
	i = 0
	for i < len(s.tuples) {
		ithG, _ := s.getQty(i)
		ip1G, ip1Delta := s.getQty(i + 1)
		if ithG+ip1G+ip1Delta < qtyThres {
			s.setQty(i+1, ip1G+ithG, ip1Delta)
			s.removeAt(i)
		} else {
			i++
		}
	}
}

func (s *Summary[T]) valAt(i int) T { return s.tuples[i].val }

// Rank returns the estimated rank of val: within ⌈ε·n⌉ of its true
// rank in the observed stream (testable property 11).
func (s *Summary[T]) Rank(val T) int {
	if len(s.tuples) == 0 {
		return 0
	}
	succPos := s.succ(val)
	g, delta := s.getQty(succPos)
	sum := 0
	for i := 0; i < succPos; i++ {
		sum += s.tuples[i].g
	}
	return sum - 1 + (g+delta)/2
}
