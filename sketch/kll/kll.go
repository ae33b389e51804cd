// Package kll implements the KLL quantile summary of §4.13: a list of
// compactor buffers B_0, B_1, ... where B_h covers weight 2^h, each
// compacted into the next level once it exceeds its capacity cap_h by
// sorting, picking a parity (even/odd), and promoting every other
// element. Grounded on
// `original_source/libcocadasketch/src/kll.c`'s `kll_upd`/`_compress`/
// `kll_rank` verbatim, including the "coin persists across exactly two
// compactions, alternating parity, then a fresh draw" scheme in
// `_compress`'s `coin`/`vec_set_byte_t(coins, i, ...)` bookkeeping.
//
// One deliberate deviation from the C source: `_compress` reuses its
// raw stored byte (0, 1 or 2) directly as the promotion loop's starting
// index. When the stored byte is 2 this silently skips buffer index 0
// from promotion, and the matching "release discarded elements" loop
// computes `1 - coin` as an unsigned size_t, underflowing to a huge
// value and never executing — together dropping one element per
// other-round compaction without promoting or releasing it. spec.md
// §4.13 abstracts this as "flip the level's stored coin ... to pick
// even/odd positions", i.e. a clean 0/1 parity, which is what this
// package implements: the alternation behaviour (draw once, reuse the
// opposite parity next time, then draw again) is preserved exactly,
// but the parity used is always a real 0/1 value, so promotion and
// discard-release partition every buffer element with no silent drops.
package kll

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
)

const (
	defaultC       = 2.0 / 3.0
	defaultMinCap  = 2
	minKBigOhConst = 1.0
)

// Summary is a KLL quantile summary over values ordered by cmp, with
// target rank error err (testable property 12).
type Summary[T any] struct {
	cmp        cmpfn.Cmp[T]
	err        float64
	c          float64
	k          float64
	cap        int
	npts       int
	buffs      [][]T
	coins      []int // per-level: -1 = fresh, else the last promote parity used
	discardFnr *finalizer.Node
}

func minCapFor(err float64) float64 {
	return minKBigOhConst * (1.0 / err) * math.Sqrt(math.Log(1.0/err))
}

// New returns an empty Summary targeting rank error err, with capacity
// derived automatically (kll_new's default sizing).
func New[T any](cmp cmpfn.Cmp[T], err float64) *Summary[T] {
	k0 := minCapFor(err)
	cap := int(math.Ceil((1.0 / (1.0 - defaultC)) * k0))
	return NewWithCap[T](cmp, err, cap)
}

// NewOwning is New, additionally releasing every element a compaction
// discards (rather than promotes) through discardFnr.
func NewOwning[T any](cmp cmpfn.Cmp[T], err float64, discardFnr *finalizer.Node) *Summary[T] {
	s := New[T](cmp, err)
	s.discardFnr = discardFnr
	return s
}

// NewWithCap is New with an explicit total capacity, adjusting the
// retention constant c downward if the requested capacity is too small
// to realise the default c at the target error, per kll_new_own_with_cap.
func NewWithCap[T any](cmp cmpfn.Cmp[T], err float64, capacity int) *Summary[T] {
	if err <= 0 {
		cmpfn.Panic("kll.NewWithCap", "err must be positive, got %f", err)
	}
	capF := float64(capacity)
	if capF < defaultMinCap {
		capF = defaultMinCap
	}
	k0 := minKBigOhConst * (1.0 / err) * math.Sqrt(math.Log(1.0/err))
	if capF < 2*k0 {
		cmpfn.Panic("kll.NewWithCap", "capacity %d insufficient for error %f (need >= %d)", capacity, err, int(2*k0))
	}
	c := defaultC
	if capF*(1-c) < k0 {
		c = 1 - (k0 / capF)
	}
	k := capF * (1 - c)
	return &Summary[T]{
		cmp:   cmp,
		err:   err,
		c:     c,
		k:     k,
		cap:   int(capF),
		buffs: [][]T{nil},
		coins: []int{-1},
	}
}

// NewOwningWithCap composes NewWithCap and NewOwning.
func NewOwningWithCap[T any](cmp cmpfn.Cmp[T], err float64, capacity int, discardFnr *finalizer.Node) *Summary[T] {
	s := NewWithCap[T](cmp, err, capacity)
	s.discardFnr = discardFnr
	return s
}

func (s *Summary[T]) nlevels() int { return len(s.buffs) }

func (s *Summary[T]) capAt(i int) int {
	ret := int(s.k * math.Pow(s.c, float64(s.nlevels()-1-i)))
	if ret < 2 {
		ret = 2
	}
	return ret
}

// N returns the total number of values currently retained across all
// levels (not the number ever observed: compaction discards half of
// every compacted level).
func (s *Summary[T]) N() int { return s.npts }

func (s *Summary[T]) compress() {
	for i := 0; i < len(s.buffs); i++ {
		cap := s.capAt(i)
		buf := s.buffs[i]
		sort.Slice(buf, func(a, b int) bool { return s.cmp(buf[a], buf[b]) < 0 })
		s.buffs[i] = buf
		if len(buf) <= cap {
			continue
		}
		if i+1 == len(s.buffs) {
			s.buffs = append(s.buffs, nil)
			s.coins = append(s.coins, -1)
		}
		var parity int
		if s.coins[i] == -1 {
			parity = rand.IntN(2)
			s.coins[i] = parity
		} else {
			parity = 1 - s.coins[i]
			s.coins[i] = -1
		}
		l := len(buf)
		promoted := 0
		for j := parity; j < l; j += 2 {
			s.buffs[i+1] = append(s.buffs[i+1], buf[j])
			promoted++
		}
		s.npts -= l - promoted
		if s.discardFnr != nil {
			for j := 1 - parity; j < l; j += 2 {
				finalizer.Finalize(buf[j], s.discardFnr)
			}
		}
		s.buffs[i] = nil
	}
}

// Upd feeds a single observation into the summary, triggering however
// many cascading level compactions result.
func (s *Summary[T]) Upd(val T) {
	s.buffs[0] = append(s.buffs[0], val)
	s.npts++
	s.compress()
}

func rankInSorted[T any](buf []T, val T, cmp cmpfn.Cmp[T]) int {
	if len(buf) == 0 || cmp(buf[0], val) >= 0 {
		return 0
	}
	if cmp(buf[len(buf)-1], val) < 0 {
		return len(buf)
	}
	l, r := 0, len(buf)-1
	for r-l > 1 {
		m := (l + r) / 2
		if cmp(buf[m], val) < 0 {
			l = m
		} else {
			r = m
		}
	}
	return r
}

// Rank returns the estimated rank of val: within err*n of its true
// rank with high probability (testable property 12).
func (s *Summary[T]) Rank(val T) int {
	ret := 0
	pow := 1
	for i := 0; i < len(s.buffs); i++ {
		ret += rankInSorted(s.buffs[i], val, s.cmp) * pow
		pow *= 2
	}
	return ret
}
