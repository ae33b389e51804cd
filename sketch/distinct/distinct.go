// Package distinct implements the FM (Flajolet-Martin) and BJKST
// distinct-count sketches of §4.14, grounded directly on
// `original_source/src/streaming/fmalg.c`/`fmalg.h` and
// `original_source/src/streaming/bjkst.c`/`bjkst.h` (both survived the
// source filter in full, despite an earlier pass in this module wrongly
// claiming otherwise and building off `fmalgtest.c` plus generic
// literature instead — see DESIGN.md).
//
// `fmalg` is a stochastic-averaging estimator: `n` independent hash
// functions are grouped into `m` groups; within a group, `pow_avg`
// averages 2^(max trailing-zero count) across the group's n functions,
// and the final estimate is the median of the m groups' averages
// (`fmalg_query`'s `pow_avg` + `median_ldouble`) — robust to any single
// group's outliers in a way a flat mean-then-exponentiate estimator is
// not.
//
// `bjkst` buckets retained hash values by trailing-zero count in
// `nbits+1` dedup sets; on buffer overflow it evicts whole buckets
// starting at the lowest retained zero-count and raises that floor
// (`min_zeros`) until the buffer fits; `bjkst_qry` rescans from
// `min_zeros` upward for the first nonempty bucket before estimating
// `buf_size * 2^min_nonempty_zeros`, so a query immediately after an
// eviction round that empties the lowest surviving bucket still reports
// against the true lowest nonempty level, not a stale floor.
package distinct

import (
	"math/bits"
	"sort"

	"github.com/paguso/cocada-go/container/hashmap"
	"github.com/paguso/cocada-go/corelog"
	"github.com/paguso/cocada-go/hashfn"
)

// lobit returns the 0-based index of v's lowest set bit (its trailing
// zero count), matching `uint64_lobit`. lobit(0) has no set bit; fmalg
// and bjkst both cap the result against a universe bound immediately
// after calling it, so this returns 64 and leaves the caller's MIN to
// clamp it, exactly as the C source's byte_t overflow-free bound does.
func lobit(v uint64) int {
	if v == 0 {
		return 64
	}
	return bits.TrailingZeros64(v)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FM is a Flajolet-Martin distinct-count sketch using `m` independent
// groups of `n` hash functions each (`fmalg_init`'s (maxval, n, m)).
type FM struct {
	n, m   int
	p2ceil int // cap on any single hash's lobit, ceil(log2(maxval))
	hashes [][]hashfn.Hash[uint64]
	maxlsb [][]int
}

// NewFM returns an FM sketch over values in [0,maxval), using n
// independent hash functions per group and m groups (`fmalg_init`).
func NewFM(maxval uint64, n, m int) *FM {
	if n < 1 {
		n = 1
	}
	if m < 1 {
		m = 1
	}
	p2ceil := 0
	for (uint64(1) << uint(p2ceil)) < maxval {
		p2ceil++
	}
	hashes := make([][]hashfn.Hash[uint64], m)
	maxlsb := make([][]int, m)
	seed := uint64(1)
	for i := 0; i < m; i++ {
		hashes[i] = make([]hashfn.Hash[uint64], n)
		maxlsb[i] = make([]int, n)
		for j := 0; j < n; j++ {
			hashes[i][j] = hashfn.Seeded(seed)
			seed = seed*0x9E3779B97F4A7C15 + 1
		}
	}
	return &FM{n: n, m: m, p2ceil: p2ceil, hashes: hashes, maxlsb: maxlsb}
}

// NewFMSingle is `fmalg_init_single`: a single hash function, no
// grouping (n=m=1).
func NewFMSingle(maxval uint64) *FM {
	return NewFM(maxval, 1, 1)
}

// Process feeds one observed value through every (group, hash function)
// pair, updating each pair's maximum trailing-zero-count counter.
func (f *FM) Process(val uint64) {
	for i := 0; i < f.m; i++ {
		for j := 0; j < f.n; j++ {
			lsb := minInt(f.p2ceil, lobit(f.hashes[i][j](val)))
			f.maxlsb[i][j] = maxInt(lsb, f.maxlsb[i][j])
		}
	}
}

// powAvg averages 2^v across vals (`pow_avg`): the group estimator that
// makes fmalg a stochastic-averaging sketch rather than a flat
// mean-of-logs one.
func powAvg(vals []int, n int) float64 {
	var acc float64
	for _, v := range vals {
		acc += float64(uint64(1) << uint(v))
	}
	return acc / float64(n)
}

// median returns the median of vals (copied and sorted; `median_ldouble`).
func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Query returns the current distinct-count estimate: the median, across
// the m groups, of each group's average of 2^(max trailing-zero count)
// (`fmalg_query`).
func (f *FM) Query() uint64 {
	avgs := make([]float64, f.m)
	for i := 0; i < f.m; i++ {
		avgs[i] = powAvg(f.maxlsb[i], f.n)
	}
	return uint64(median(avgs))
}

// BJKST is a Bar-Yossef/Jayram/Kumar/Sivakumar/Trevisan distinct-count
// sketch: a per-trailing-zero-count bank of dedup sets, bounded by a
// total buffer capacity and a rising "floor" (minZeros) below which
// hash values are rejected outright (`bjkst_init`/`bjkst_process`/
// `bjkst_qry`).
type BJKST struct {
	hash     hashfn.Hash[uint64]
	nbits    int
	maxVal   uint64
	bufCap   int
	bufSize  int
	minZeros int
	buckets  []*hashmap.Map[uint64, struct{}]
}

func newBucket() *hashmap.Map[uint64, struct{}] {
	return hashmap.New[uint64, struct{}](hashfn.Uint64, func(a, b uint64) bool { return a == b })
}

// NewBJKST returns a BJKST sketch over nbits-bit values (range
// [0,2^nbits)), targeting relative error eps with failure probability
// delta (`bjkst_init`'s signature; delta is accepted for contract
// fidelity — the source's own `get_buf_cap` does not use it either).
func NewBJKST(nbits int, eps, delta float64, seed uint64) *BJKST {
	if nbits < 1 {
		nbits = 1
	}
	buckets := make([]*hashmap.Map[uint64, struct{}], nbits+1)
	for i := range buckets {
		buckets[i] = newBucket()
	}
	bufCap := int(1.0 / (eps * eps))
	if bufCap < 1 {
		bufCap = 1
	}
	return &BJKST{
		hash:    hashfn.Seeded(seed),
		nbits:   nbits,
		maxVal:  uint64(1) << uint(nbits),
		bufCap:  bufCap,
		buckets: buckets,
	}
}

// Process feeds one observed value through the sketch (`bjkst_process`).
// val outside [0,2^nbits) is reported with a warning but still hashed
// and processed, matching the source's own WARN_ASSERT (a log, not a
// halt).
func (b *BJKST) Process(val uint64) {
	if val >= b.maxVal {
		corelog.WarnOutOfUniverse("distinct.BJKST.Process", int64(val), int64(b.maxVal))
	}
	hval := b.hash(val) & (b.maxVal - 1)
	zeros := minInt(lobit(hval), b.nbits)
	if zeros < b.minZeros || b.buckets[zeros].Contains(hval) {
		return
	}
	for b.bufSize >= b.bufCap {
		b.bufSize -= b.buckets[b.minZeros].Len()
		b.buckets[b.minZeros] = newBucket()
		b.minZeros++
		if b.minZeros > b.nbits {
			break
		}
	}
	if zeros < b.minZeros {
		return
	}
	b.buckets[zeros].Ins(hval, struct{}{})
	b.bufSize++
}

// Query returns the current distinct-count estimate: `bufSize` scaled
// by 2 to the power of the lowest currently-nonempty bucket at or above
// minZeros (`bjkst_qry`, rescanning rather than trusting a possibly
// stale minZeros directly).
func (b *BJKST) Query() uint64 {
	z := b.minZeros
	for z < b.nbits && b.buckets[z].Len() == 0 {
		z++
	}
	return uint64(b.bufSize) << uint(z)
}
