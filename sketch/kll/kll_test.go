package kll

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/finalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalizerFor(counts map[int]int) *finalizer.Node {
	return finalizer.For(func(v int, n *finalizer.Node) {
		counts[v]++
	})
}

func trueRank(sorted []int, val int) int {
	return sort.SearchInts(sorted, val)
}

func TestRankBoundProperty(t *testing.T) {
	const (
		n   = 20000
		err = 0.05
	)
	rngVals := rand.New(rand.NewPCG(101, 202))
	s := New[int](cmpfn.Natural[int](), err)
	vals := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v := rngVals.IntN(1_000_000)
		s.Upd(v)
		vals = append(vals, v)
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)

	// KLL is probabilistic (random coin per compaction), so the
	// acceptable slack is wider than GK's deterministic bound; this
	// still catches any gross accounting error (lost/duplicated weight).
	bound := int(math.Ceil(err*float64(n))) + int(math.Sqrt(float64(n)))
	var worst int
	for i := 0; i < 300; i++ {
		q := vals[rngVals.IntN(len(vals))]
		want := trueRank(sorted, q)
		got := s.Rank(q)
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		if diff > worst {
			worst = diff
		}
	}
	require.LessOrEqual(t, worst, bound, "worst rank error %d exceeds bound %d", worst, bound)
}

func TestEmptySummary(t *testing.T) {
	s := New[int](cmpfn.Natural[int](), 0.1)
	assert.Equal(t, 0, s.N())
	assert.Equal(t, 0, s.Rank(5))
}

func TestSingleValue(t *testing.T) {
	s := New[int](cmpfn.Natural[int](), 0.1)
	s.Upd(42)
	assert.Equal(t, 1, s.N())
	assert.Equal(t, 0, s.Rank(42))
	assert.Equal(t, 1, s.Rank(43))
}

func TestCompactionCascadesAndNeverExceedsCapacity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	s := New[int](cmpfn.Natural[int](), 0.1)
	for i := 0; i < 50000; i++ {
		s.Upd(rng.IntN(1 << 20))
		for lvl, buf := range s.buffs {
			require.LessOrEqual(t, len(buf), s.capAt(lvl)+1,
				"level %d holds %d elements, cap %d", lvl, len(buf), s.capAt(lvl))
		}
	}
	require.Greater(t, len(s.buffs), 1, "expected compaction to have created further levels")
}

func TestNewWithCapRejectsTooSmallCapacity(t *testing.T) {
	assert.Panics(t, func() {
		NewWithCap[int](cmpfn.Natural[int](), 0.01, 2)
	})
}

func TestOwningReleasesDiscardedElements(t *testing.T) {
	released := map[int]int{}
	fnr := finalizerFor(released)
	s := NewOwningWithCap[int](cmpfn.Natural[int](), 0.2, 16, fnr)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		s.Upd(rng.IntN(500))
	}
	total := 0
	for _, c := range released {
		total += c
	}
	require.Greater(t, total, 0, "expected some discarded elements to be released")
}
