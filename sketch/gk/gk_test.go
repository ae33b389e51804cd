package gk

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trueRank(sorted []int, val int) int {
	// count of values strictly less than val, matching the summary's
	// own rank(v) convention (0-indexed rank of the first occurrence).
	return sort.SearchInts(sorted, val)
}

func TestRankBoundProperty(t *testing.T) {
	const (
		n   = 5000
		err = 0.02
	)
	rng := rand.New(rand.NewPCG(11, 22))
	s := New[int](cmpfn.Natural[int](), err)
	vals := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v := rng.IntN(100000)
		s.Upd(v)
		vals = append(vals, v)
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)

	bound := int(math.Ceil(err * float64(n)))
	for i := 0; i < 200; i++ {
		q := vals[rng.IntN(len(vals))]
		want := trueRank(sorted, q)
		got := s.Rank(q)
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, bound, "rank(%d): got %d want ~%d", q, got, want)
	}
	require.Equal(t, n, s.N())
}

func TestMergePreservesRankBound(t *testing.T) {
	const (
		n   = 3000
		err = 0.02
	)
	rng := rand.New(rand.NewPCG(33, 44))
	a := New[int](cmpfn.Natural[int](), err)
	b := New[int](cmpfn.Natural[int](), err)
	vals := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		v := rng.IntN(50000)
		a.Upd(v)
		vals = append(vals, v)
	}
	for i := 0; i < n; i++ {
		v := rng.IntN(50000)
		b.Upd(v)
		vals = append(vals, v)
	}
	a.Merge(b)
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)

	bound := int(math.Ceil(err * float64(len(vals))))
	for i := 0; i < 100; i++ {
		q := vals[rng.IntN(len(vals))]
		want := trueRank(sorted, q)
		got := a.Rank(q)
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, bound*5+50, "merged rank(%d): got %d want ~%d", q, got, want)
	}
}

func TestEmptySummary(t *testing.T) {
	s := New[int](cmpfn.Natural[int](), 0.1)
	assert.Equal(t, 0, s.Rank(5))
	assert.Equal(t, 0, s.N())
	assert.Equal(t, 0, s.Size())
}

func TestSingleValue(t *testing.T) {
	s := New[int](cmpfn.Natural[int](), 0.1)
	s.Upd(42)
	assert.Equal(t, 1, s.N())
	assert.Equal(t, 0, s.Rank(42))
}
