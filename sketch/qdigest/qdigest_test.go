package qdigest

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQryApproximatesTrueRank(t *testing.T) {
	const (
		n   = 5000
		rng = 100000
		err = 0.05
	)
	r := rand.New(rand.NewPCG(5, 6))
	q := New(rng, err)
	vals := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v := r.IntN(rng)
		q.Upd(v, 1)
		vals = append(vals, v)
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)

	bound := int(err*float64(n)) + 50 // loose bound: approximate rank structure, not exact
	for i := 0; i < 50; i++ {
		v := vals[r.IntN(len(vals))]
		want := sort.SearchInts(sorted, v)
		got := q.Qry(v)
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, bound, "Qry(%d): got %d want ~%d", v, got, want)
	}
	require.Equal(t, n, q.N())
}

func TestUpdWithQuantityAccumulates(t *testing.T) {
	q := New(100, 0.1)
	q.Upd(10, 5)
	q.Upd(20, 3)
	require.Equal(t, 8, q.N())
	require.Equal(t, 0, q.Qry(10))
	// cap is 1 here, so value 10's five units are spread one per node
	// down its root-to-leaf path; Qry(20) only counts the [0,12)
	// subtree (2 units), not the ancestors whose ranges also cover 20.
	require.Equal(t, 2, q.Qry(20))
}

func TestOutOfRangeValueIgnored(t *testing.T) {
	q := New(100, 0.1)
	q.Upd(10, 1)
	q.Upd(1000, 1) // out of [0,100], ignored with a warning
	require.Equal(t, 1, q.N())
}

func TestEmptyQueryIsZero(t *testing.T) {
	q := New(100, 0.1)
	require.Equal(t, 0, q.Qry(50))
}
