package avl

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioInsertWorkedExample(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	for _, v := range []int{10, 20, 30, 40, 50, 25} {
		require.True(t, tr.Ins(v))
	}
	assert.Equal(t, []int{10, 20, 25, 30, 40, 50}, collectInOrder(tr))
	assert.LessOrEqual(t, tr.Height(), 3)
	assertBalanced(t, tr.root)
}

func TestInsertDuplicateNoOp(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	require.True(t, tr.Ins(5))
	require.False(t, tr.Ins(5))
	assert.Equal(t, 1, tr.Len())
}

func TestUpdOverwritesExistingValueOnly(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	tr.Ins(5)
	tr.Ins(3)
	tr.Ins(8)
	assert.True(t, tr.Upd(5, 5))
	assert.Equal(t, 3, tr.Len())
	assert.False(t, tr.Upd(99, 99))
	assert.Equal(t, []int{3, 5, 8}, collectInOrder(tr))
}

func TestGetContains(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		tr.Ins(v)
	}
	v, ok := tr.Get(5)
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	_, ok = tr.Get(42)
	assert.False(t, ok)
	assert.True(t, tr.Contains(9))
	assert.False(t, tr.Contains(42))
}

func TestDeleteLeafAndInternal(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	for _, v := range []int{10, 20, 30, 40, 50, 25} {
		tr.Ins(v)
	}
	removed, ok := tr.Del(25)
	assert.True(t, ok)
	assert.Equal(t, 25, removed)
	assert.False(t, tr.Contains(25))
	assertBalanced(t, tr.root)

	_, ok = tr.Del(999)
	assert.False(t, ok)

	removed, ok = tr.Del(30)
	assert.True(t, ok)
	assert.Equal(t, 30, removed)
	assert.False(t, tr.Contains(30))
	assertBalanced(t, tr.root)
	assert.Equal(t, []int{10, 20, 40, 50}, collectInOrder(tr))
}

func TestTraversalOrders(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	for _, v := range []int{2, 1, 3} {
		tr.Ins(v)
	}
	// tree shape after these 3 inserts is a perfectly balanced root=2
	assert.Equal(t, []int{1, 2, 3}, collect(tr, InOrder))
	assert.Equal(t, []int{2, 1, 3}, collect(tr, PreOrder))
	assert.Equal(t, []int{1, 3, 2}, collect(tr, PostOrder))
}

// TestAgainstBruteForce inserts and deletes a randomised sequence of
// keys, checking after every operation that the tree's in-order
// sequence matches a sorted reference set and that every node remains
// height-balanced — the design's balance invariant (testable property
// 3).
func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tr := New[int](cmpfn.Natural[int]())
	ref := map[int]bool{}

	for i := 0; i < 3000; i++ {
		v := rng.IntN(500)
		if rng.IntN(2) == 0 {
			wantInserted := !ref[v]
			got := tr.Ins(v)
			require.Equal(t, wantInserted, got)
			ref[v] = true
		} else {
			wantOk := ref[v]
			_, got := tr.Del(v)
			require.Equal(t, wantOk, got)
			delete(ref, v)
		}
		assertBalanced(t, tr.root)
		require.Equal(t, len(ref), tr.Len())
	}

	want := make([]int, 0, len(ref))
	for k := range ref {
		want = append(want, k)
	}
	sort.Ints(want)
	assert.Equal(t, want, collectInOrder(tr))
}

func TestEmptyTree(t *testing.T) {
	tr := New[int](cmpfn.Natural[int]())
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Height())
	_, ok := tr.Get(1)
	assert.False(t, ok)
	_, ok = tr.Del(1)
	assert.False(t, ok)
	assert.Empty(t, collectInOrder(tr))
}

func collectInOrder(tr *Tree[int]) []int {
	return collect(tr, InOrder)
}

func collect(tr *Tree[int], order Order) []int {
	out := []int{}
	it := tr.Iter(order)
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

func assertBalanced(t *testing.T, n *node[int]) int {
	t.Helper()
	if n == nil {
		return 0
	}
	lh := assertBalanced(t, n.left)
	rh := assertBalanced(t, n.right)
	diff := rh - lh
	require.True(t, diff >= -1 && diff <= 1, "balance factor %d out of range", diff)
	require.EqualValues(t, diff, n.bf, "stored bf disagrees with recomputed height difference")
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}
