package hashmap

import (
	"math/rand/v2"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/hashfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intHash(v int) uint64 { return hashfn.Uint64(uint64(v)) }

func TestScenarioInsertSquaresDeleteEvery7th(t *testing.T) {
	m := New[int, int](intHash, cmpfn.NaturalEq[int]())
	const n = 1000
	for i := 0; i < n; i++ {
		inserted := m.Ins(i, i*i)
		require.True(t, inserted)
	}
	assert.Equal(t, n, m.Len())

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		require.Equal(t, i*i, v)
	}

	remaining := n
	for i := 0; i < n; i += 7 {
		require.True(t, m.Contains(i))
		m.Del(i)
		require.False(t, m.Contains(i))
		remaining--
	}
	assert.Equal(t, remaining, m.Len())

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if i%7 == 0 {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			assert.Equal(t, i*i, v)
		}
	}
}

func TestInsertOverwritesExistingKey(t *testing.T) {
	m := New[int, string](intHash, cmpfn.NaturalEq[int]())
	assert.True(t, m.Ins(1, "a"))
	assert.False(t, m.Ins(1, "b"))
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, m.Len())
}

func TestRemoveTakingIdiom(t *testing.T) {
	m := New[int, string](intHash, cmpfn.NaturalEq[int]())
	m.Ins(5, "five")
	k, v, ok := m.Remove(5)
	assert.True(t, ok)
	assert.Equal(t, 5, k)
	assert.Equal(t, "five", v)
	assert.False(t, m.Contains(5))

	_, _, ok = m.Remove(999)
	assert.False(t, ok)
}

func TestFitShrinksCapacity(t *testing.T) {
	m := New[int, int](intHash, cmpfn.NaturalEq[int]())
	for i := 0; i < 500; i++ {
		m.Ins(i, i)
	}
	bigCap := len(m.slots)
	for i := 0; i < 490; i++ {
		m.Del(i)
	}
	m.Fit()
	assert.Less(t, len(m.slots), bigCap)
	assert.Equal(t, 10, m.Len())
}

func TestIterCoversAllEntries(t *testing.T) {
	m := New[int, int](intHash, cmpfn.NaturalEq[int]())
	want := map[int]int{}
	for i := 0; i < 200; i++ {
		m.Ins(i, i*2)
		want[i] = i * 2
	}
	got := map[int]int{}
	it := m.Iter()
	for it.HasNext() {
		e := it.Next()
		got[e.Key] = e.Val
	}
	assert.Equal(t, want, got)
}

func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 13))
	m := New[int, int](intHash, cmpfn.NaturalEq[int]())
	ref := map[int]int{}

	for i := 0; i < 5000; i++ {
		k := rng.IntN(300)
		switch rng.IntN(3) {
		case 0, 1:
			v := rng.IntN(1000)
			_, existed := ref[k]
			got := m.Ins(k, v)
			require.Equal(t, !existed, got)
			ref[k] = v
		default:
			_, existed := ref[k]
			_, _, got := m.Remove(k)
			require.Equal(t, existed, got)
			delete(ref, k)
		}
	}
	require.Equal(t, len(ref), m.Len())
	for k, v := range ref {
		got, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestEmptyMap(t *testing.T) {
	m := New[int, int](intHash, cmpfn.NaturalEq[int]())
	assert.True(t, m.Empty())
	_, ok := m.Get(1)
	assert.False(t, ok)
	_, _, ok = m.Remove(1)
	assert.False(t, ok)
	assert.Nil(t, m.GetMut(1))
}
