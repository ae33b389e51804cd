package ordmap

import (
	"math/rand/v2"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectAVL(m *AVLMap[int, string]) []Entry[int, string] {
	var out []Entry[int, string]
	it := m.Iter()
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

func collectSL(m *SkipListMap[int, string]) []Entry[int, string] {
	var out []Entry[int, string]
	it := m.Iter()
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

func TestAVLMapSetGetOrder(t *testing.T) {
	m := NewAVL[int, string](cmpfn.Natural[int]())
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")
	assert.Equal(t, 3, m.Len())
	v, ok := m.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []Entry[int, string]{{1, "a"}, {2, "b"}, {3, "c"}}, collectAVL(m))
}

func TestAVLMapSetOverwritesValueKeepsKey(t *testing.T) {
	m := NewAVL[int, string](cmpfn.Natural[int]())
	m.Set(5, "first")
	m.Set(5, "second")
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get(5)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestAVLMapDel(t *testing.T) {
	m := NewAVL[int, string](cmpfn.Natural[int]())
	m.Set(1, "a")
	v, ok := m.Del(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, m.Contains(1))
	_, ok = m.Del(1)
	assert.False(t, ok)
}

func TestSkipListMapSetGetOrder(t *testing.T) {
	m := NewSkipList[int, string](cmpfn.Natural[int]())
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")
	assert.Equal(t, 3, m.Len())
	v, ok := m.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []Entry[int, string]{{1, "a"}, {2, "b"}, {3, "c"}}, collectSL(m))
}

func TestSkipListMapSetOverwritesValueKeepsKey(t *testing.T) {
	m := NewSkipList[int, string](cmpfn.Natural[int]())
	m.Set(5, "first")
	m.Set(5, "second")
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get(5)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestSkipListMapDel(t *testing.T) {
	m := NewSkipList[int, string](cmpfn.Natural[int]())
	m.Set(1, "a")
	v, ok := m.Del(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, m.Contains(1))
	_, ok = m.Del(1)
	assert.False(t, ok)
}

func TestAVLMapAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	m := NewAVL[int, int](cmpfn.Natural[int]())
	ref := map[int]int{}
	for i := 0; i < 3000; i++ {
		k := rng.IntN(200)
		switch rng.IntN(3) {
		case 0, 1:
			v := rng.IntN(1000)
			m.Set(k, v)
			ref[k] = v
		default:
			_, existed := ref[k]
			_, got := m.Del(k)
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

func TestSkipListMapAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	m := NewSkipList[int, int](cmpfn.Natural[int]())
	ref := map[int]int{}
	for i := 0; i < 3000; i++ {
		k := rng.IntN(200)
		switch rng.IntN(3) {
		case 0, 1:
			v := rng.IntN(1000)
			m.Set(k, v)
			ref[k] = v
		default:
			_, existed := ref[k]
			_, got := m.Del(k)
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
