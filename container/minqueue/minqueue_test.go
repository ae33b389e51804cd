package minqueue

import (
	"math/rand/v2"
	"testing"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioPushThenPop(t *testing.T) {
	q := New[int](cmpfn.Natural[int]())
	for _, v := range []int{4, 2, 3, 1, 5} {
		q.Push(v)
	}
	assert.Equal(t, 1, q.Min())
	popped := q.Pop()
	assert.Equal(t, 4, popped)
	// 4 was popped but the index-3 original entry for value 1 is still
	// the minimum (popping the front does not change which element was
	// the overall min).
	assert.Equal(t, 1, q.Min())
}

func TestMinQueueAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	q := New[int](cmpfn.Natural[int]())
	var window []int

	for i := 0; i < 2000; i++ {
		if len(window) == 0 || rng.IntN(3) != 0 {
			v := rng.IntN(100)
			q.Push(v)
			window = append(window, v)
		} else {
			got := q.Pop()
			require.Equal(t, window[0], got)
			window = window[1:]
		}
		if len(window) > 0 {
			want := window[0]
			for _, v := range window {
				if v < want {
					want = v
				}
			}
			assert.Equal(t, want, q.Min())
		}
	}
}

func TestAllMinimaFIFOTies(t *testing.T) {
	q := New[int](cmpfn.Natural[int]())
	for _, v := range []int{2, 1, 3, 1, 1, 5} {
		q.Push(v)
	}
	assert.Equal(t, []int{1, 1, 1}, q.AllMinima())
}

func TestEmptyPanics(t *testing.T) {
	q := New[int](cmpfn.Natural[int]())
	assert.Panics(t, func() { q.Pop() })
	assert.Panics(t, func() { q.Min() })
}
