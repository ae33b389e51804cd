package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUp(n int) *Func[int] {
	i := 0
	return New(func() (int, bool) {
		if i >= n {
			return 0, false
		}
		v := i
		i++
		return v, true
	})
}

func TestHasNextIdempotent(t *testing.T) {
	it := countUp(2)
	assert.True(t, it.HasNext())
	assert.True(t, it.HasNext())
	assert.Equal(t, 0, it.Next())
	assert.Equal(t, 1, it.Next())
	assert.False(t, it.HasNext())
	assert.False(t, it.HasNext())
}

func TestNextOnExhaustedPanics(t *testing.T) {
	it := countUp(0)
	require.False(t, it.HasNext())
	assert.Panics(t, func() { it.Next() })
}

func TestCollectAndForEach(t *testing.T) {
	it := countUp(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Collect[int](it))

	var sum int
	ForEach[int](countUp(4), func(v int) { sum += v })
	assert.Equal(t, 6, sum)
}

func TestMapComposesLazily(t *testing.T) {
	squares := Map[int, int](countUp(4), func(v int) int { return v * v })
	assert.Equal(t, []int{0, 1, 4, 9}, Collect(squares))
}
