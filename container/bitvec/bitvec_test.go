package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetCount(t *testing.T) {
	bv := New(100)
	bv.Set(3, true)
	bv.Set(63, true)
	bv.Set(64, true)
	bv.Set(99, true)
	assert.True(t, bv.Get(3))
	assert.True(t, bv.Get(64))
	assert.False(t, bv.Get(50))
	assert.Equal(t, 4, bv.Count())

	bv.Set(3, false)
	assert.Equal(t, 3, bv.Count())
}

func TestRankSelectDuality(t *testing.T) {
	bv := New(200)
	for i := 0; i < 200; i += 7 {
		bv.Set(i, true)
	}
	for r := 0; r < bv.Count(); r++ {
		pos := bv.Select1(r)
		assert.Equal(t, r, bv.Rank1(pos))
		assert.True(t, bv.Get(pos))
	}
	assert.Equal(t, 200, bv.Select1(bv.Count()))
}

func TestSelect0(t *testing.T) {
	bv := New(10)
	bv.Set(0, true)
	bv.Set(2, true)
	bv.Set(4, true)
	// clear bits at 1,3,5,6,7,8,9
	assert.Equal(t, 1, bv.Select0(0))
	assert.Equal(t, 3, bv.Select0(1))
	assert.Equal(t, 5, bv.Select0(2))
	assert.Equal(t, 10, bv.Select0(100))
}

func TestOutOfRangePanics(t *testing.T) {
	bv := New(5)
	assert.Panics(t, func() { bv.Get(5) })
	assert.Panics(t, func() { bv.Set(-1, true) })
}
