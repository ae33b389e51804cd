package deque

import (
	"testing"

	"github.com/paguso/cocada-go/iterator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioDoubleEnded(t *testing.T) {
	d := New[int]()
	d.PushFront(1)
	d.PushBack(2)
	d.PushFront(3)
	d.PushBack(4)
	assert.Equal(t, []int{3, 1, 2, 4}, iterator.Collect[int](d.Iter()))
	assert.Equal(t, 3, d.PopFront())
	assert.Equal(t, []int{1, 2, 4}, iterator.Collect[int](d.Iter()))
}

func TestDoubleEndedOrderInvariant(t *testing.T) {
	d := New[int]()
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			d.PushBack(i)
		} else {
			d.PushFront(i)
		}
	}
	for d.Len() > 0 {
		front := d.Get(0)
		back := d.Get(d.Len() - 1)
		assert.Equal(t, front, d.Front())
		assert.Equal(t, back, d.Back())
		if d.Len()%2 == 0 {
			d.PopFront()
		} else {
			d.PopBack()
		}
	}
}

func TestEmptyPanics(t *testing.T) {
	d := New[int]()
	assert.Panics(t, func() { d.PopFront() })
	assert.Panics(t, func() { d.PopBack() })
	assert.Panics(t, func() { d.Front() })
	assert.True(t, d.Empty())
}

func TestWrapAroundResize(t *testing.T) {
	d := New[int]()
	// force wraparound: fill, pop some from front, push more to back
	for i := 0; i < 4; i++ {
		d.PushBack(i)
	}
	d.PopFront()
	d.PopFront()
	for i := 4; i < 10; i++ {
		d.PushBack(i)
	}
	require.Equal(t, 8, d.Len())
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, iterator.Collect[int](d.Iter()))
}
