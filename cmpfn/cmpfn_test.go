package cmpfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatural(t *testing.T) {
	cmp := Natural[int]()
	assert.Negative(t, cmp(1, 2))
	assert.Positive(t, cmp(2, 1))
	assert.Zero(t, cmp(5, 5))
}

func TestNaturalEq(t *testing.T) {
	eq := NaturalEq[string]()
	assert.True(t, eq("a", "a"))
	assert.False(t, eq("a", "b"))
}

func TestFromEq(t *testing.T) {
	eq := FromEq(Natural[int]())
	assert.True(t, eq(3, 3))
	assert.False(t, eq(3, 4))
}

func TestPanic(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		v, ok := r.(*Violation)
		require.True(t, ok)
		assert.Equal(t, "vec.Get", v.Op)
		assert.Contains(t, v.Error(), "index 5 out of range")
	}()
	Panic("vec.Get", "index %d out of range [0,%d)", 5, 3)
}
