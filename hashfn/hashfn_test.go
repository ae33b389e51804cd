package hashfn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministic(t *testing.T) {
	assert.Equal(t, String("hello"), String("hello"))
	assert.Equal(t, Uint64(42), Uint64(42))
	assert.NotEqual(t, String("hello"), String("world"))
}

func TestBytesMatchesString(t *testing.T) {
	assert.Equal(t, Bytes([]byte("abc")), String("abc"))
}

func TestFloat64NaNConsistent(t *testing.T) {
	assert.Equal(t, Float64(math.NaN()), Float64(math.Copysign(math.NaN(), -1)))
	assert.NotEqual(t, Float64(1.0), Float64(2.0))
}

func TestSeededFamilyIsIndependent(t *testing.T) {
	h1 := Seeded(1)
	h2 := Seeded(2)
	assert.NotEqual(t, h1(100), h2(100))
}
