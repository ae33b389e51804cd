// Package hashfn provides default Hash callable implementations (§6 of
// the design: "Hash callable hash(a) -> u64"). Every consumer
// (container/hashmap, sketch/distinct) treats its hash function as a
// caller-suppliable opaque callable; these are just the defaults used
// when a caller doesn't have a better one of their own.
package hashfn

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash is the contract every default below satisfies, matching
// container/hashmap's expected function shape for a key type K.
type Hash[K any] func(K) uint64

// Bytes hashes a byte slice with xxhash64.
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// String hashes a string with xxhash64, without the string->[]byte copy
// `xxhash.Sum64([]byte(s))` would force.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Uint64 mixes a 64-bit integer through xxhash by hashing its 8-byte
// little-endian encoding — used as the default hash for integer-keyed
// maps and by sketch/distinct's hash family.
func Uint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// Int32 hashes a 32-bit integer by widening its bit pattern to uint64
// and applying Uint64.
func Int32(v int32) uint64 {
	return Uint64(uint64(uint32(v)))
}

// Float64 hashes a float64's bit pattern; NaN is normalised to a single
// representative bit pattern so that hashfn.Float64 is consistent with
// any equality predicate that treats all NaNs as equal.
func Float64(v float64) uint64 {
	if math.IsNaN(v) {
		return Uint64(0x7ff8000000000001)
	}
	return Uint64(math.Float64bits(v))
}

// Seeded derives a family of independent-enough hash functions from a
// single seed by folding the seed into the pre-image before hashing —
// the pairwise-independent-ish hash family sketch/distinct's FM/BJKST
// estimators need one of per registered "virtual hash function".
func Seeded(seed uint64) Hash[uint64] {
	return func(v uint64) uint64 {
		return Uint64(v ^ (seed * 0x9E3779B97F4A7C15))
	}
}
