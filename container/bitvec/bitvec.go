// Package bitvec implements a packed bit vector with rank/select support
// (§3, §4 of the design). It backs the bitmap-mode containers of
// container/roaring, which is its only user inside this module.
package bitvec

import (
	"math/bits"

	"github.com/paguso/cocada-go/cmpfn"
)

const wordBits = 64

// BitVec is a growable packed sequence of bits. Unused tail bits in the
// last word are always zero, matching the design's invariant.
type BitVec struct {
	words  []uint64
	nbits  int
	popcnt int // cached total population count
}

// New returns a BitVec of nbits bits, all clear.
func New(nbits int) *BitVec {
	if nbits < 0 {
		cmpfn.Panic("bitvec.New", "negative length %d", nbits)
	}
	return &BitVec{words: make([]uint64, wordIndex(nbits, true)), nbits: nbits}
}

func wordIndex(nbits int, ceil bool) int {
	if ceil {
		return (nbits + wordBits - 1) / wordBits
	}
	return nbits / wordBits
}

// Len returns the number of addressable bits.
func (b *BitVec) Len() int { return b.nbits }

func (b *BitVec) checkIndex(op string, i int) {
	if i < 0 || i >= b.nbits {
		cmpfn.Panic(op, "bit index %d out of range [0,%d)", i, b.nbits)
	}
}

// Get returns the bit at position i.
func (b *BitVec) Get(i int) bool {
	b.checkIndex("bitvec.Get", i)
	return b.words[i/wordBits]&(uint64(1)<<(uint(i)%wordBits)) != 0
}

// Set assigns the bit at position i to val.
func (b *BitVec) Set(i int, val bool) {
	b.checkIndex("bitvec.Set", i)
	word := i / wordBits
	mask := uint64(1) << (uint(i) % wordBits)
	was := b.words[word]&mask != 0
	if val == was {
		return
	}
	if val {
		b.words[word] |= mask
		b.popcnt++
	} else {
		b.words[word] &^= mask
		b.popcnt--
	}
}

// Count returns the total number of set bits.
func (b *BitVec) Count() int { return b.popcnt }

// Rank1 returns the number of set bits in [0,i). i may range up to Len.
func (b *BitVec) Rank1(i int) int {
	if i < 0 || i > b.nbits {
		cmpfn.Panic("bitvec.Rank1", "position %d out of range [0,%d]", i, b.nbits)
	}
	full := i / wordBits
	count := 0
	for w := 0; w < full; w++ {
		count += bits.OnesCount64(b.words[w])
	}
	rem := i % wordBits
	if rem > 0 {
		mask := (uint64(1) << uint(rem)) - 1
		count += bits.OnesCount64(b.words[full] & mask)
	}
	return count
}

// Rank0 returns the number of clear bits in [0,i).
func (b *BitVec) Rank0(i int) int { return i - b.Rank1(i) }

// Select1 returns the position of the r-th (0-indexed) set bit, or Len if
// r >= Count().
func (b *BitVec) Select1(r int) int {
	if r < 0 || r >= b.popcnt {
		return b.nbits
	}
	remaining := r
	for w, word := range b.words {
		c := bits.OnesCount64(word)
		if remaining < c {
			for word != 0 {
				lsb := bits.TrailingZeros64(word)
				if remaining == 0 {
					return w*wordBits + lsb
				}
				word &= word - 1
				remaining--
			}
		}
		remaining -= c
	}
	return b.nbits
}

// Select0 returns the position of the r-th (0-indexed) clear bit, or Len
// if r >= Len-Count().
func (b *BitVec) Select0(r int) int {
	zeros := b.nbits - b.popcnt
	if r < 0 || r >= zeros {
		return b.nbits
	}
	remaining := r
	for w, word := range b.words {
		inv := ^word
		// mask off any padding bits beyond nbits in the last word
		if (w+1)*wordBits > b.nbits {
			validBits := b.nbits - w*wordBits
			if validBits < wordBits {
				inv &= (uint64(1) << uint(validBits)) - 1
			}
		}
		c := bits.OnesCount64(inv)
		if remaining < c {
			for inv != 0 {
				lsb := bits.TrailingZeros64(inv)
				if remaining == 0 {
					return w*wordBits + lsb
				}
				inv &= inv - 1
				remaining--
			}
		}
		remaining -= c
	}
	return b.nbits
}
