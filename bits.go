package fcago

import (
	"encoding/binary"
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Helpers over bitset.BitSet for the operations the library does not carry:
// prefix masks, integer order and big.Int conversion. Every set handled here
// has a fixed length; positions at or beyond Len are never set.

func newBits(width int) *bitset.BitSet {
	return bitset.New(uint(width))
}

func fullBits(width int) *bitset.BitSet {
	return bitset.New(uint(width)).SetAll()
}

func bitsFromBools(bs []bool) *bitset.BitSet {
	b := newBits(len(bs))
	for i, v := range bs {
		if v {
			b.Set(uint(i))
		}
	}
	return b
}

func bitsToBools(b *bitset.BitSet) []bool {
	out := make([]bool, b.Len())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out[i] = true
	}
	return out
}

// nextSet returns the first set position >= i, or -1.
func nextSet(b *bitset.BitSet, i int) int {
	j, ok := b.NextSet(uint(i))
	if !ok {
		return -1
	}
	return int(j)
}

// keepBelow clears every position >= i.
func keepBelow(b *bitset.BitSet, i int) {
	if i <= 0 {
		b.ClearAll()
		return
	}
	words := b.Words()
	w := i / 64
	if w >= len(words) {
		return
	}
	words[w] &= (uint64(1) << (i % 64)) - 1
	clear(words[w+1:])
}

// compareBits orders two sets of equal length by their integer value.
func compareBits(a, b *bitset.BitSet) int {
	aw, bw := a.Words(), b.Words()
	for i := len(aw) - 1; i >= 0; i-- {
		switch {
		case aw[i] < bw[i]:
			return -1
		case aw[i] > bw[i]:
			return 1
		}
	}
	return 0
}

// bitsToInt returns sum(2^i) over the set positions i.
func bitsToInt(b *bitset.BitSet) *big.Int {
	words := b.Words()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[len(buf)-8*(i+1):], w)
	}
	return new(big.Int).SetBytes(buf)
}

// bitsFromInt is the inverse of bitsToInt. It reports false if x is negative
// or needs more than width bits.
func bitsFromInt(width int, x *big.Int) (*bitset.BitSet, bool) {
	if x.Sign() < 0 || x.BitLen() > width {
		return nil, false
	}
	b := newBits(width)
	for i := range x.BitLen() {
		if x.Bit(i) == 1 {
			b.Set(uint(i))
		}
	}
	return b, true
}
