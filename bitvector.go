package fcago

import (
	"fmt"
	"iter"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// BitVector is an immutable fixed-width set of positions over one dimension.
// Bit i (from the least significant end) stands for position i.
//
// Every operation returns a new value; a BitVector may be shared freely
// between goroutines. Combining two vectors of different width is a
// programmer error and panics.
type BitVector[K Kind] struct {
	dim  *Dimension[K]
	bits *bitset.BitSet
}

// ObjectSet is a set of objects (an extent).
type ObjectSet = BitVector[ObjectKind]

// AttributeSet is a set of attributes (an intent).
type AttributeSet = BitVector[AttributeKind]

func (v BitVector[K]) derive(fn func(bs *bitset.BitSet)) BitVector[K] {
	if v.bits == nil {
		return v
	}
	bs := v.bits.Clone()
	fn(bs)
	return BitVector[K]{dim: v.dim, bits: bs}
}

func (v BitVector[K]) mustMatch(other BitVector[K]) {
	if v.Len() != other.Len() {
		panic(fmt.Sprintf("fcago: %s set width mismatch: %d != %d", axisOf[K](), v.Len(), other.Len()))
	}
}

// Dimension returns the dimension the vector is defined over.
func (v BitVector[K]) Dimension() *Dimension[K] { return v.dim }

// Len returns the width of the vector.
func (v BitVector[K]) Len() int {
	if v.bits == nil {
		return 0
	}
	return int(v.bits.Len())
}

// Test reports whether position i is set.
func (v BitVector[K]) Test(i int) bool {
	return v.bits != nil && i >= 0 && v.bits.Test(uint(i))
}

// Count returns the population count.
func (v BitVector[K]) Count() int {
	if v.bits == nil {
		return 0
	}
	return int(v.bits.Count())
}

// IsEmpty reports whether no position is set.
func (v BitVector[K]) IsEmpty() bool {
	return v.bits == nil || !v.bits.Any()
}

// IsFull reports whether every position is set.
func (v BitVector[K]) IsFull() bool {
	return v.Count() == v.Len()
}

// Lowest returns the lowest set position.
func (v BitVector[K]) Lowest() (int, bool) {
	if v.bits == nil {
		return 0, false
	}
	i := nextSet(v.bits, 0)
	return i, i >= 0
}

// TrailingZeros returns the number of unset positions below the lowest set
// position, or Len for the empty set.
func (v BitVector[K]) TrailingZeros() int {
	if i, ok := v.Lowest(); ok {
		return i
	}
	return v.Len()
}

// And returns the intersection of v and other.
func (v BitVector[K]) And(other BitVector[K]) BitVector[K] {
	v.mustMatch(other)
	return v.derive(func(bs *bitset.BitSet) { bs.InPlaceIntersection(other.bits) })
}

// Or returns the union of v and other.
func (v BitVector[K]) Or(other BitVector[K]) BitVector[K] {
	v.mustMatch(other)
	return v.derive(func(bs *bitset.BitSet) { bs.InPlaceUnion(other.bits) })
}

// Xor returns the symmetric difference of v and other.
func (v BitVector[K]) Xor(other BitVector[K]) BitVector[K] {
	v.mustMatch(other)
	return v.derive(func(bs *bitset.BitSet) { bs.InPlaceSymmetricDifference(other.bits) })
}

// AndNot returns v without the positions of other.
func (v BitVector[K]) AndNot(other BitVector[K]) BitVector[K] {
	v.mustMatch(other)
	return v.derive(func(bs *bitset.BitSet) { bs.InPlaceDifference(other.bits) })
}

// Not returns the complement of v within its width.
func (v BitVector[K]) Not() BitVector[K] {
	if v.bits == nil {
		return v
	}
	return BitVector[K]{dim: v.dim, bits: v.bits.Complement()}
}

// With returns v with position i added. Out of range positions are ignored.
func (v BitVector[K]) With(i int) BitVector[K] {
	if i < 0 || i >= v.Len() {
		return v
	}
	return v.derive(func(bs *bitset.BitSet) { bs.Set(uint(i)) })
}

// Without returns v with position i removed.
func (v BitVector[K]) Without(i int) BitVector[K] {
	if i < 0 || i >= v.Len() {
		return v
	}
	return v.derive(func(bs *bitset.BitSet) { bs.Clear(uint(i)) })
}

// Prefix returns the positions of v strictly below i.
func (v BitVector[K]) Prefix(i int) BitVector[K] {
	return v.derive(func(bs *bitset.BitSet) { keepBelow(bs, i) })
}

// Equal reports whether v and other hold the same positions and width.
func (v BitVector[K]) Equal(other BitVector[K]) bool {
	if v.bits == nil || other.bits == nil {
		return v.Len() == other.Len() && v.IsEmpty() && other.IsEmpty()
	}
	return v.bits.Equal(other.bits)
}

// IsSubsetOf reports whether every position of v is set in other.
func (v BitVector[K]) IsSubsetOf(other BitVector[K]) bool {
	v.mustMatch(other)
	if v.bits == nil || other.bits == nil {
		return v.IsEmpty()
	}
	return other.bits.IsSuperSet(v.bits)
}

// Compare orders vectors by their integer value and returns -1, 0 or +1.
func (v BitVector[K]) Compare(other BitVector[K]) int {
	v.mustMatch(other)
	if v.bits == nil || other.bits == nil {
		return 0
	}
	return compareBits(v.bits, other.bits)
}

// Iter yields the set positions in ascending order.
func (v BitVector[K]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		if v.bits == nil {
			return
		}
		for i, ok := v.bits.NextSet(0); ok; i, ok = v.bits.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// Indices returns the set positions in ascending order.
func (v BitVector[K]) Indices() []int {
	out := make([]int, 0, v.Count())
	for i := range v.Iter() {
		out = append(out, i)
	}
	return out
}

// Bools returns the vector as a boolean slice of length Len.
func (v BitVector[K]) Bools() []bool {
	if v.bits == nil {
		return nil
	}
	return bitsToBools(v.bits)
}

// Labels returns the labels of the set positions in positional order.
func (v BitVector[K]) Labels() []string {
	out := make([]string, 0, v.Count())
	for i := range v.Iter() {
		out = append(out, v.dim.Label(i))
	}
	return out
}

// Int returns the vector as a non-negative integer.
func (v BitVector[K]) Int() *big.Int {
	if v.bits == nil {
		return new(big.Int)
	}
	return bitsToInt(v.bits)
}

// String renders the labels of the set positions, e.g. "{a1, a2}".
func (v BitVector[K]) String() string {
	return "{" + strings.Join(v.Labels(), ", ") + "}"
}
