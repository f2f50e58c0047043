package fcago

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Axis selects one side of a context.
type Axis int

const (
	// AxisObjects addresses objects (rows).
	AxisObjects Axis = 0
	// AxisAttributes addresses attributes (columns).
	AxisAttributes Axis = 1
)

// String returns "objects", "attributes" or "axis(n)".
func (a Axis) String() string {
	switch a {
	case AxisObjects:
		return "objects"
	case AxisAttributes:
		return "attributes"
	default:
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// ObjectKind tags values that live on the object dimension.
type ObjectKind struct{}

// AttributeKind tags values that live on the attribute dimension.
type AttributeKind struct{}

// Kind is the set of dimension tags. It keeps object and attribute
// bit-vectors apart at compile time.
type Kind interface {
	ObjectKind | AttributeKind
}

func axisOf[K Kind]() Axis {
	var k K
	if _, ok := any(k).(ObjectKind); ok {
		return AxisObjects
	}
	return AxisAttributes
}

// Dimension is an ordered set of unique labels defining positions 0..Len-1
// on one axis of a context. A Dimension is immutable.
type Dimension[K Kind] struct {
	labels []string
	index  map[string]int
}

// NewDimension creates a dimension from unique labels.
func NewDimension[K Kind](labels []string) (*Dimension[K], error) {
	d := &Dimension[K]{
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	copy(d.labels, labels)
	for i, l := range d.labels {
		if _, dup := d.index[l]; dup {
			return nil, fmt.Errorf("%w: %q on %s axis", ErrDuplicateLabel, l, axisOf[K]())
		}
		d.index[l] = i
	}
	return d, nil
}

// RangeLabels returns the labels "0", "1", ..., "n-1".
func RangeLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// Axis returns the axis this dimension belongs to.
func (d *Dimension[K]) Axis() Axis { return axisOf[K]() }

// Len returns the number of positions.
func (d *Dimension[K]) Len() int { return len(d.labels) }

// Label returns the label at position i. It panics if i is out of range.
func (d *Dimension[K]) Label(i int) string { return d.labels[i] }

// Index returns the position of label.
func (d *Dimension[K]) Index(label string) (int, bool) {
	i, ok := d.index[label]
	return i, ok
}

// Labels returns a copy of the labels in positional order.
func (d *Dimension[K]) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

func (d *Dimension[K]) wrap(bs *bitset.BitSet) BitVector[K] {
	return BitVector[K]{dim: d, bits: bs}
}

// Empty returns the empty set (infimum) over d.
func (d *Dimension[K]) Empty() BitVector[K] {
	return d.wrap(newBits(d.Len()))
}

// Full returns the set holding every position (supremum) over d.
func (d *Dimension[K]) Full() BitVector[K] {
	return d.wrap(fullBits(d.Len()))
}

// FromLabels returns the set of the given labels.
func (d *Dimension[K]) FromLabels(labels ...string) (BitVector[K], error) {
	bs := newBits(d.Len())
	for _, l := range labels {
		i, ok := d.index[l]
		if !ok {
			return BitVector[K]{}, fmt.Errorf("%w: %q on %s axis", ErrUnknownLabel, l, axisOf[K]())
		}
		bs.Set(uint(i))
	}
	return d.wrap(bs), nil
}

// FromIndices returns the set of the given positions.
func (d *Dimension[K]) FromIndices(indices ...int) (BitVector[K], error) {
	bs := newBits(d.Len())
	for _, i := range indices {
		if i < 0 || i >= d.Len() {
			return BitVector[K]{}, fmt.Errorf("%w: %d on %s axis of length %d", ErrIndexOutOfRange, i, axisOf[K](), d.Len())
		}
		bs.Set(uint(i))
	}
	return d.wrap(bs), nil
}

// FromBools returns the set whose position i is set iff bs[i] is true.
// len(bs) must equal Len.
func (d *Dimension[K]) FromBools(bs []bool) (BitVector[K], error) {
	if len(bs) != d.Len() {
		return BitVector[K]{}, mismatch(axisOf[K](), d.Len(), len(bs))
	}
	return d.wrap(bitsFromBools(bs)), nil
}

// FromInt returns the set whose position i is set iff bit i of x is set.
// x must be non-negative and fit in Len bits.
func (d *Dimension[K]) FromInt(x *big.Int) (BitVector[K], error) {
	bs, ok := bitsFromInt(d.Len(), x)
	if !ok {
		return BitVector[K]{}, mismatch(axisOf[K](), d.Len(), x.BitLen())
	}
	return d.wrap(bs), nil
}
