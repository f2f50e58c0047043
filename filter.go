package fcago

import (
	"fmt"
	"iter"
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Selector picks positions on one axis of a context. It is implemented by
// Labels and by ObjectSet / AttributeSet.
type Selector interface {
	selectOn(axis Axis, width int, index func(string) (int, bool)) (*bitset.BitSet, error)
}

// Labels selects positions by label.
type Labels []string

func (l Labels) selectOn(axis Axis, width int, index func(string) (int, bool)) (*bitset.BitSet, error) {
	mask := newBits(width)
	for _, label := range l {
		i, ok := index(label)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s axis", ErrUnknownLabel, label, axis)
		}
		mask.Set(uint(i))
	}
	return mask, nil
}

func (v BitVector[K]) selectOn(axis Axis, width int, _ func(string) (int, bool)) (*bitset.BitSet, error) {
	if axisOf[K]() != axis {
		return nil, fmt.Errorf("%s selector on %s axis: %w", axisOf[K](), axis, ErrDimensionMismatch)
	}
	if v.Len() != width {
		return nil, mismatch(axis, width, v.Len())
	}
	if v.bits == nil {
		return newBits(width), nil
	}
	return v.bits, nil
}

// Line is a row or a column of a context as seen through Filter.
type Line interface {
	fmt.Stringer
	Len() int
	Test(i int) bool
	Count() int
	Iter() iter.Seq[int]
	Indices() []int
	Bools() []bool
	Labels() []string
	Int() *big.Int
}

// Filter lazily yields the rows (axis AxisObjects) or columns (axis
// AxisAttributes) whose position is selected, in ascending order.
//
// Any other axis returns ErrInvalidAxis.
func (c *Context) Filter(sel Selector, axis Axis) (iter.Seq[Line], error) {
	switch axis {
	case AxisObjects:
		seq, err := c.FilterRows(sel)
		if err != nil {
			return nil, err
		}
		return asLines(seq), nil
	case AxisAttributes:
		seq, err := c.FilterColumns(sel)
		if err != nil {
			return nil, err
		}
		return asLines(seq), nil
	default:
		return nil, fmt.Errorf("filter on %s: %w", axis, ErrInvalidAxis)
	}
}

// FilterRows lazily yields the rows of the selected objects.
func (c *Context) FilterRows(sel Selector) (iter.Seq[AttributeSet], error) {
	mask, err := sel.selectOn(AxisObjects, c.objects.Len(), c.objects.Index)
	if err != nil {
		return nil, err
	}
	return selectLines(mask, c.rows), nil
}

// FilterColumns lazily yields the columns of the selected attributes.
func (c *Context) FilterColumns(sel Selector) (iter.Seq[ObjectSet], error) {
	mask, err := sel.selectOn(AxisAttributes, c.attributes.Len(), c.attributes.Index)
	if err != nil {
		return nil, err
	}
	return selectLines(mask, c.columns), nil
}

func selectLines[K Kind](mask *bitset.BitSet, lines []BitVector[K]) iter.Seq[BitVector[K]] {
	return func(yield func(BitVector[K]) bool) {
		for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
			if !yield(lines[i]) {
				return
			}
		}
	}
}

func asLines[K Kind](seq iter.Seq[BitVector[K]]) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}
