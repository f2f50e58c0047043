package fcago

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Context is a formal context: a binary relation between objects and
// attributes, stored both row-major (one attribute set per object) and
// column-major (one object set per attribute).
//
// A Context is immutable after New returns and safe for concurrent use.
type Context struct {
	name       string
	objects    *Dimension[ObjectKind]
	attributes *Dimension[AttributeKind]
	rows       []AttributeSet
	columns    []ObjectSet
}

// New builds a context from an object-major boolean matrix.
//
// len(matrix) must equal len(objectLabels) and every row must have
// len(attributeLabels) entries; otherwise an error matching
// ErrDimensionMismatch is returned. Labels must be unique per axis.
func New(matrix [][]bool, objectLabels, attributeLabels []string, optFns ...Option) (*Context, error) {
	opts := applyOptions(optFns)

	start := time.Now()
	c, err := build(matrix, objectLabels, attributeLabels, opts.name)
	opts.metricsCollector.RecordContext(len(objectLabels), len(attributeLabels), time.Since(start), err)
	opts.logger.LogContext(opts.name, len(objectLabels), len(attributeLabels), err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func build(matrix [][]bool, objectLabels, attributeLabels []string, name string) (*Context, error) {
	if len(matrix) != len(objectLabels) {
		return nil, mismatch(AxisObjects, len(objectLabels), len(matrix))
	}
	for i, row := range matrix {
		if len(row) != len(attributeLabels) {
			return nil, fmt.Errorf("row %d: %w", i, mismatch(AxisAttributes, len(attributeLabels), len(row)))
		}
	}

	objects, err := NewDimension[ObjectKind](objectLabels)
	if err != nil {
		return nil, err
	}
	attributes, err := NewDimension[AttributeKind](attributeLabels)
	if err != nil {
		return nil, err
	}

	c := &Context{
		name:       name,
		objects:    objects,
		attributes: attributes,
		rows:       make([]AttributeSet, objects.Len()),
		columns:    make([]ObjectSet, attributes.Len()),
	}

	cols := make([]*bitset.BitSet, attributes.Len())
	for j := range cols {
		cols[j] = newBits(objects.Len())
	}
	for i, row := range matrix {
		c.rows[i] = attributes.wrap(bitsFromBools(row))
		for j, v := range row {
			if v {
				cols[j].Set(uint(i))
			}
		}
	}
	for j, col := range cols {
		c.columns[j] = objects.wrap(col)
	}
	return c, nil
}

// Name returns the display name, which may be empty.
func (c *Context) Name() string { return c.name }

// Objects returns the object dimension.
func (c *Context) Objects() *Dimension[ObjectKind] { return c.objects }

// Attributes returns the attribute dimension.
func (c *Context) Attributes() *Dimension[AttributeKind] { return c.attributes }

// Shape returns (number of objects, number of attributes).
func (c *Context) Shape() (int, int) {
	return len(c.rows), len(c.columns)
}

// Density returns the fraction of set cells in the relation.
// It returns ErrEmptyContext if either dimension is zero.
func (c *Context) Density() (float64, error) {
	n, m := c.Shape()
	if n == 0 || m == 0 {
		return 0, fmt.Errorf("density of %dx%d context: %w", n, m, ErrEmptyContext)
	}
	set := 0
	for _, row := range c.rows {
		set += row.Count()
	}
	return float64(set) / float64(n*m), nil
}

// Row returns the attributes of object i.
func (c *Context) Row(i int) AttributeSet { return c.rows[i] }

// Column returns the objects having attribute j.
func (c *Context) Column(j int) ObjectSet { return c.columns[j] }

// Rows returns the attribute set of every object in order.
func (c *Context) Rows() []AttributeSet {
	out := make([]AttributeSet, len(c.rows))
	copy(out, c.rows)
	return out
}

// Columns returns the object set of every attribute in order.
func (c *Context) Columns() []ObjectSet {
	out := make([]ObjectSet, len(c.columns))
	copy(out, c.columns)
	return out
}

// Bools returns the relation as an object-major boolean matrix.
func (c *Context) Bools() [][]bool {
	out := make([][]bool, len(c.rows))
	for i, row := range c.rows {
		out[i] = row.Bools()
	}
	return out
}

// String renders the context as "Context(name, NxM)" or "Context(NxM)".
func (c *Context) String() string {
	n, m := c.Shape()
	if c.name != "" {
		return fmt.Sprintf("Context(%s, %dx%d)", c.name, n, m)
	}
	return fmt.Sprintf("Context(%dx%d)", n, m)
}

// Up returns the attributes shared by every object in objects. The empty
// object set yields the full attribute set.
func (c *Context) Up(objects ObjectSet) AttributeSet {
	return galois(objects, c.rows, c.attributes)
}

// Down returns the objects having every attribute in attributes. The empty
// attribute set yields the full object set.
func (c *Context) Down(attributes AttributeSet) ObjectSet {
	return galois(attributes, c.columns, c.objects)
}

// ObjectClosure returns Down(Up(objects)), the smallest extent containing objects.
func (c *Context) ObjectClosure(objects ObjectSet) ObjectSet {
	return c.Down(c.Up(objects))
}

// AttributeClosure returns Up(Down(attributes)), the smallest intent containing attributes.
func (c *Context) AttributeClosure(attributes AttributeSet) AttributeSet {
	return c.Up(c.Down(attributes))
}

// IsConcept reports whether concept is a fixed point of the Galois connection of c.
func (c *Context) IsConcept(concept Concept) bool {
	return c.Up(concept.Extent).Equal(concept.Intent) && c.Down(concept.Intent).Equal(concept.Extent)
}

// galois intersects data[i] for every set position i of in, starting from
// the full set over out. NextSet consumes each run of unset positions with
// a single trailing-zero count per word, so only set positions do work.
func galois[I, O Kind](in BitVector[I], data []BitVector[O], out *Dimension[O]) BitVector[O] {
	if in.Len() != len(data) {
		panic(fmt.Sprintf("fcago: %s set of width %d applied to context with %d %s",
			axisOf[I](), in.Len(), len(data), axisOf[I]()))
	}

	result := fullBits(out.Len())
	if in.bits == nil {
		return out.wrap(result)
	}
	for i, ok := in.bits.NextSet(0); ok; i, ok = in.bits.NextSet(i + 1) {
		result.InPlaceIntersection(data[i].bits)
	}
	return out.wrap(result)
}
