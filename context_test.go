package fcago

import (
	"errors"
	"testing"

	"github.com/hupe1980/fcago/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleContext is the 3x2 context
//
//	    a1 a2
//	o1   x  x
//	o2   x
//	o3      x
func exampleContext(t testing.TB) *Context {
	t.Helper()
	c, err := New(
		[][]bool{{true, true}, {true, false}, {false, true}},
		[]string{"o1", "o2", "o3"},
		[]string{"a1", "a2"},
		WithName("example"),
	)
	require.NoError(t, err)
	return c
}

func objects(t testing.TB, c *Context, labels ...string) ObjectSet {
	t.Helper()
	s, err := c.Objects().FromLabels(labels...)
	require.NoError(t, err)
	return s
}

func attributes(t testing.TB, c *Context, labels ...string) AttributeSet {
	t.Helper()
	s, err := c.Attributes().FromLabels(labels...)
	require.NoError(t, err)
	return s
}

func TestContext(t *testing.T) {
	c := exampleContext(t)

	t.Run("Shape", func(t *testing.T) {
		n, m := c.Shape()
		assert.Equal(t, 3, n)
		assert.Equal(t, 2, m)
		assert.Equal(t, "Context(example, 3x2)", c.String())
	})

	t.Run("Up", func(t *testing.T) {
		assert.Equal(t, []string{"a1", "a2"}, c.Up(objects(t, c, "o1")).Labels())
		assert.Equal(t, []string{"a1"}, c.Up(objects(t, c, "o1", "o2")).Labels())
		assert.Empty(t, c.Up(objects(t, c, "o2", "o3")).Labels())
	})

	t.Run("Down", func(t *testing.T) {
		assert.Equal(t, []string{"o1"}, c.Down(attributes(t, c, "a1", "a2")).Labels())
		assert.Equal(t, []string{"o1", "o3"}, c.Down(attributes(t, c, "a2")).Labels())
	})

	t.Run("Extremes", func(t *testing.T) {
		assert.True(t, c.Up(c.Objects().Empty()).IsFull())
		assert.True(t, c.Down(c.Attributes().Empty()).IsFull())
		assert.True(t, c.Up(c.Objects().Full()).IsEmpty())
	})

	t.Run("Closures", func(t *testing.T) {
		assert.Equal(t, []string{"o1", "o2"}, c.ObjectClosure(objects(t, c, "o2")).Labels())
		assert.Equal(t, []string{"a1", "a2"}, c.AttributeClosure(attributes(t, c, "a1", "a2")).Labels())
	})

	t.Run("IsConcept", func(t *testing.T) {
		assert.True(t, c.IsConcept(Concept{Extent: objects(t, c, "o1", "o2"), Intent: attributes(t, c, "a1")}))
		assert.True(t, c.IsConcept(Concept{Extent: objects(t, c, "o1"), Intent: attributes(t, c, "a1", "a2")}))
		assert.True(t, c.IsConcept(Concept{Extent: c.Objects().Full(), Intent: c.Attributes().Empty()}))
		assert.False(t, c.IsConcept(Concept{Extent: objects(t, c, "o2"), Intent: attributes(t, c, "a1")}))
	})

	t.Run("Bools", func(t *testing.T) {
		assert.Equal(t, [][]bool{{true, true}, {true, false}, {false, true}}, c.Bools())
	})
}

func TestNewErrors(t *testing.T) {
	t.Run("ObjectCount", func(t *testing.T) {
		_, err := New([][]bool{{true}}, []string{"o1", "o2"}, []string{"a1"})
		require.ErrorIs(t, err, ErrDimensionMismatch)

		var dm *DimensionMismatchError
		require.True(t, errors.As(err, &dm))
		assert.Equal(t, AxisObjects, dm.Axis)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)
	})

	t.Run("RaggedRow", func(t *testing.T) {
		_, err := New([][]bool{{true, false}, {true}}, []string{"o1", "o2"}, []string{"a1", "a2"})
		require.ErrorIs(t, err, ErrDimensionMismatch)

		var dm *DimensionMismatchError
		require.True(t, errors.As(err, &dm))
		assert.Equal(t, AxisAttributes, dm.Axis)
	})

	t.Run("DuplicateLabel", func(t *testing.T) {
		_, err := New(testutil.Empty(2, 1), []string{"o", "o"}, []string{"a"})
		require.ErrorIs(t, err, ErrDuplicateLabel)
	})
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]bool
		want   float64
	}{
		{"Empty", testutil.Empty(4, 3), 0.0},
		{"Full", testutil.Full(4, 3), 1.0},
		{"Identity", testutil.Identity(4), 0.25},
		{"Example", [][]bool{{true, true}, {true, false}, {false, true}}, 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, m := len(tt.matrix), len(tt.matrix[0])
			c, err := New(tt.matrix, testutil.Labels("o", n), testutil.Labels("a", m))
			require.NoError(t, err)

			d, err := c.Density()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d, 1e-12)
		})
	}

	t.Run("ZeroDimension", func(t *testing.T) {
		c, err := New(testutil.Empty(3, 0), testutil.Labels("o", 3), nil)
		require.NoError(t, err)

		_, err = c.Density()
		require.ErrorIs(t, err, ErrEmptyContext)

		c, err = New(nil, nil, testutil.Labels("a", 3))
		require.NoError(t, err)
		_, err = c.Density()
		require.ErrorIs(t, err, ErrEmptyContext)
	})
}

func TestRandomContextProperties(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for trial := 0; trial < 10; trial++ {
		n, m := 1+rng.Intn(20), 1+rng.Intn(70)
		matrix := rng.Matrix(n, m, 0.4)
		c, err := New(matrix, testutil.Labels("o", n), testutil.Labels("a", m))
		require.NoError(t, err)

		// Transpose consistency.
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				require.Equal(t, matrix[i][j], c.Row(i).Test(j))
				require.Equal(t, c.Row(i).Test(j), c.Column(j).Test(i))
			}
		}

		d, err := c.Density()
		require.NoError(t, err)
		assert.InDelta(t, float64(testutil.Count(matrix))/float64(n*m), d, 1e-12)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 1.0)

		// Up of all objects is the intersection of all rows.
		all := c.Attributes().Full()
		for _, row := range c.Rows() {
			all = all.And(row)
		}
		assert.True(t, all.Equal(c.Up(c.Objects().Full())))

		for k := 0; k < 20; k++ {
			x1 := randomSet(rng, c.Objects())
			x2 := x1.Or(randomSet(rng, c.Objects()))
			require.True(t, c.Up(x2).IsSubsetOf(c.Up(x1)), "up must be antitone")

			y1 := randomSet(rng, c.Attributes())
			y2 := y1.Or(randomSet(rng, c.Attributes()))
			require.True(t, c.Down(y2).IsSubsetOf(c.Down(y1)), "down must be antitone")

			// Up(X) matches the naive definition.
			naive := c.Attributes().Full()
			for i := range x1.Iter() {
				naive = naive.And(c.Row(i))
			}
			require.True(t, naive.Equal(c.Up(x1)))

			// Every closure is a concept.
			intent := c.Up(x1)
			require.True(t, c.IsConcept(Concept{Extent: c.Down(intent), Intent: intent}))
		}
	}
}

func randomSet[K Kind](rng *testutil.RNG, d *Dimension[K]) BitVector[K] {
	v := d.Empty()
	for i := 0; i < d.Len(); i++ {
		if rng.Intn(3) == 0 {
			v = v.With(i)
		}
	}
	return v
}

func TestUpPanicsOnForeignWidth(t *testing.T) {
	c := exampleContext(t)
	other, err := New(testutil.Full(5, 2), testutil.Labels("o", 5), []string{"a1", "a2"})
	require.NoError(t, err)

	assert.Panics(t, func() { c.Up(other.Objects().Full()) })
}
