package fcago

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, c *Context, sel Selector, axis Axis) []string {
	t.Helper()
	seq, err := c.Filter(sel, axis)
	require.NoError(t, err)

	var out []string
	for line := range seq {
		out = append(out, line.String())
	}
	return out
}

func TestFilter(t *testing.T) {
	c := exampleContext(t)

	t.Run("RowsByLabels", func(t *testing.T) {
		assert.Equal(t, []string{"{a1, a2}", "{a2}"}, collect(t, c, Labels{"o3", "o1"}, AxisObjects))
	})

	t.Run("ColumnsByLabels", func(t *testing.T) {
		assert.Equal(t, []string{"{o1, o3}"}, collect(t, c, Labels{"a2"}, AxisAttributes))
	})

	t.Run("RowsBySet", func(t *testing.T) {
		sel := objects(t, c, "o1", "o2")
		assert.Equal(t, []string{"{a1, a2}", "{a1}"}, collect(t, c, sel, AxisObjects))
	})

	t.Run("ColumnsBySet", func(t *testing.T) {
		assert.Equal(t, []string{"{o1, o2}", "{o1, o3}"}, collect(t, c, c.Attributes().Full(), AxisAttributes))
	})

	t.Run("EmptySelection", func(t *testing.T) {
		assert.Empty(t, collect(t, c, c.Objects().Empty(), AxisObjects))
	})

	t.Run("Typed", func(t *testing.T) {
		rows, err := c.FilterRows(Labels{"o2"})
		require.NoError(t, err)
		for row := range rows {
			assert.Equal(t, []string{"a1"}, row.Labels())
		}

		cols, err := c.FilterColumns(attributes(t, c, "a1"))
		require.NoError(t, err)
		for col := range cols {
			assert.True(t, col.Equal(objects(t, c, "o1", "o2")))
		}
	})

	t.Run("Lazy", func(t *testing.T) {
		seq, err := c.Filter(c.Objects().Full(), AxisObjects)
		require.NoError(t, err)
		n := 0
		for range seq {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}

func TestFilterErrors(t *testing.T) {
	c := exampleContext(t)

	_, err := c.Filter(Labels{"o1"}, Axis(2))
	require.ErrorIs(t, err, ErrInvalidAxis)

	_, err = c.Filter(Labels{"o1"}, Axis(-1))
	require.ErrorIs(t, err, ErrInvalidAxis)

	_, err = c.Filter(Labels{"nope"}, AxisObjects)
	require.ErrorIs(t, err, ErrUnknownLabel)

	_, err = c.Filter(c.Attributes().Full(), AxisObjects)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	other, err := New([][]bool{{true}}, []string{"x"}, []string{"y"})
	require.NoError(t, err)
	_, err = c.Filter(other.Objects().Full(), AxisObjects)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}
