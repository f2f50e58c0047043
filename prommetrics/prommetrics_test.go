package prommetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/fcago"
	"github.com/hupe1980/fcago/enumerate"
	"github.com/hupe1980/fcago/grecon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	mc, err := New(func(o *Options) { o.Registerer = reg })
	require.NoError(t, err)
	return mc, reg
}

func TestCollector(t *testing.T) {
	mc, reg := newCollector(t)

	mc.RecordContext(3, 2, time.Millisecond, nil)
	mc.RecordContext(3, 2, time.Millisecond, errors.New("boom"))
	mc.RecordEnumerate(4, time.Millisecond, nil)
	mc.RecordEnumerate(0, time.Millisecond, errors.New("boom"))
	mc.RecordCover(2, 0, time.Millisecond, nil)
	mc.RecordCover(1, 3, time.Millisecond, nil)
	mc.RecordCover(0, 0, time.Millisecond, context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(mc.contexts.WithLabelValues(resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.contexts.WithLabelValues(resultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.enumerations.WithLabelValues(resultError)))
	assert.Equal(t, 4.0, testutil.ToFloat64(mc.concepts))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.covers.WithLabelValues(resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.covers.WithLabelValues(resultIncomplete)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.covers.WithLabelValues(resultError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(mc.factors))
	assert.Equal(t, 3.0, testutil.ToFloat64(mc.uncovered))

	n, err := testutil.GatherAndCount(reg, "fcago_cover_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(func(o *Options) { o.Registerer = reg })
	require.NoError(t, err)

	_, err = New(func(o *Options) { o.Registerer = reg })
	assert.ErrorIs(t, err, ErrRegistrationFailed)

	_, err = New(func(o *Options) {
		o.Registerer = reg
		o.Namespace = "other"
	})
	assert.NoError(t, err)
}

func TestCollectorWithFactorize(t *testing.T) {
	mc, _ := newCollector(t)

	c, err := fcago.New(
		[][]bool{{true, true}, {true, false}, {false, true}},
		[]string{"o1", "o2", "o3"},
		[]string{"a1", "a2"},
		fcago.WithMetricsCollector(mc),
	)
	require.NoError(t, err)

	_, err = grecon.Factorize(context.Background(), c, enumerate.NextClosure{}, func(o *grecon.Options) {
		o.Metrics = mc
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(mc.contexts.WithLabelValues(resultOK)))
	assert.Equal(t, 4.0, testutil.ToFloat64(mc.concepts))
	assert.Equal(t, 2.0, testutil.ToFloat64(mc.factors))
	assert.Equal(t, 0.0, testutil.ToFloat64(mc.uncovered))
}
